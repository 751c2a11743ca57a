package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/service/users"
)

type errorResponse struct {
	Error  string `json:"error"`
	Entity string `json:"entity,omitempty"`
	Field  string `json:"field,omitempty"`
}

// writeError maps domain errors to their HTTP status. Anything unknown is a
// 500 and its message stays in the log.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		verr *domain.ValidationError
		rerr *domain.ReferenceError
		cerr *domain.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: verr.Error(), Entity: verr.Entity, Field: verr.Field})
	case errors.As(err, &rerr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: rerr.Error(), Entity: rerr.Entity, Field: rerr.Field})
	case errors.As(err, &cerr):
		c.JSON(http.StatusConflict, errorResponse{Error: cerr.Error(), Entity: cerr.Entity, Field: cerr.Field})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, users.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}
