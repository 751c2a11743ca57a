package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Registrar is implemented by every handler in this package.
type Registrar interface {
	Register(router *gin.RouterGroup)
}

// NewRouter mounts the handlers under /api. When swaggerDir is set the
// OpenAPI document is served from /swagger and its UI from /docs.
func NewRouter(logger *zap.Logger, swaggerDir string, handlers ...Registrar) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if swaggerDir != "" {
		r.Static("/swagger", swaggerDir)
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/andromeda.swagger.json"))))
	}

	group := r.Group("/api")
	for _, h := range handlers {
		h.Register(group)
	}
	return r
}
