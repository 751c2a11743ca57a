package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/andromeda/internal/service/users"
)

type UserHandler struct {
	service users.UserUseCase
}

type createUserRequest struct {
	Username    string  `json:"username" form:"username"`
	Email       string  `json:"email" form:"email"`
	Password    string  `json:"password" form:"password"`
	PhoneNumber *string `json:"phone_number" form:"phone_number"`
}

type updateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type passportRequest struct {
	CountryID      int64  `json:"country_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    Date   `json:"date_of_birth"`
	IssueDate      Date   `json:"issue_date"`
	ExpirationDate Date   `json:"expiration_date"`
}

func NewUserHandler(service users.UserUseCase) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)

	g := router.Group("/users")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PUT("/:id/password", h.changePassword)
	g.GET("/:id/bookings", h.bookings)
	g.GET("/:id/employment", h.employment)
	g.GET("/:id/passport", h.passport)
	g.PUT("/:id/passport", h.setPassport)
	g.DELETE("/:id/passport", h.deletePassport)
}

func (h *UserHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": mapAll(list, newUserResponse)})
}

// create takes {"user": {...}} or, when the request has no body, the same
// fields as query parameters.
func (h *UserHandler) create(c *gin.Context) {
	var req createUserRequest
	if c.Request.ContentLength == 0 {
		if err := c.ShouldBindQuery(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	} else if !bindEnvelope(c, "user", &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		badRequest(c, "username, email and password are required")
		return
	}

	user, err := h.service.Create(c.Request.Context(), users.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": newUserResponse(user)})
}

func (h *UserHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

func (h *UserHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if !bindEnvelope(c, "user", &req) {
		return
	}
	user, err := h.service.Update(c.Request.Context(), id, users.UpdateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

func (h *UserHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) changePassword(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "password is required")
		return
	}
	if err := h.service.ChangePassword(c.Request.Context(), id, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username and password are required")
		return
	}
	user, err := h.service.VerifyCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}

func (h *UserHandler) bookings(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.service.Bookings(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": mapAll(list, newBookingResponse)})
}

func (h *UserHandler) employment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	employment, err := h.service.Employment(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employment": newEmploymentResponse(employment)})
}

func (h *UserHandler) passport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	passport, err := h.service.Passport(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passport": newPassportResponse(passport)})
}

func (h *UserHandler) setPassport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req passportRequest
	if !bindEnvelope(c, "passport", &req) {
		return
	}
	passport, created, err := h.service.SetPassport(c.Request.Context(), id, users.PassportInput{
		CountryID:      req.CountryID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    req.DateOfBirth.Time,
		IssueDate:      req.IssueDate.Time,
		ExpirationDate: req.ExpirationDate.Time,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"passport": newPassportResponse(passport)})
}

func (h *UserHandler) deletePassport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePassport(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
