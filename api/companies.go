package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/andromeda/internal/service/companies"
)

type CompanyHandler struct {
	service companies.CompanyUseCase
}

type createCompanyRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	TicketQuota int     `json:"ticket_quota"`
}

type updateCompanyRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	TicketQuota *int    `json:"ticket_quota"`
}

type createEmploymentRequest struct {
	UserID    int64 `json:"user_id"`
	CompanyID int64 `json:"company_id"`
	Date      *Date `json:"date"`
}

func NewCompanyHandler(service companies.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// Register mounts both /companies and /employments; employments are managed
// through the company service.
func (h *CompanyHandler) Register(router *gin.RouterGroup) {
	g := router.Group("/companies")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/employments", h.employments)

	e := router.Group("/employments")
	e.GET("", h.listEmployments)
	e.POST("", h.createEmployment)
	e.GET("/:id", h.getEmployment)
	e.DELETE("/:id", h.deleteEmployment)
}

func (h *CompanyHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": mapAll(list, newCompanyResponse)})
}

func (h *CompanyHandler) create(c *gin.Context) {
	var req createCompanyRequest
	if !bindEnvelope(c, "company", &req) {
		return
	}
	company, err := h.service.Create(c.Request.Context(), companies.CreateCompanyInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		TicketQuota: req.TicketQuota,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company": newCompanyResponse(company)})
}

func (h *CompanyHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	company, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": newCompanyResponse(company)})
}

func (h *CompanyHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCompanyRequest
	if !bindEnvelope(c, "company", &req) {
		return
	}
	company, err := h.service.Update(c.Request.Context(), id, companies.UpdateCompanyInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		TicketQuota: req.TicketQuota,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": newCompanyResponse(company)})
}

func (h *CompanyHandler) delete(c *gin.Context) {
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

func (h *CompanyHandler) employments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.service.Employments(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employments": mapAll(list, newEmploymentResponse)})
}

func (h *CompanyHandler) listEmployments(c *gin.Context) {
	list, err := h.service.ListEmployments(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employments": mapAll(list, newEmploymentResponse)})
}

func (h *CompanyHandler) createEmployment(c *gin.Context) {
	var req createEmploymentRequest
	if !bindEnvelope(c, "employment", &req) {
		return
	}
	employment, err := h.service.Hire(c.Request.Context(), companies.HireInput{
		UserID:    req.UserID,
		CompanyID: req.CompanyID,
		Date:      req.Date.ptr(),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"employment": newEmploymentResponse(employment)})
}

func (h *CompanyHandler) getEmployment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	employment, err := h.service.GetEmployment(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employment": newEmploymentResponse(employment)})
}

func (h *CompanyHandler) deleteEmployment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteEmployment(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
