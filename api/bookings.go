package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/andromeda/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	FlightID             int64      `json:"flight_id"`
	UserID               int64      `json:"user_id"`
	EmploymentID         int64      `json:"employment_id"`
	DateIssued           *time.Time `json:"date_issued"`
	CancellationFee      float64    `json:"cancellation_fee"`
	CancellationDeadline Date       `json:"cancellation_deadline"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	g := router.Group("/bookings")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.delete)
}

func (h *BookingHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": mapAll(list, newBookingResponse)})
}

func (h *BookingHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": newBookingResponse(b)})
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if !bindEnvelope(c, "booking", &req) {
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		FlightID:             req.FlightID,
		UserID:               req.UserID,
		EmploymentID:         req.EmploymentID,
		DateIssued:           req.DateIssued,
		CancellationFee:      req.CancellationFee,
		CancellationDeadline: req.CancellationDeadline.Time,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": newBookingResponse(b)})
}

func (h *BookingHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
