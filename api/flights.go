package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/andromeda/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	Name            string    `json:"name"`
	DepartureCityID int64     `json:"departure_city_id"`
	ArrivalCityID   int64     `json:"arrival_city_id"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
}

type updateFlightRequest struct {
	Name            *string    `json:"name"`
	DepartureCityID *int64     `json:"departure_city_id"`
	ArrivalCityID   *int64     `json:"arrival_city_id"`
	Departure       *time.Time `json:"departure"`
	Arrival         *time.Time `json:"arrival"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	g := router.Group("/flights")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.GET("/:id/bookings", h.bookings)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flights": mapAll(list, newFlightResponse)})
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": newFlightResponse(flight)})
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if !bindEnvelope(c, "flight", &req) {
		return
	}
	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		Name:            req.Name,
		DepartureCityID: req.DepartureCityID,
		ArrivalCityID:   req.ArrivalCityID,
		Departure:       req.Departure,
		Arrival:         req.Arrival,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"flight": newFlightResponse(flight)})
}

func (h *FlightHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateFlightRequest
	if !bindEnvelope(c, "flight", &req) {
		return
	}
	flight, err := h.service.Update(c.Request.Context(), id, flights.UpdateFlightInput{
		Name:            req.Name,
		DepartureCityID: req.DepartureCityID,
		ArrivalCityID:   req.ArrivalCityID,
		Departure:       req.Departure,
		Arrival:         req.Arrival,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flight": newFlightResponse(flight)})
}

func (h *FlightHandler) delete(c *gin.Context) {
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

func (h *FlightHandler) bookings(c *gin.Context) {
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
