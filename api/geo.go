package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/andromeda/internal/service/geo"
)

type GeoHandler struct {
	service geo.GeoUseCase
}

type createCountryRequest struct {
	Name string `json:"name"`
}

type createCityRequest struct {
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}

func NewGeoHandler(service geo.GeoUseCase) *GeoHandler {
	return &GeoHandler{service: service}
}

func (h *GeoHandler) Register(router *gin.RouterGroup) {
	countries := router.Group("/countries")
	countries.GET("", h.listCountries)
	countries.POST("", h.createCountry)
	countries.GET("/:id", h.getCountry)
	countries.DELETE("/:id", h.deleteCountry)
	countries.GET("/:id/cities", h.countryCities)

	cities := router.Group("/cities")
	cities.GET("", h.listCities)
	cities.POST("", h.createCity)
	cities.GET("/:id", h.getCity)
	cities.DELETE("/:id", h.deleteCity)
}

func (h *GeoHandler) listCountries(c *gin.Context) {
	list, err := h.service.ListCountries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": mapAll(list, newCountryResponse)})
}

func (h *GeoHandler) createCountry(c *gin.Context) {
	var req createCountryRequest
	if !bindEnvelope(c, "country", &req) {
		return
	}
	country, err := h.service.CreateCountry(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"country": newCountryResponse(country)})
}

func (h *GeoHandler) getCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	country, err := h.service.GetCountry(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"country": newCountryResponse(country)})
}

func (h *GeoHandler) deleteCountry(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCountry(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GeoHandler) countryCities(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.service.CountryCities(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": mapAll(list, newCityResponse)})
}

func (h *GeoHandler) listCities(c *gin.Context) {
	list, err := h.service.ListCities(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cities": mapAll(list, newCityResponse)})
}

func (h *GeoHandler) createCity(c *gin.Context) {
	var req createCityRequest
	if !bindEnvelope(c, "city", &req) {
		return
	}
	city, err := h.service.CreateCity(c.Request.Context(), geo.CreateCityInput{Name: req.Name, CountryID: req.CountryID})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"city": newCityResponse(city)})
}

func (h *GeoHandler) getCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	city, err := h.service.GetCity(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"city": newCityResponse(city)})
}

func (h *GeoHandler) deleteCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCity(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
