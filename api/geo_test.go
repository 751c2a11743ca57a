package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/service/geo"
)

// MockGeoUseCase is a mock implementation of geo.GeoUseCase
type MockGeoUseCase struct {
	mock.Mock
}

func (m *MockGeoUseCase) ListCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockGeoUseCase) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockGeoUseCase) CreateCountry(ctx context.Context, name string) (*domain.Country, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockGeoUseCase) DeleteCountry(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGeoUseCase) CountryCities(ctx context.Context, id int64) ([]domain.City, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockGeoUseCase) ListCities(ctx context.Context) ([]domain.City, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.City), args.Error(1)
}

func (m *MockGeoUseCase) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockGeoUseCase) CreateCity(ctx context.Context, input geo.CreateCityInput) (*domain.City, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockGeoUseCase) DeleteCity(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestGeoHandler_countries(t *testing.T) {
	mockService := &MockGeoUseCase{}
	r := newTestRouter(NewGeoHandler(mockService))

	mockService.On("CreateCountry", mock.Anything, "lebanon").Return(&domain.Country{ID: 1, Name: "Lebanon"}, nil)
	mockService.On("CreateCountry", mock.Anything, "Israel").
		Return(nil, domain.NewValidationError("country", "name", "is not an allowed country"))
	mockService.On("ListCountries", mock.Anything).Return([]domain.Country{{ID: 2, Name: "France"}, {ID: 1, Name: "Lebanon"}}, nil)

	w := serve(r, http.MethodPost, "/api/countries", `{"country": {"name": "lebanon"}}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Lebanon", decode(t, w)["country"].(map[string]any)["name"])

	w = serve(r, http.MethodPost, "/api/countries", `{"country": {"name": "Israel"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = serve(r, http.MethodGet, "/api/countries", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"countries": [{"id": 2, "name": "France"}, {"id": 1, "name": "Lebanon"}]}`, w.Body.String())

	mockService.AssertExpectations(t)
}

func TestGeoHandler_deleteCountryInUse(t *testing.T) {
	mockService := &MockGeoUseCase{}
	r := newTestRouter(NewGeoHandler(mockService))

	mockService.On("DeleteCountry", mock.Anything, int64(1)).Return(domain.InUseError("country", "cities"))

	w := serve(r, http.MethodDelete, "/api/countries/1", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "cities", decode(t, w)["field"])
}

func TestGeoHandler_cities(t *testing.T) {
	mockService := &MockGeoUseCase{}
	r := newTestRouter(NewGeoHandler(mockService))

	mockService.On("CreateCity", mock.Anything, geo.CreateCityInput{Name: "Beirut", CountryID: 1}).
		Return(&domain.City{ID: 1, Name: "Beirut", CountryID: 1}, nil)
	mockService.On("CreateCity", mock.Anything, geo.CreateCityInput{Name: "Nowhere", CountryID: 9}).
		Return(nil, domain.NewReferenceError("city", "country_id", 9))
	mockService.On("CountryCities", mock.Anything, int64(1)).Return([]domain.City{{ID: 1, Name: "Beirut", CountryID: 1}}, nil)
	mockService.On("GetCity", mock.Anything, int64(7)).Return(nil, domain.NewNotFoundError("city", int64(7)))

	w := serve(r, http.MethodPost, "/api/cities", `{"city": {"name": "Beirut", "country_id": 1}}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = serve(r, http.MethodPost, "/api/cities", `{"city": {"name": "Nowhere", "country_id": 9}}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "country_id", decode(t, w)["field"])

	w = serve(r, http.MethodGet, "/api/countries/1/cities", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["cities"], 1)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/api/cities/7", "").Code)

	mockService.AssertExpectations(t)
}
