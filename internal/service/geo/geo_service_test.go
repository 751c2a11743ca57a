package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository/memstore"
	"github.com/Domenick1991/andromeda/internal/validation"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetCountries(ctx context.Context) ([]domain.Country, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Country), args.Error(1)
}

func (m *MockCache) SetCountries(ctx context.Context, countries []domain.Country) error {
	args := m.Called(ctx, countries)
	return args.Error(0)
}

func (m *MockCache) InvalidateCountries(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func newService(t *testing.T, opts ...GeoServiceOption) *GeoService {
	t.Helper()
	repos, err := memstore.NewRepositories()
	require.NoError(t, err)
	v := validation.New(validation.Options{DisallowedCountries: []string{"Israel"}})
	return NewGeoService(repos.Countries, repos.Cities, v, opts...)
}

func TestGeoService_CreateCountry(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	country, err := service.CreateCountry(ctx, "france")
	require.NoError(t, err)
	assert.Equal(t, "France", country.Name)

	_, err = service.CreateCountry(ctx, "FRANCE")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = service.CreateCountry(ctx, "Atlantis")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = service.CreateCountry(ctx, "israel")
	assert.ErrorIs(t, err, domain.ErrValidation)

	countries, err := service.ListCountries(ctx)
	require.NoError(t, err)
	assert.Len(t, countries, 1)
}

func TestGeoService_Cities(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	_, err := service.CreateCity(ctx, CreateCityInput{Name: "Beirut", CountryID: 42})
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	lebanon, err := service.CreateCountry(ctx, "Lebanon")
	require.NoError(t, err)
	city, err := service.CreateCity(ctx, CreateCityInput{Name: " Beirut ", CountryID: lebanon.ID})
	require.NoError(t, err)
	assert.Equal(t, "Beirut", city.Name)

	// City names are not unique.
	_, err = service.CreateCity(ctx, CreateCityInput{Name: "Beirut", CountryID: lebanon.ID})
	require.NoError(t, err)

	cities, err := service.CountryCities(ctx, lebanon.ID)
	require.NoError(t, err)
	assert.Len(t, cities, 2)

	_, err = service.CountryCities(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, service.DeleteCountry(ctx, lebanon.ID), domain.ErrReferentialIntegrity)
	require.NoError(t, service.DeleteCity(ctx, cities[0].ID))
	require.NoError(t, service.DeleteCity(ctx, cities[1].ID))
	require.NoError(t, service.DeleteCountry(ctx, lebanon.ID))
}

func TestGeoService_CountryCache(t *testing.T) {
	mockCache := &MockCache{}
	service := newService(t, WithCache(mockCache))
	ctx := context.Background()

	mockCache.On("InvalidateCountries", ctx).Return(nil).Once()
	_, err := service.CreateCountry(ctx, "Japan")
	require.NoError(t, err)

	mockCache.On("GetCountries", ctx).Return(([]domain.Country)(nil), errors.New("redis down")).Once()
	mockCache.On("SetCountries", ctx, mock.MatchedBy(func(c []domain.Country) bool {
		return len(c) == 1 && c[0].Name == "Japan"
	})).Return(nil).Once()
	countries, err := service.ListCountries(ctx)
	require.NoError(t, err)
	assert.Len(t, countries, 1)

	cached := []domain.Country{{ID: 1, Name: "Japan"}}
	mockCache.On("GetCountries", ctx).Return(cached, nil).Once()
	countries, err = service.ListCountries(ctx)
	require.NoError(t, err)
	assert.Equal(t, cached, countries)

	mockCache.AssertExpectations(t)
}
