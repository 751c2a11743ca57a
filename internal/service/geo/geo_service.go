package geo

import (
	"context"

	"go.uber.org/zap"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
	"github.com/Domenick1991/andromeda/internal/validation"
)

type GeoUseCase interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	GetCountry(ctx context.Context, id int64) (*domain.Country, error)
	CreateCountry(ctx context.Context, name string) (*domain.Country, error)
	DeleteCountry(ctx context.Context, id int64) error
	CountryCities(ctx context.Context, id int64) ([]domain.City, error)

	ListCities(ctx context.Context) ([]domain.City, error)
	GetCity(ctx context.Context, id int64) (*domain.City, error)
	CreateCity(ctx context.Context, input CreateCityInput) (*domain.City, error)
	DeleteCity(ctx context.Context, id int64) error
}

type CountryCache interface {
	GetCountries(ctx context.Context) ([]domain.Country, error)
	SetCountries(ctx context.Context, countries []domain.Country) error
	InvalidateCountries(ctx context.Context) error
}

type CreateCityInput struct {
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}

type GeoService struct {
	countries repository.CountryRepository
	cities    repository.CityRepository
	validator *validation.Validator
	cache     CountryCache
	logger    *zap.Logger
}

type GeoServiceOption func(*GeoService)

func WithCache(cache CountryCache) GeoServiceOption {
	return func(s *GeoService) {
		s.cache = cache
	}
}

func WithLogger(logger *zap.Logger) GeoServiceOption {
	return func(s *GeoService) {
		s.logger = logger
	}
}

func NewGeoService(countries repository.CountryRepository, cities repository.CityRepository, v *validation.Validator, opts ...GeoServiceOption) *GeoService {
	s := &GeoService{countries: countries, cities: cities, validator: v, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *GeoService) ListCountries(ctx context.Context) ([]domain.Country, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCountries(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn("country cache read failed", zap.Error(err))
		}
	}

	countries, err := s.countries.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetCountries(ctx, countries); err != nil {
			s.logger.Warn("country cache write failed", zap.Error(err))
		}
	}
	return countries, nil
}

func (s *GeoService) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	return s.countries.GetByID(ctx, id)
}

// CreateCountry stores name under its canonical English spelling.
func (s *GeoService) CreateCountry(ctx context.Context, name string) (*domain.Country, error) {
	country := &domain.Country{Name: name}
	if err := s.validator.Country(country); err != nil {
		return nil, err
	}
	if err := s.countries.Create(ctx, country); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return country, nil
}

func (s *GeoService) DeleteCountry(ctx context.Context, id int64) error {
	if err := s.countries.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GeoService) CountryCities(ctx context.Context, id int64) ([]domain.City, error) {
	if _, err := s.countries.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.cities.ListByCountry(ctx, id)
}

func (s *GeoService) ListCities(ctx context.Context) ([]domain.City, error) {
	return s.cities.List(ctx)
}

func (s *GeoService) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	return s.cities.GetByID(ctx, id)
}

func (s *GeoService) CreateCity(ctx context.Context, input CreateCityInput) (*domain.City, error) {
	city := &domain.City{Name: input.Name, CountryID: input.CountryID}
	if err := s.validator.City(city); err != nil {
		return nil, err
	}
	if err := s.cities.Create(ctx, city); err != nil {
		return nil, err
	}
	return city, nil
}

func (s *GeoService) DeleteCity(ctx context.Context, id int64) error {
	return s.cities.Delete(ctx, id)
}

func (s *GeoService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCountries(ctx); err != nil {
		s.logger.Warn("country cache invalidation failed", zap.Error(err))
	}
}

var _ GeoUseCase = (*GeoService)(nil)
