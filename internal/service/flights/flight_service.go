package flights

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
	"github.com/Domenick1991/andromeda/internal/validation"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	Bookings(ctx context.Context, id int64) ([]domain.Booking, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type CreateFlightInput struct {
	Name            string    `json:"name"`
	DepartureCityID int64     `json:"departure_city_id"`
	ArrivalCityID   int64     `json:"arrival_city_id"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
}

// UpdateFlightInput changes only the fields that are set.
type UpdateFlightInput struct {
	Name            *string    `json:"name"`
	DepartureCityID *int64     `json:"departure_city_id"`
	ArrivalCityID   *int64     `json:"arrival_city_id"`
	Departure       *time.Time `json:"departure"`
	Arrival         *time.Time `json:"arrival"`
}

type FlightService struct {
	repo      repository.FlightRepository
	bookings  repository.BookingRepository
	validator *validation.Validator
	cache     FlightCache
	logger    *zap.Logger
}

type FlightServiceOption func(*FlightService)

func WithCache(cache FlightCache) FlightServiceOption {
	return func(s *FlightService) {
		s.cache = cache
	}
}

func WithLogger(logger *zap.Logger) FlightServiceOption {
	return func(s *FlightService) {
		s.logger = logger
	}
}

func NewFlightService(repo repository.FlightRepository, bookings repository.BookingRepository, v *validation.Validator, opts ...FlightServiceOption) *FlightService {
	s := &FlightService{repo: repo, bookings: bookings, validator: v, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List serves from the cache when it can. Cache failures fall through to the
// repository.
func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			s.logger.Warn("flight cache read failed", zap.Error(err))
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			s.logger.Warn("flight cache write failed", zap.Error(err))
		}
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	flight := &domain.Flight{
		Name:            input.Name,
		DepartureCityID: input.DepartureCityID,
		ArrivalCityID:   input.ArrivalCityID,
		Departure:       input.Departure,
		Arrival:         input.Arrival,
	}
	if err := s.validator.Flight(flight); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		flight.Name = *input.Name
	}
	if input.DepartureCityID != nil {
		flight.DepartureCityID = *input.DepartureCityID
	}
	if input.ArrivalCityID != nil {
		flight.ArrivalCityID = *input.ArrivalCityID
	}
	if input.Departure != nil {
		flight.Departure = *input.Departure
	}
	if input.Arrival != nil {
		flight.Arrival = *input.Arrival
	}
	if err := s.validator.Flight(flight); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) Bookings(ctx context.Context, id int64) ([]domain.Booking, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.bookings.ListByFlight(ctx, id)
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.logger.Warn("flight cache invalidation failed", zap.Error(err))
	}
}

var _ FlightUseCase = (*FlightService)(nil)
