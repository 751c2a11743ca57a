package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/kafka"
	"github.com/Domenick1991/andromeda/internal/repository"
	"github.com/Domenick1991/andromeda/internal/validation"
)

type BookingUseCase interface {
	List(ctx context.Context) ([]domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	RemindUpcomingDeadlines(ctx context.Context) (int, error)
}

// Producer publishes booking events. Reminders use PublishWithRetry since a
// missed reminder is not resent until the next sweep.
type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
	PublishWithRetry(ctx context.Context, topic, key string, value any, maxRetries int) error
}

const defaultReminderAttempts = 3

type CreateBookingInput struct {
	FlightID             int64      `json:"flight_id"`
	UserID               int64      `json:"user_id"`
	EmploymentID         int64      `json:"employment_id"`
	DateIssued           *time.Time `json:"date_issued"`
	CancellationFee      float64    `json:"cancellation_fee"`
	CancellationDeadline time.Time  `json:"cancellation_deadline"`
}

// Policy holds booking rules that are product decisions rather than data
// integrity. Both are off unless configured.
type Policy struct {
	NonNegativeFee          bool
	DeadlineBeforeDeparture bool
}

type BookingService struct {
	repos              repository.Repositories
	validator          *validation.Validator
	policy             Policy
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	reminderAttempts   int
	now                func() time.Time
	logger             *zap.Logger
}

type BookingServiceOption func(*BookingService)

func WithPolicy(p Policy) BookingServiceOption {
	return func(s *BookingService) {
		s.policy = p
	}
}

func WithEvents(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

// WithReminderAttempts sets how many times each reminder is published before
// the sweep gives up.
func WithReminderAttempts(n int) BookingServiceOption {
	return func(s *BookingService) {
		if n > 0 {
			s.reminderAttempts = n
		}
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

// NewBookingService uses the booking, flight, user and employment
// repositories of repos.
func NewBookingService(repos repository.Repositories, v *validation.Validator, opts ...BookingServiceOption) *BookingService {
	s := &BookingService{repos: repos, validator: v, reminderAttempts: defaultReminderAttempts, now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.repos.Bookings.List(ctx)
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.repos.Bookings.GetByID(ctx, id)
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	booking := &domain.Booking{
		FlightID:             input.FlightID,
		UserID:               input.UserID,
		EmploymentID:         input.EmploymentID,
		CancellationFee:      input.CancellationFee,
		CancellationDeadline: input.CancellationDeadline,
	}
	if input.DateIssued != nil {
		booking.DateIssued = *input.DateIssued
	} else {
		booking.DateIssued = s.now().UTC()
	}
	if err := s.validator.Booking(booking); err != nil {
		return nil, err
	}
	if s.policy.NonNegativeFee && booking.CancellationFee < 0 {
		return nil, domain.NewValidationError("booking", "cancellation_fee", "must not be negative")
	}

	flight, err := s.repos.Flights.GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, asReference(err, "flight_id", booking.FlightID)
	}
	user, err := s.repos.Users.GetByID(ctx, booking.UserID)
	if err != nil {
		return nil, asReference(err, "user_id", booking.UserID)
	}
	if _, err := s.repos.Employments.GetByID(ctx, booking.EmploymentID); err != nil {
		return nil, asReference(err, "employment_id", booking.EmploymentID)
	}

	if s.policy.DeadlineBeforeDeparture && dateOf(booking.CancellationDeadline).After(dateOf(flight.Departure)) {
		return nil, domain.NewValidationError("booking", "cancellation_deadline", "must not be after the flight departs")
	}

	// The repository re-checks every reference inside its write.
	if err := s.repos.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	event := newEvent(kafka.BookingCreated, booking, flight, user)
	s.publish(ctx, s.bookingTopic, event)
	s.publish(ctx, s.notificationsTopic, event)
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	booking, err := s.repos.Bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Bookings.Delete(ctx, id); err != nil {
		return err
	}

	event := newEvent(kafka.BookingDeleted, booking, s.flight(ctx, booking.FlightID), s.user(ctx, booking.UserID))
	s.publish(ctx, s.bookingTopic, event)
	s.publish(ctx, s.notificationsTopic, event)
	return nil
}

// RemindUpcomingDeadlines queues a notification for every booking whose
// cancellation deadline is tomorrow and returns how many were queued.
func (s *BookingService) RemindUpcomingDeadlines(ctx context.Context) (int, error) {
	if s.producer == nil || s.notificationsTopic == "" {
		return 0, nil
	}
	tomorrow := s.now().UTC().AddDate(0, 0, 1)
	due, err := s.repos.Bookings.ListByCancellationDeadline(ctx, tomorrow)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		b := &due[i]
		event := newEvent(kafka.CancellationDeadlineNearby, b, s.flight(ctx, b.FlightID), s.user(ctx, b.UserID))
		if err := s.producer.PublishWithRetry(ctx, s.notificationsTopic, event.Key(), event, s.reminderAttempts); err != nil {
			return sent, err
		}
		sent++
	}
	s.logger.Info("cancellation deadline reminders queued", zap.Int("count", sent), zap.String("deadline", tomorrow.Format(time.DateOnly)))
	return sent, nil
}

func (s *BookingService) flight(ctx context.Context, id int64) *domain.Flight {
	flight, err := s.repos.Flights.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return flight
}

func (s *BookingService) user(ctx context.Context, id int64) *domain.User {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return user
}

func (s *BookingService) publish(ctx context.Context, topic string, event kafka.BookingEvent) {
	if s.producer == nil || topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, topic, event.Key(), event); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", event.Type),
			zap.String("topic", topic),
			zap.Int64("booking_id", event.BookingID),
			zap.Error(err),
		)
	}
}

func newEvent(eventType string, b *domain.Booking, flight *domain.Flight, user *domain.User) kafka.BookingEvent {
	event := kafka.BookingEvent{
		ID:                   uuid.NewString(),
		Type:                 eventType,
		BookingID:            b.ID,
		FlightID:             b.FlightID,
		UserID:               b.UserID,
		EmploymentID:         b.EmploymentID,
		CancellationFee:      b.CancellationFee,
		CancellationDeadline: b.CancellationDeadline.Format(time.DateOnly),
		At:                   time.Now().UTC(),
	}
	if flight != nil {
		event.FlightName = flight.Name
	}
	if user != nil {
		event.Email = user.Email
	}
	return event
}

// asReference reports a missing referenced record as a referential error
// on the booking rather than a missing booking.
func asReference(err error, field string, id int64) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewReferenceError("booking", field, id)
	}
	return err
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ BookingUseCase = (*BookingService)(nil)
