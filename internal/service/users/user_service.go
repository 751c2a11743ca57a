package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/andromeda/internal/auth"
	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/kafka"
	"github.com/Domenick1991/andromeda/internal/repository"
	"github.com/Domenick1991/andromeda/internal/validation"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserUseCase interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, search string) ([]domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	ChangePassword(ctx context.Context, id int64, password string) error
	VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error)

	Bookings(ctx context.Context, id int64) ([]domain.Booking, error)
	Employment(ctx context.Context, id int64) (*domain.Employment, error)
	Passport(ctx context.Context, id int64) (*domain.Passport, error)
	SetPassport(ctx context.Context, id int64, input PassportInput) (*domain.Passport, bool, error)
	DeletePassport(ctx context.Context, id int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

type CreateUserInput struct {
	Username    string  `json:"username" form:"username"`
	Email       string  `json:"email" form:"email"`
	Password    string  `json:"password" form:"password"`
	PhoneNumber *string `json:"phone_number" form:"phone_number"`
}

// UpdateUserInput changes only the fields that are set. The password has its
// own operation.
type UpdateUserInput struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

type PassportInput struct {
	CountryID      int64     `json:"country_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	IssueDate      time.Time `json:"issue_date"`
	ExpirationDate time.Time `json:"expiration_date"`
}

type UserService struct {
	repos     repository.Repositories
	validator *validation.Validator
	hasher    auth.PasswordHasher
	producer  Producer
	topic     string
	logger    *zap.Logger
}

type UserServiceOption func(*UserService)

func WithEvents(producer Producer, topic string) UserServiceOption {
	return func(s *UserService) {
		s.producer = producer
		s.topic = topic
	}
}

func WithLogger(logger *zap.Logger) UserServiceOption {
	return func(s *UserService) {
		s.logger = logger
	}
}

// NewUserService uses the user, passport, employment and booking
// repositories of repos.
func NewUserService(repos repository.Repositories, v *validation.Validator, hasher auth.PasswordHasher, opts ...UserServiceOption) *UserService {
	s := &UserService{repos: repos, validator: v, hasher: hasher, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
	}
	if err := s.validator.User(ctx, user); err != nil {
		return nil, err
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.UserCreated, user)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repos.Users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, search string) ([]domain.User, error) {
	return s.repos.Users.List(ctx, search)
}

func (s *UserService) Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = input.PhoneNumber
	}
	if err := s.validator.User(ctx, user); err != nil {
		return nil, err
	}
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.publish(ctx, kafka.UserUpdated, user)
	return user, nil
}

// Delete also removes the user's passport; bookings or an employment block
// the delete.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repos.Users.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, kafka.UserDeleted, user)
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, id int64, password string) error {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := s.hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.repos.Users.Update(ctx, user); err != nil {
		return err
	}
	s.publish(ctx, kafka.UserPasswordChanged, user)
	return nil
}

func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repos.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Bookings(ctx context.Context, id int64) ([]domain.Booking, error) {
	if _, err := s.repos.Users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Bookings.ListByUser(ctx, id)
}

func (s *UserService) Employment(ctx context.Context, id int64) (*domain.Employment, error) {
	if _, err := s.repos.Users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Employments.GetByUserID(ctx, id)
}

func (s *UserService) Passport(ctx context.Context, id int64) (*domain.Passport, error) {
	if _, err := s.repos.Users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repos.Passports.GetByUserID(ctx, id)
}

// SetPassport creates or replaces the user's passport and reports whether
// it was created.
func (s *UserService) SetPassport(ctx context.Context, id int64, input PassportInput) (*domain.Passport, bool, error) {
	if _, err := s.repos.Users.GetByID(ctx, id); err != nil {
		return nil, false, err
	}
	passport := &domain.Passport{
		UserID:         id,
		CountryID:      input.CountryID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		DateOfBirth:    input.DateOfBirth,
		IssueDate:      input.IssueDate,
		ExpirationDate: input.ExpirationDate,
	}
	if err := s.validator.Passport(passport); err != nil {
		return nil, false, err
	}

	_, err := s.repos.Passports.GetByUserID(ctx, id)
	switch {
	case err == nil:
		if err := s.repos.Passports.Update(ctx, passport); err != nil {
			return nil, false, err
		}
		return passport, false, nil
	case errors.Is(err, domain.ErrNotFound):
		if err := s.repos.Passports.Create(ctx, passport); err != nil {
			return nil, false, err
		}
		return passport, true, nil
	default:
		return nil, false, err
	}
}

func (s *UserService) DeletePassport(ctx context.Context, id int64) error {
	if _, err := s.repos.Users.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repos.Passports.Delete(ctx, id)
}

func (s *UserService) hash(password string) (string, error) {
	if password == "" {
		return "", domain.NewValidationError("user", "password", "is required")
	}
	if len(password) > maxPasswordBytes {
		return "", domain.NewValidationError("user", "password", "must be at most 72 bytes")
	}
	return s.hasher.Hash(password)
}

// publish is best effort: the write already happened.
func (s *UserService) publish(ctx context.Context, eventType string, user *domain.User) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.NewUserEvent(eventType, user.ID, user.Username, user.Email)
	if err := s.producer.Publish(ctx, s.topic, fmt.Sprintf("user-%d", user.ID), event); err != nil {
		s.logger.Warn("failed to publish user event",
			zap.String("type", eventType),
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}
}

var _ UserUseCase = (*UserService)(nil)
