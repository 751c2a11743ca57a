package companies

import (
	"context"
	"time"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
	"github.com/Domenick1991/andromeda/internal/validation"
)

type CompanyUseCase interface {
	List(ctx context.Context) ([]domain.Company, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	Create(ctx context.Context, input CreateCompanyInput) (*domain.Company, error)
	Update(ctx context.Context, id int64, input UpdateCompanyInput) (*domain.Company, error)
	Delete(ctx context.Context, id int64) error
	Employments(ctx context.Context, id int64) ([]domain.Employment, error)

	ListEmployments(ctx context.Context) ([]domain.Employment, error)
	GetEmployment(ctx context.Context, id int64) (*domain.Employment, error)
	Hire(ctx context.Context, input HireInput) (*domain.Employment, error)
	DeleteEmployment(ctx context.Context, id int64) error
}

type CreateCompanyInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	TicketQuota int     `json:"ticket_quota"`
}

// UpdateCompanyInput changes only the fields that are set. An empty phone
// number clears it.
type UpdateCompanyInput struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	TicketQuota *int    `json:"ticket_quota"`
}

type HireInput struct {
	UserID    int64      `json:"user_id"`
	CompanyID int64      `json:"company_id"`
	Date      *time.Time `json:"date"`
}

type CompanyService struct {
	companies   repository.CompanyRepository
	employments repository.EmploymentRepository
	validator   *validation.Validator
	now         func() time.Time
}

type CompanyServiceOption func(*CompanyService)

func WithClock(now func() time.Time) CompanyServiceOption {
	return func(s *CompanyService) {
		s.now = now
	}
}

func NewCompanyService(companies repository.CompanyRepository, employments repository.EmploymentRepository, v *validation.Validator, opts ...CompanyServiceOption) *CompanyService {
	s := &CompanyService{companies: companies, employments: employments, validator: v, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

func (s *CompanyService) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, input CreateCompanyInput) (*domain.Company, error) {
	company := &domain.Company{
		Name:        input.Name,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		TicketQuota: input.TicketQuota,
	}
	if err := s.validator.Company(ctx, company); err != nil {
		return nil, err
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id int64, input UpdateCompanyInput) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Email != nil {
		company.Email = *input.Email
	}
	if input.PhoneNumber != nil {
		company.PhoneNumber = input.PhoneNumber
	}
	if input.TicketQuota != nil {
		company.TicketQuota = *input.TicketQuota
	}
	if err := s.validator.Company(ctx, company); err != nil {
		return nil, err
	}
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	return s.companies.Delete(ctx, id)
}

func (s *CompanyService) Employments(ctx context.Context, id int64) ([]domain.Employment, error) {
	if _, err := s.companies.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.employments.ListByCompany(ctx, id)
}

func (s *CompanyService) ListEmployments(ctx context.Context) ([]domain.Employment, error) {
	return s.employments.List(ctx)
}

func (s *CompanyService) GetEmployment(ctx context.Context, id int64) (*domain.Employment, error) {
	return s.employments.GetByID(ctx, id)
}

// Hire records that a user works for a company. The date defaults to today.
func (s *CompanyService) Hire(ctx context.Context, input HireInput) (*domain.Employment, error) {
	employment := &domain.Employment{UserID: input.UserID, CompanyID: input.CompanyID}
	if input.Date != nil {
		employment.Date = *input.Date
	} else {
		now := s.now().UTC()
		employment.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if err := s.validator.Employment(employment); err != nil {
		return nil, err
	}
	if err := s.employments.Create(ctx, employment); err != nil {
		return nil, err
	}
	return employment, nil
}

func (s *CompanyService) DeleteEmployment(ctx context.Context, id int64) error {
	return s.employments.Delete(ctx, id)
}

var _ CompanyUseCase = (*CompanyService)(nil)
