package companies

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
	"github.com/Domenick1991/andromeda/internal/repository/memstore"
	"github.com/Domenick1991/andromeda/internal/validation"
)

var today = time.Date(2026, 3, 14, 16, 30, 0, 0, time.UTC)

func newService(t *testing.T) (*CompanyService, repository.Repositories) {
	t.Helper()
	repos, err := memstore.NewRepositories()
	require.NoError(t, err)
	v := validation.New(validation.Options{})
	return NewCompanyService(repos.Companies, repos.Employments, v, WithClock(func() time.Time { return today })), repos
}

func strPtr(s string) *string { return &s }

func TestCompanyService_Create(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	company, err := service.Create(ctx, CreateCompanyInput{Name: "Cedar Travel", Email: "Ops@Cedar.com", PhoneNumber: strPtr("+961 70 401 234")})
	require.NoError(t, err)
	assert.Equal(t, "ops@cedar.com", company.Email)
	assert.Equal(t, "+96170401234", *company.PhoneNumber)
	assert.Zero(t, company.TicketQuota)

	_, err = service.Create(ctx, CreateCompanyInput{Name: "Cedar Travel", Email: "other@cedar.com"})
	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "name", cerr.Field)

	_, err = service.Create(ctx, CreateCompanyInput{Name: "Other", Email: "OPS@cedar.com"})
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "email", cerr.Field)

	_, err = service.Create(ctx, CreateCompanyInput{Name: "Broke", Email: "b@x.com", TicketQuota: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompanyService_Update(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	company, err := service.Create(ctx, CreateCompanyInput{Name: "Cedar Travel", Email: "ops@cedar.com", PhoneNumber: strPtr("+96170401234")})
	require.NoError(t, err)

	quota := 25
	updated, err := service.Update(ctx, company.ID, UpdateCompanyInput{TicketQuota: &quota, PhoneNumber: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.TicketQuota)
	assert.Nil(t, updated.PhoneNumber)
	assert.Equal(t, "Cedar Travel", updated.Name)

	_, err = service.Update(ctx, 999, UpdateCompanyInput{TicketQuota: &quota})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyService_Hire(t *testing.T) {
	service, repos := newService(t)
	ctx := context.Background()

	company, err := service.Create(ctx, CreateCompanyInput{Name: "Cedar Travel", Email: "ops@cedar.com"})
	require.NoError(t, err)
	user := domain.User{Username: "mrh26", Email: "mrh@x.com", PasswordHash: "h"}
	require.NoError(t, repos.Users.Create(ctx, &user))

	employment, err := service.Hire(ctx, HireInput{UserID: user.ID, CompanyID: company.ID})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), employment.Date)

	_, err = service.Hire(ctx, HireInput{UserID: user.ID, CompanyID: company.ID})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = service.Hire(ctx, HireInput{UserID: 404, CompanyID: company.ID})
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	_, err = service.Hire(ctx, HireInput{CompanyID: company.ID})
	assert.ErrorIs(t, err, domain.ErrValidation)

	employments, err := service.Employments(ctx, company.ID)
	require.NoError(t, err)
	assert.Len(t, employments, 1)

	assert.ErrorIs(t, service.Delete(ctx, company.ID), domain.ErrReferentialIntegrity)
	require.NoError(t, service.DeleteEmployment(ctx, employment.ID))
	require.NoError(t, service.Delete(ctx, company.ID))
}
