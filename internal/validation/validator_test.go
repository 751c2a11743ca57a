package validation

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/andromeda/internal/domain"
)

type stubResolver struct {
	records []*net.MX
	err     error
}

func (r stubResolver) LookupMX(context.Context, string) ([]*net.MX, error) {
	return r.records, r.err
}

func newTestValidator() *Validator {
	return New(Options{DisallowedCountries: []string{"Israel"}})
}

func strPtr(s string) *string { return &s }

func TestEmail(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "a@x.com", want: "a@x.com"},
		{name: "case folded", input: "Someone@Example.COM", want: "someone@example.com"},
		{name: "internationalized", input: "josé@bücher.de", want: "josé@bücher.de"},
		{name: "surrounding spaces", input: "  c@x.com ", want: "c@x.com"},
		{name: "missing at", input: "not-an-email", wantErr: true},
		{name: "no tld", input: "user@localhost", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Email(ctx, "user", tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmail_MXCheck(t *testing.T) {
	ctx := context.Background()

	v := New(Options{CheckMXRecords: true, Resolver: stubResolver{err: errors.New("no such host")}})
	_, err := v.Email(ctx, "company", "c@nowhere.example")
	assert.ErrorIs(t, err, domain.ErrValidation)

	v = New(Options{CheckMXRecords: true, Resolver: stubResolver{records: []*net.MX{{Host: "mx.x.com.", Pref: 10}}}})
	got, err := v.Email(ctx, "company", "c@x.com")
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", got)
}

func TestPhone(t *testing.T) {
	v := newTestValidator()

	got, err := v.Phone("user", nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = v.Phone("user", strPtr("  "))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = v.Phone("user", strPtr("+96170401234"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "+96170401234", *got)

	got, err = v.Phone("user", strPtr("+33 6 12 34 56 78"))
	require.NoError(t, err)
	assert.Equal(t, "+33612345678", *got)

	_, err = v.Phone("user", strPtr("notanumber"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = v.Phone("user", strPtr("70401234"))
	assert.ErrorIs(t, err, domain.ErrValidation, "numbers without a country code are rejected")

	_, err = v.Phone("user", strPtr("+33 1 42 68 53 00"))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone_number", verr.Field)
	assert.Equal(t, "must be a mobile number", verr.Message)
}

func TestCountryName(t *testing.T) {
	v := newTestValidator()

	for _, in := range []string{"France", "france", "FRANCE", " France "} {
		got, err := v.CountryName(in)
		require.NoError(t, err, in)
		assert.Equal(t, "France", got)
	}

	got, err := v.CountryName("lebanon")
	require.NoError(t, err)
	assert.Equal(t, "Lebanon", got)

	_, err = v.CountryName("Atlantis")
	assert.ErrorIs(t, err, domain.ErrValidation)

	for _, in := range []string{"Israel", "israel", "ISRAEL"} {
		_, err = v.CountryName(in)
		assert.ErrorIs(t, err, domain.ErrValidation, in)
	}
}

func TestCountryName_AlternateSpellings(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		input string
		want  string
	}{
		{input: "Myanmar", want: "Myanmar (Burma)"},
		{input: "myanmar (burma)", want: "Myanmar (Burma)"},
		{input: "Czech Republic", want: "Czechia"},
		{input: "Türkiye", want: "Turkey"},
		{input: "Cote d'Ivoire", want: "Côte d’Ivoire"},
		{input: "côte d’ivoire", want: "Côte d’Ivoire"},
		{input: "Ivory  Coast", want: "Côte d’Ivoire"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := v.CountryName(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountryName_DenyListCoversAliases(t *testing.T) {
	v := New(Options{DisallowedCountries: []string{"Turkey"}})
	_, err := v.CountryName("Türkiye")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCountryName_EmptyDenyList(t *testing.T) {
	v := New(Options{})
	got, err := v.CountryName("israel")
	require.NoError(t, err)
	assert.Equal(t, "Israel", got)
}

func TestUser_NormalizesFields(t *testing.T) {
	v := newTestValidator()
	u := &domain.User{
		Username:     "mrh26",
		Email:        "MRH@X.com",
		PasswordHash: "hash",
		PhoneNumber:  strPtr("+961 70 401 234"),
	}

	require.NoError(t, v.User(context.Background(), u))
	assert.Equal(t, "mrh@x.com", u.Email)
	assert.Equal(t, "+96170401234", *u.PhoneNumber)
}

func TestUser_RejectsMissingUsername(t *testing.T) {
	v := newTestValidator()
	err := v.User(context.Background(), &domain.User{Email: "a@x.com", PasswordHash: "hash"})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "username", verr.Field)
	assert.Equal(t, "is required", verr.Message)
}

func TestCompany_NegativeQuota(t *testing.T) {
	v := newTestValidator()
	err := v.Company(context.Background(), &domain.Company{Name: "Andromeda", Email: "c@x.com", TicketQuota: -1})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ticket_quota", verr.Field)
}

func TestFlight_Rules(t *testing.T) {
	v := newTestValidator()
	dep := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	err := v.Flight(&domain.Flight{Name: "MEA200", DepartureCityID: 1, ArrivalCityID: 1, Departure: dep, Arrival: dep.Add(time.Hour)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "arrival_city_id", verr.Field)

	err = v.Flight(&domain.Flight{Name: "MEA200", DepartureCityID: 1, ArrivalCityID: 2, Departure: dep, Arrival: dep})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "arrival", verr.Field)

	assert.NoError(t, v.Flight(&domain.Flight{Name: "MEA200", DepartureCityID: 1, ArrivalCityID: 2, Departure: dep, Arrival: dep.Add(4 * time.Hour)}))
}

func TestPassport_Dates(t *testing.T) {
	v := newTestValidator()
	issued := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &domain.Passport{
		UserID:         1,
		CountryID:      1,
		FirstName:      "Mira",
		LastName:       "Haddad",
		DateOfBirth:    time.Date(1990, 3, 4, 0, 0, 0, 0, time.UTC),
		IssueDate:      issued,
		ExpirationDate: issued,
	}

	var verr *domain.ValidationError
	require.ErrorAs(t, v.Passport(p), &verr)
	assert.Equal(t, "expiration_date", verr.Field)

	p.ExpirationDate = issued.AddDate(10, 0, 0)
	assert.NoError(t, v.Passport(p))

	p.DateOfBirth = issued.AddDate(1, 0, 0)
	require.ErrorAs(t, v.Passport(p), &verr)
	assert.Equal(t, "date_of_birth", verr.Field)
}

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "departure_city_id", snakeCase("DepartureCityID"))
	assert.Equal(t, "phone_number", snakeCase("PhoneNumber"))
	assert.Equal(t, "user_id", snakeCase("UserID"))
	assert.Equal(t, "name", snakeCase("Name"))
}
