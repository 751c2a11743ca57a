package repository

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domenick1991/andromeda/internal/domain"
)

func TestTranslateWrite_UniqueViolations(t *testing.T) {
	tests := []struct {
		constraint string
		entity     string
		field      string
	}{
		{"users_username_key", "user", "username"},
		{"users_email_key", "user", "email"},
		{"companies_name_key", "company", "name"},
		{"companies_email_key", "company", "email"},
		{"countries_name_key", "country", "name"},
		{"flights_name_key", "flight", "name"},
		{"employments_user_id_key", "employment", "user_id"},
		{"passports_pkey", "passport", "user_id"},
	}
	require.Len(t, tests, len(uniqueConstraints))

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			err := translateWrite(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: tt.constraint}, "ignored")

			var cerr *domain.ConflictError
			require.ErrorAs(t, err, &cerr)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.Equal(t, tt.entity, cerr.Entity)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}

	err := translateWrite(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "flights_name_key"}, "flight")
	assert.EqualError(t, err, "flight with this name already exists")
}

func TestTranslateWrite_ForeignKeyViolations(t *testing.T) {
	tests := []struct {
		constraint string
		entity     string
		field      string
	}{
		{"cities_country_id_fkey", "city", "country_id"},
		{"passports_user_id_fkey", "passport", "user_id"},
		{"passports_country_id_fkey", "passport", "country_id"},
		{"flights_departure_city_id_fkey", "flight", "departure_city_id"},
		{"flights_arrival_city_id_fkey", "flight", "arrival_city_id"},
		{"employments_user_id_fkey", "employment", "user_id"},
		{"employments_company_id_fkey", "employment", "company_id"},
		{"bookings_flight_id_fkey", "booking", "flight_id"},
		{"bookings_user_id_fkey", "booking", "user_id"},
		{"bookings_employment_id_fkey", "booking", "employment_id"},
	}
	require.Len(t, tests, len(foreignKeys))

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			err := translateWrite(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: tt.constraint}, "ignored")

			var rerr *domain.ReferenceError
			require.ErrorAs(t, err, &rerr)
			assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
			assert.Equal(t, tt.entity, rerr.Entity)
			assert.Equal(t, tt.field, rerr.Field)
			assert.False(t, rerr.InUse)
		})
	}
}

func TestTranslateWrite_Fallbacks(t *testing.T) {
	err := translateWrite(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "flights_code_key"}, "flight")
	var cerr *domain.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "flight", cerr.Entity)
	assert.Equal(t, "flights_code_key", cerr.Field)

	err = translateWrite(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "bookings_seat_id_fkey"}, "booking")
	var rerr *domain.ReferenceError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "booking", rerr.Entity)
	assert.Equal(t, "bookings_seat_id_fkey", rerr.Field)

	err = translateWrite(&pgconn.PgError{Code: pgCheckViolation, ConstraintName: "flights_times_check"}, "flight")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "flights_times_check", verr.Field)

	other := &pgconn.PgError{Code: "40001"}
	assert.Same(t, other, translateWrite(other, "flight"))

	plain := errors.New("connection reset")
	assert.Same(t, plain, translateWrite(plain, "flight"))
	assert.NoError(t, translateWrite(nil, "flight"))
}

func TestTranslateWrite_Wrapped(t *testing.T) {
	err := translateWrite(fmt.Errorf("insert user: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_email_key"}), "user")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTranslateDelete(t *testing.T) {
	err := translateDelete(&pgconn.PgError{Code: pgForeignKeyViolation, TableName: "bookings"}, "user")

	var rerr *domain.ReferenceError
	require.ErrorAs(t, err, &rerr)
	assert.True(t, rerr.InUse)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
	assert.EqualError(t, err, "user is still referenced by bookings")

	other := &pgconn.PgError{Code: pgUniqueViolation}
	assert.Same(t, other, translateDelete(other, "user"))
	assert.NoError(t, translateDelete(nil, "user"))
}

func TestTranslateRead(t *testing.T) {
	err := translateRead(pgx.ErrNoRows, "flight", int64(3))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "flight 3 not found")

	err = translateRead(fmt.Errorf("scan: %w", pgx.ErrNoRows), "passport", int64(2))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	plain := errors.New("conn busy")
	assert.Same(t, plain, translateRead(plain, "flight", int64(3)))
	assert.NoError(t, translateRead(nil, "flight", int64(3)))
}

// The constraint names looked up above must match the schema.
func TestConstraintNamesMatchSchema(t *testing.T) {
	schema, err := os.ReadFile("../../migrations/0001_init.sql")
	require.NoError(t, err)

	names := make([]string, 0, len(uniqueConstraints)+len(foreignKeys))
	for name := range uniqueConstraints {
		names = append(names, name)
	}
	for name := range foreignKeys {
		names = append(names, name)
	}

	for _, name := range names {
		if table, ok := strings.CutSuffix(name, "_pkey"); ok {
			assert.Contains(t, string(schema), "CREATE TABLE IF NOT EXISTS "+table, name)
			continue
		}
		assert.Contains(t, string(schema), "CONSTRAINT "+name+" ", name)
	}
}

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}

	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewBookingRepository(pool))

	repos := NewPostgres(pool)
	assert.NotNil(t, repos.Users)
	assert.NotNil(t, repos.Companies)
	assert.NotNil(t, repos.Countries)
	assert.NotNil(t, repos.Cities)
	assert.NotNil(t, repos.Passports)
	assert.NotNil(t, repos.Flights)
	assert.NotNil(t, repos.Employments)
	assert.NotNil(t, repos.Bookings)
}
