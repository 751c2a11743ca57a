package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Domenick1991/andromeda/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

type column struct {
	entity string
	field  string
}

// Constraint names as declared in migrations/0001_init.sql.
var uniqueConstraints = map[string]column{
	"users_username_key":      {"user", "username"},
	"users_email_key":         {"user", "email"},
	"companies_name_key":      {"company", "name"},
	"companies_email_key":     {"company", "email"},
	"countries_name_key":      {"country", "name"},
	"flights_name_key":        {"flight", "name"},
	"employments_user_id_key": {"employment", "user_id"},
	"passports_pkey":          {"passport", "user_id"},
}

var foreignKeys = map[string]column{
	"cities_country_id_fkey":         {"city", "country_id"},
	"passports_user_id_fkey":         {"passport", "user_id"},
	"passports_country_id_fkey":      {"passport", "country_id"},
	"flights_departure_city_id_fkey": {"flight", "departure_city_id"},
	"flights_arrival_city_id_fkey":   {"flight", "arrival_city_id"},
	"employments_user_id_fkey":       {"employment", "user_id"},
	"employments_company_id_fkey":    {"employment", "company_id"},
	"bookings_flight_id_fkey":        {"booking", "flight_id"},
	"bookings_user_id_fkey":          {"booking", "user_id"},
	"bookings_employment_id_fkey":    {"booking", "employment_id"},
}

// translateWrite maps constraint failures raised by INSERT/UPDATE to domain
// errors.
func translateWrite(err error, entity string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if col, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			return domain.NewConflictError(col.entity, col.field, "")
		}
		return domain.NewConflictError(entity, pgErr.ConstraintName, "")
	case pgForeignKeyViolation:
		if col, ok := foreignKeys[pgErr.ConstraintName]; ok {
			return domain.NewReferenceError(col.entity, col.field, 0)
		}
		return domain.NewReferenceError(entity, pgErr.ConstraintName, 0)
	case pgCheckViolation:
		return domain.NewValidationError(entity, pgErr.ConstraintName, "violates a table constraint")
	}
	return err
}

// translateDelete maps a foreign-key failure on DELETE to a restrict error
// naming the referencing table.
func translateDelete(err error, entity string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return domain.InUseError(entity, pgErr.TableName)
	}
	return err
}

func translateRead(err error, entity string, id any) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFoundError(entity, id)
	}
	return err
}
