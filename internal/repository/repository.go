package repository

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles one repository per entity so callers can swap the
// Postgres backend for the in-memory one.
type Repositories struct {
	Users       UserRepository
	Companies   CompanyRepository
	Countries   CountryRepository
	Cities      CityRepository
	Passports   PassportRepository
	Flights     FlightRepository
	Employments EmploymentRepository
	Bookings    BookingRepository
}

func NewPostgres(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:       NewUserRepository(pool),
		Companies:   NewCompanyRepository(pool),
		Countries:   NewCountryRepository(pool),
		Cities:      NewCityRepository(pool),
		Passports:   NewPassportRepository(pool),
		Flights:     NewFlightRepository(pool),
		Employments: NewEmploymentRepository(pool),
		Bookings:    NewBookingRepository(pool),
	}
}

type scanner interface {
	Scan(dest ...any) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
