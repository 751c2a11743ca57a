package api

import (
	"time"

	"github.com/Domenick1991/andromeda/internal/domain"
)

type userResponse struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, Email: u.Email, PhoneNumber: u.PhoneNumber}
}

type companyResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	TicketQuota int     `json:"ticket_quota"`
}

func newCompanyResponse(c *domain.Company) companyResponse {
	return companyResponse{ID: c.ID, Name: c.Name, Email: c.Email, PhoneNumber: c.PhoneNumber, TicketQuota: c.TicketQuota}
}

type countryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type cityResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CountryID int64  `json:"country_id"`
}

type passportResponse struct {
	UserID         int64  `json:"user_id"`
	CountryID      int64  `json:"country_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	DateOfBirth    Date   `json:"date_of_birth"`
	IssueDate      Date   `json:"issue_date"`
	ExpirationDate Date   `json:"expiration_date"`
}

func newPassportResponse(p *domain.Passport) passportResponse {
	return passportResponse{
		UserID:         p.UserID,
		CountryID:      p.CountryID,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		DateOfBirth:    Date{p.DateOfBirth},
		IssueDate:      Date{p.IssueDate},
		ExpirationDate: Date{p.ExpirationDate},
	}
}

type flightResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DepartureCityID int64     `json:"departure_city_id"`
	ArrivalCityID   int64     `json:"arrival_city_id"`
	Departure       time.Time `json:"departure"`
	Arrival         time.Time `json:"arrival"`
}

func newFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:              f.ID,
		Name:            f.Name,
		DepartureCityID: f.DepartureCityID,
		ArrivalCityID:   f.ArrivalCityID,
		Departure:       f.Departure,
		Arrival:         f.Arrival,
	}
}

type employmentResponse struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"user_id"`
	CompanyID int64 `json:"company_id"`
	Date      Date  `json:"date"`
}

func newEmploymentResponse(e *domain.Employment) employmentResponse {
	return employmentResponse{ID: e.ID, UserID: e.UserID, CompanyID: e.CompanyID, Date: Date{e.Date}}
}

type bookingResponse struct {
	ID                   int64     `json:"id"`
	FlightID             int64     `json:"flight_id"`
	UserID               int64     `json:"user_id"`
	EmploymentID         int64     `json:"employment_id"`
	DateIssued           time.Time `json:"date_issued"`
	CancellationFee      float64   `json:"cancellation_fee"`
	CancellationDeadline Date      `json:"cancellation_deadline"`
}

func newBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:                   b.ID,
		FlightID:             b.FlightID,
		UserID:               b.UserID,
		EmploymentID:         b.EmploymentID,
		DateIssued:           b.DateIssued,
		CancellationFee:      b.CancellationFee,
		CancellationDeadline: Date{b.CancellationDeadline},
	}
}

// mapAll converts a slice of records, never returning nil so that empty
// collections encode as [].
func mapAll[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}

func newCountryResponse(c *domain.Country) countryResponse {
	return countryResponse{ID: c.ID, Name: c.Name}
}

func newCityResponse(c *domain.City) cityResponse {
	return cityResponse{ID: c.ID, Name: c.Name, CountryID: c.CountryID}
}
