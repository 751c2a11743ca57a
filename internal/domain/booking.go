package domain

import "time"

// Booking reserves a seat on a flight for a traveler. The issuing
// employment is the sponsor of the trip and may belong to the traveler.
type Booking struct {
	ID                   int64
	FlightID             int64     `validate:"required"`
	UserID               int64     `validate:"required"`
	EmploymentID         int64     `validate:"required"`
	DateIssued           time.Time
	CancellationFee      float64
	CancellationDeadline time.Time `validate:"required"`
}
