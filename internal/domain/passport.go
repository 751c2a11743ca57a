package domain

import "time"

// Passport shares its identifier with the owning user.
type Passport struct {
	UserID         int64     `validate:"required"`
	CountryID      int64     `validate:"required"`
	FirstName      string    `validate:"required,max=50"`
	LastName       string    `validate:"required,max=50"`
	DateOfBirth    time.Time `validate:"required"`
	IssueDate      time.Time `validate:"required"`
	ExpirationDate time.Time `validate:"required,gtfield=IssueDate"`
}
