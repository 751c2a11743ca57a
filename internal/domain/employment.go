package domain

import "time"

// Employment links a user to a company. A user holds at most one.
type Employment struct {
	ID        int64
	UserID    int64 `validate:"required"`
	CompanyID int64 `validate:"required"`
	Date      time.Time
}
