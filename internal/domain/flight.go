package domain

import "time"

type Flight struct {
	ID              int64
	Name            string    `validate:"required,max=50"`
	DepartureCityID int64     `validate:"required"`
	ArrivalCityID   int64     `validate:"required,nefield=DepartureCityID"`
	Departure       time.Time `validate:"required"`
	Arrival         time.Time `validate:"required,gtfield=Departure"`
}
