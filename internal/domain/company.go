package domain

type Company struct {
	ID          int64
	Name        string `validate:"required,max=50"`
	Email       string `validate:"required"`
	PhoneNumber *string
	TicketQuota int `validate:"gte=0"`
}
