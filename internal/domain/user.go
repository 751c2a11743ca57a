package domain

// User is a traveler. PasswordHash only ever holds the output of a
// PasswordHasher; plaintext passwords never reach this struct.
type User struct {
	ID           int64
	Username     string  `validate:"required,max=50"`
	Email        string  `validate:"required"`
	PasswordHash string  `validate:"required"`
	PhoneNumber  *string
}
