package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	UserCreated         = "user_created"
	UserUpdated         = "user_updated"
	UserDeleted         = "user_deleted"
	UserPasswordChanged = "user_password_changed"

	BookingCreated             = "booking_created"
	BookingDeleted             = "booking_deleted"
	CancellationDeadlineNearby = "cancellation_deadline_reminder"
)

// UserEvent never carries the password or its hash.
type UserEvent struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	UserID   int64     `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	At       time.Time `json:"at"`
}

func NewUserEvent(eventType string, userID int64, username, email string) UserEvent {
	return UserEvent{
		ID:       uuid.NewString(),
		Type:     eventType,
		UserID:   userID,
		Username: username,
		Email:    email,
		At:       time.Now().UTC(),
	}
}

type BookingEvent struct {
	ID                   string    `json:"id"`
	Type                 string    `json:"type"`
	BookingID            int64     `json:"booking_id"`
	FlightID             int64     `json:"flight_id"`
	FlightName           string    `json:"flight_name,omitempty"`
	UserID               int64     `json:"user_id"`
	EmploymentID         int64     `json:"employment_id"`
	Email                string    `json:"email,omitempty"`
	CancellationFee      float64   `json:"cancellation_fee"`
	CancellationDeadline string    `json:"cancellation_deadline"`
	At                   time.Time `json:"at"`
}

// Key partitions booking events by booking so a consumer sees them in order.
func (e BookingEvent) Key() string {
	return fmt.Sprintf("booking-%d", e.BookingID)
}

func DecodeBookingEvent(msg kafka.Message) (BookingEvent, error) {
	var event BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return BookingEvent{}, fmt.Errorf("decode booking event at offset %d: %w", msg.Offset, err)
	}
	return event, nil
}
