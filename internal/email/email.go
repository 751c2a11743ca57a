package email

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/Domenick1991/andromeda/config"
	"github.com/Domenick1991/andromeda/internal/kafka"
)

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender turns booking notifications into emails. Without a dialer it only
// logs what it would have sent.
type Sender struct {
	dialer Dialer
	from   string
	logger *zap.Logger
}

func NewSender(cfg config.EmailConfig, logger *zap.Logger) *Sender {
	s := &Sender{from: cfg.From, logger: logger}
	if cfg.SMTPHost != "" {
		s.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password)
	}
	return s
}

func NewSenderWithDialer(d Dialer, from string, logger *zap.Logger) *Sender {
	return &Sender{dialer: d, from: from, logger: logger}
}

func (s *Sender) Send(_ context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		s.logger.Warn("notification without recipient", zap.String("event_id", event.ID), zap.Int64("booking_id", event.BookingID))
		return nil
	}

	subject, body := render(event)
	if s.dialer == nil {
		s.logger.Info("email notification",
			zap.String("to", event.Email),
			zap.String("subject", subject),
			zap.Int64("booking_id", event.BookingID),
		)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", event.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send %s to %s: %w", event.Type, event.Email, err)
	}
	return nil
}

func render(event kafka.BookingEvent) (subject, body string) {
	flight := event.FlightName
	if flight == "" {
		flight = fmt.Sprintf("flight #%d", event.FlightID)
	}
	switch event.Type {
	case kafka.BookingCreated:
		return "Booking confirmed: " + flight,
			fmt.Sprintf("Your booking #%d on %s is registered. Free cancellation until %s; after that the fee is %.2f.",
				event.BookingID, flight, event.CancellationDeadline, event.CancellationFee)
	case kafka.BookingDeleted:
		return "Booking cancelled: " + flight,
			fmt.Sprintf("Your booking #%d on %s has been cancelled.", event.BookingID, flight)
	case kafka.CancellationDeadlineNearby:
		return "Cancellation deadline tomorrow: " + flight,
			fmt.Sprintf("The cancellation deadline for booking #%d on %s is %s. Cancelling later costs %.2f.",
				event.BookingID, flight, event.CancellationDeadline, event.CancellationFee)
	default:
		return "Booking update: " + flight,
			fmt.Sprintf("Booking #%d on %s changed (%s).", event.BookingID, flight, event.Type)
	}
}
