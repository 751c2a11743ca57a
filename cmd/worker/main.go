package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Domenick1991/andromeda/config"
	"github.com/Domenick1991/andromeda/internal/bootstrap"
	"github.com/Domenick1991/andromeda/internal/email"
	"github.com/Domenick1991/andromeda/internal/kafka"
	"github.com/Domenick1991/andromeda/internal/observability"
	"github.com/Domenick1991/andromeda/internal/service/booking"
	"github.com/Domenick1991/andromeda/internal/validation"
)

// The worker queues cancellation deadline reminders and turns notification
// events into emails.
func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if len(cfg.Kafka.Brokers) == 0 {
		logger.Fatal("worker needs kafka.brokers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := bootstrap.OpenRepositories(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	defer closeRepos()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
	defer producer.Close()

	bookingService := booking.NewBookingService(repos,
		validation.New(validation.Options{DisallowedCountries: cfg.Validation.DisallowedCountries}),
		booking.WithEvents(producer, cfg.Kafka.BookingEventsTopic),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(cfg.Email, logger)

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			event, err := kafka.DecodeBookingEvent(msg)
			if err != nil {
				logger.Warn("skipping undecodable event", zap.Error(err), zap.Int64("offset", msg.Offset))
				return nil
			}
			if err := emailSender.Send(ctx, event); err != nil {
				logger.Error("send notification", zap.Error(err), zap.String("event_id", event.ID))
			}
			return nil
		})
		if err != nil {
			logger.Error("consumer stopped", zap.Error(err))
			stop()
		}
	}()

	sweep := func() {
		sent, err := bookingService.RemindUpcomingDeadlines(ctx)
		if err != nil {
			logger.Error("remind upcoming deadlines", zap.Error(err))
			return
		}
		if sent > 0 {
			logger.Info("queued deadline reminders", zap.Int("count", sent))
		}
	}

	reminderTicker := time.NewTicker(time.Duration(cfg.Worker.ReminderSweepHours) * time.Hour)
	defer reminderTicker.Stop()

	sweep()
	for {
		select {
		case <-reminderTicker.C:
			sweep()
		case <-ctx.Done():
			logger.Info("worker shutting down")
			return
		}
	}
}
