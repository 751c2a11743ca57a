package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/andromeda/config"
	"github.com/Domenick1991/andromeda/internal/auth"
	"github.com/Domenick1991/andromeda/internal/bootstrap"
	"github.com/Domenick1991/andromeda/internal/cache"
	"github.com/Domenick1991/andromeda/internal/kafka"
	"github.com/Domenick1991/andromeda/internal/observability"
	"github.com/Domenick1991/andromeda/internal/service/booking"
	"github.com/Domenick1991/andromeda/internal/service/companies"
	"github.com/Domenick1991/andromeda/internal/service/flights"
	"github.com/Domenick1991/andromeda/internal/service/geo"
	"github.com/Domenick1991/andromeda/internal/service/users"
	"github.com/Domenick1991/andromeda/internal/validation"
)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := bootstrap.OpenRepositories(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("open storage", zap.Error(err))
	}
	defer closeRepos()

	validator := validation.New(validation.Options{
		DisallowedCountries: cfg.Validation.DisallowedCountries,
		CheckMXRecords:      cfg.Validation.CheckMXRecords,
	})

	var (
		flightOpts  = []flights.FlightServiceOption{flights.WithLogger(logger)}
		geoOpts     = []geo.GeoServiceOption{geo.WithLogger(logger)}
		userOpts    = []users.UserServiceOption{users.WithLogger(logger)}
		bookingOpts = []booking.BookingServiceOption{
			booking.WithLogger(logger),
			booking.WithPolicy(booking.Policy{
				NonNegativeFee:          cfg.Booking.EnforceNonNegativeFee,
				DeadlineBeforeDeparture: cfg.Booking.EnforceDeadlineBeforeDeparture,
			}),
		}
	)

	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, reads go straight to storage", zap.Error(err))
		}
		flightOpts = append(flightOpts, flights.WithCache(redisCache))
		geoOpts = append(geoOpts, geo.WithCache(redisCache))
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		defer producer.Close()
		userOpts = append(userOpts, users.WithEvents(producer, cfg.Kafka.UserEventsTopic))
		bookingOpts = append(bookingOpts,
			booking.WithEvents(producer, cfg.Kafka.BookingEventsTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	services := bootstrap.Services{
		Users:     users.NewUserService(repos, validator, auth.NewBcryptHasher(cfg.Auth.BcryptCost), userOpts...),
		Companies: companies.NewCompanyService(repos.Companies, repos.Employments, validator),
		Geo:       geo.NewGeoService(repos.Countries, repos.Cities, validator, geoOpts...),
		Flights:   flights.NewFlightService(repos.Flights, repos.Bookings, validator, flightOpts...),
		Bookings:  booking.NewBookingService(repos, validator, bookingOpts...),
	}

	if err := bootstrap.Run(ctx, cfg, services, logger); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
