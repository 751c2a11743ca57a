package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Domenick1991/andromeda/api"
	"github.com/Domenick1991/andromeda/config"
	"github.com/Domenick1991/andromeda/internal/service/booking"
	"github.com/Domenick1991/andromeda/internal/service/companies"
	"github.com/Domenick1991/andromeda/internal/service/flights"
	"github.com/Domenick1991/andromeda/internal/service/geo"
	"github.com/Domenick1991/andromeda/internal/service/users"
)

const shutdownTimeout = 5 * time.Second

// Services bundles the use cases served over HTTP.
type Services struct {
	Users     users.UserUseCase
	Companies companies.CompanyUseCase
	Geo       geo.GeoUseCase
	Flights   flights.FlightUseCase
	Bookings  booking.BookingUseCase
}

// Run starts the HTTP server and blocks until ctx is canceled or the server
// fails.
func Run(ctx context.Context, cfg *config.Config, svc Services, logger *zap.Logger) error {
	srv := NewServer(cfg.HTTP, svc, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewServer(cfg config.HTTPConfig, svc Services, logger *zap.Logger) *http.Server {
	router := api.NewRouter(logger, cfg.SwaggerDir,
		api.NewUserHandler(svc.Users),
		api.NewCompanyHandler(svc.Companies),
		api.NewGeoHandler(svc.Geo),
		api.NewFlightHandler(svc.Flights),
		api.NewBookingHandler(svc.Bookings),
	)
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
