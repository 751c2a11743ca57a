package memstore

import (
	"context"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
)

type BookingRepository struct {
	s *Store
}

func bookingKey(b domain.Booking) int64 { return b.ID }

func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	return r.s.write(func(txn *memdb.Txn) error {
		if err := requireRef(txn, tableFlights, booking.FlightID, "booking", "flight_id"); err != nil {
			return err
		}
		if err := requireRef(txn, tableUsers, booking.UserID, "booking", "user_id"); err != nil {
			return err
		}
		if err := requireRef(txn, tableEmployments, booking.EmploymentID, "booking", "employment_id"); err != nil {
			return err
		}
		row := *booking
		row.ID = r.s.nextID(tableBookings)
		if err := txn.Insert(tableBookings, &row); err != nil {
			return err
		}
		booking.ID = row.ID
		return nil
	})
}

func (r *BookingRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(txn *memdb.Txn) error {
		n, err := txn.DeleteAll(tableBookings, "id", id)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NewNotFoundError("booking", id)
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	var booking *domain.Booking
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		booking, err = first[domain.Booking](txn, tableBookings, "id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.NewNotFoundError("booking", id)
	}
	return booking, nil
}

func (r *BookingRepository) List(_ context.Context) ([]domain.Booking, error) {
	return r.list("id")
}

func (r *BookingRepository) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	return r.list("user", userID)
}

func (r *BookingRepository) ListByFlight(_ context.Context, flightID int64) ([]domain.Booking, error) {
	return r.list("flight", flightID)
}

func (r *BookingRepository) ListByCancellationDeadline(_ context.Context, day time.Time) ([]domain.Booking, error) {
	all, err := r.list("id")
	if err != nil {
		return nil, err
	}
	want := day.Format(time.DateOnly)
	due := make([]domain.Booking, 0)
	for _, b := range all {
		if b.CancellationDeadline.Format(time.DateOnly) == want {
			due = append(due, b)
		}
	}
	return due, nil
}

func (r *BookingRepository) list(index string, args ...any) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		bookings, err = collectByID(txn, tableBookings, index, bookingKey, args...)
		return err
	})
	return bookings, err
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
