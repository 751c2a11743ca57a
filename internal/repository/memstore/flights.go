package memstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/hashicorp/go-memdb"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
)

type FlightRepository struct {
	s *Store
}

func flightID(raw any) int64 { return raw.(*domain.Flight).ID }

func checkFlight(txn *memdb.Txn, f *domain.Flight, self int64) error {
	if err := requireUnique(txn, tableFlights, "name", f.Name, self, flightID, "flight", "name"); err != nil {
		return err
	}
	if err := requireRef(txn, tableCities, f.DepartureCityID, "flight", "departure_city_id"); err != nil {
		return err
	}
	return requireRef(txn, tableCities, f.ArrivalCityID, "flight", "arrival_city_id")
}

func (r *FlightRepository) Create(_ context.Context, flight *domain.Flight) error {
	return r.s.write(func(txn *memdb.Txn) error {
		if err := checkFlight(txn, flight, 0); err != nil {
			return err
		}
		row := *flight
		row.ID = r.s.nextID(tableFlights)
		if err := txn.Insert(tableFlights, &row); err != nil {
			return err
		}
		flight.ID = row.ID
		return nil
	})
}

func (r *FlightRepository) Update(_ context.Context, flight *domain.Flight) error {
	return r.s.write(func(txn *memdb.Txn) error {
		ok, err := exists(txn, tableFlights, flight.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFoundError("flight", flight.ID)
		}
		if err := checkFlight(txn, flight, flight.ID); err != nil {
			return err
		}
		row := *flight
		return txn.Insert(tableFlights, &row)
	})
}

func (r *FlightRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(txn *memdb.Txn) error {
		flight, err := first[domain.Flight](txn, tableFlights, "id", id)
		if err != nil {
			return err
		}
		if flight == nil {
			return domain.NewNotFoundError("flight", id)
		}
		if err := restrict(txn, tableBookings, "flight", id, "flight"); err != nil {
			return err
		}
		return txn.Delete(tableFlights, flight)
	})
}

// List orders flights by departure time, then id.
func (r *FlightRepository) List(_ context.Context) ([]domain.Flight, error) {
	var flights []domain.Flight
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		flights, err = collect[domain.Flight](txn, tableFlights, "id")
		return err
	})
	slices.SortFunc(flights, func(a, b domain.Flight) int {
		if c := a.Departure.Compare(b.Departure); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return flights, err
}

func (r *FlightRepository) GetByID(_ context.Context, id int64) (*domain.Flight, error) {
	var flight *domain.Flight
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		flight, err = first[domain.Flight](txn, tableFlights, "id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, domain.NewNotFoundError("flight", id)
	}
	return flight, nil
}

var _ repository.FlightRepository = (*FlightRepository)(nil)
