package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/andromeda/internal/domain"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, name, departure_city_id, arrival_city_id, departure, arrival`

func scanFlight(row scanner) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Name, &f.DepartureCityID, &f.ArrivalCityID, &f.Departure, &f.Arrival); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (name, departure_city_id, arrival_city_id, departure, arrival)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		flight.Name, flight.DepartureCityID, flight.ArrivalCityID, flight.Departure, flight.Arrival).Scan(&flight.ID)
	return translateWrite(err, "flight")
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET name=$1, departure_city_id=$2, arrival_city_id=$3, departure=$4, arrival=$5 WHERE id=$6`,
		flight.Name, flight.DepartureCityID, flight.ArrivalCityID, flight.Departure, flight.Arrival, flight.ID)
	if err != nil {
		return translateWrite(err, "flight")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("flight", flight.ID)
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return translateDelete(err, "flight")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("flight", id)
	}
	return nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if err != nil {
		return nil, translateRead(err, "flight", id)
	}
	return f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
