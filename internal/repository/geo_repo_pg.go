package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/andromeda/internal/domain"
)

type CountryRepository interface {
	Create(ctx context.Context, country *domain.Country) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Country, error)
	List(ctx context.Context) ([]domain.Country, error)
}

type CityRepository interface {
	Create(ctx context.Context, city *domain.City) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	List(ctx context.Context) ([]domain.City, error)
	ListByCountry(ctx context.Context, countryID int64) ([]domain.City, error)
}

type PGCountryRepository struct {
	db *pgxpool.Pool
}

func NewCountryRepository(db *pgxpool.Pool) CountryRepository {
	return &PGCountryRepository{db: db}
}

func (r *PGCountryRepository) Create(ctx context.Context, country *domain.Country) error {
	err := r.db.QueryRow(ctx, `INSERT INTO countries (name) VALUES ($1) RETURNING id`, country.Name).Scan(&country.ID)
	return translateWrite(err, "country")
}

func (r *PGCountryRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM countries WHERE id=$1`, id)
	if err != nil {
		return translateDelete(err, "country")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("country", id)
	}
	return nil
}

func (r *PGCountryRepository) GetByID(ctx context.Context, id int64) (*domain.Country, error) {
	var c domain.Country
	if err := r.db.QueryRow(ctx, `SELECT id, name FROM countries WHERE id=$1`, id).Scan(&c.ID, &c.Name); err != nil {
		return nil, translateRead(err, "country", id)
	}
	return &c, nil
}

func (r *PGCountryRepository) List(ctx context.Context) ([]domain.Country, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := make([]domain.Country, 0)
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

type PGCityRepository struct {
	db *pgxpool.Pool
}

func NewCityRepository(db *pgxpool.Pool) CityRepository {
	return &PGCityRepository{db: db}
}

func (r *PGCityRepository) Create(ctx context.Context, city *domain.City) error {
	err := r.db.QueryRow(ctx, `INSERT INTO cities (name, country_id) VALUES ($1, $2) RETURNING id`,
		city.Name, city.CountryID).Scan(&city.ID)
	return translateWrite(err, "city")
}

func (r *PGCityRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM cities WHERE id=$1`, id)
	if err != nil {
		return translateDelete(err, "city")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("city", id)
	}
	return nil
}

func (r *PGCityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	var c domain.City
	if err := r.db.QueryRow(ctx, `SELECT id, name, country_id FROM cities WHERE id=$1`, id).Scan(&c.ID, &c.Name, &c.CountryID); err != nil {
		return nil, translateRead(err, "city", id)
	}
	return &c, nil
}

func (r *PGCityRepository) List(ctx context.Context) ([]domain.City, error) {
	return r.list(ctx, `SELECT id, name, country_id FROM cities ORDER BY id`)
}

func (r *PGCityRepository) ListByCountry(ctx context.Context, countryID int64) ([]domain.City, error) {
	return r.list(ctx, `SELECT id, name, country_id FROM cities WHERE country_id=$1 ORDER BY id`, countryID)
}

func (r *PGCityRepository) list(ctx context.Context, query string, args ...any) ([]domain.City, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.CountryID); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

var (
	_ CountryRepository = (*PGCountryRepository)(nil)
	_ CityRepository    = (*PGCityRepository)(nil)
)
