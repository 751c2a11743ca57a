package memstore

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
)

type CountryRepository struct {
	s *Store
}

func countryID(raw any) int64 { return raw.(*domain.Country).ID }

func (r *CountryRepository) Create(_ context.Context, country *domain.Country) error {
	return r.s.write(func(txn *memdb.Txn) error {
		if err := requireUnique(txn, tableCountries, "name", country.Name, 0, countryID, "country", "name"); err != nil {
			return err
		}
		row := *country
		row.ID = r.s.nextID(tableCountries)
		if err := txn.Insert(tableCountries, &row); err != nil {
			return err
		}
		country.ID = row.ID
		return nil
	})
}

func (r *CountryRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(txn *memdb.Txn) error {
		country, err := first[domain.Country](txn, tableCountries, "id", id)
		if err != nil {
			return err
		}
		if country == nil {
			return domain.NewNotFoundError("country", id)
		}
		if err := restrict(txn, tableCities, "country", id, "country"); err != nil {
			return err
		}
		if err := restrict(txn, tablePassports, "country", id, "country"); err != nil {
			return err
		}
		return txn.Delete(tableCountries, country)
	})
}

func (r *CountryRepository) GetByID(_ context.Context, id int64) (*domain.Country, error) {
	var country *domain.Country
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		country, err = first[domain.Country](txn, tableCountries, "id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, domain.NewNotFoundError("country", id)
	}
	return country, nil
}

// List iterates the name index, which go-memdb keeps sorted.
func (r *CountryRepository) List(_ context.Context) ([]domain.Country, error) {
	var countries []domain.Country
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		countries, err = collect[domain.Country](txn, tableCountries, "name")
		return err
	})
	return countries, err
}

type CityRepository struct {
	s *Store
}

func (r *CityRepository) Create(_ context.Context, city *domain.City) error {
	return r.s.write(func(txn *memdb.Txn) error {
		if err := requireRef(txn, tableCountries, city.CountryID, "city", "country_id"); err != nil {
			return err
		}
		row := *city
		row.ID = r.s.nextID(tableCities)
		if err := txn.Insert(tableCities, &row); err != nil {
			return err
		}
		city.ID = row.ID
		return nil
	})
}

func (r *CityRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(txn *memdb.Txn) error {
		city, err := first[domain.City](txn, tableCities, "id", id)
		if err != nil {
			return err
		}
		if city == nil {
			return domain.NewNotFoundError("city", id)
		}
		if err := restrict(txn, tableFlights, "departure_city", id, "city"); err != nil {
			return err
		}
		if err := restrict(txn, tableFlights, "arrival_city", id, "city"); err != nil {
			return err
		}
		return txn.Delete(tableCities, city)
	})
}

func (r *CityRepository) GetByID(_ context.Context, id int64) (*domain.City, error) {
	var city *domain.City
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		city, err = first[domain.City](txn, tableCities, "id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, domain.NewNotFoundError("city", id)
	}
	return city, nil
}

func cityKey(c domain.City) int64 { return c.ID }

func (r *CityRepository) List(_ context.Context) ([]domain.City, error) {
	var cities []domain.City
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		cities, err = collectByID(txn, tableCities, "id", cityKey)
		return err
	})
	return cities, err
}

func (r *CityRepository) ListByCountry(_ context.Context, countryID int64) ([]domain.City, error) {
	var cities []domain.City
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		cities, err = collectByID(txn, tableCities, "country", cityKey, countryID)
		return err
	})
	return cities, err
}

var (
	_ repository.CountryRepository = (*CountryRepository)(nil)
	_ repository.CityRepository    = (*CityRepository)(nil)
)
