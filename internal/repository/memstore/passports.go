package memstore

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
)

type PassportRepository struct {
	s *Store
}

func checkPassportRefs(txn *memdb.Txn, p *domain.Passport) error {
	if err := requireRef(txn, tableUsers, p.UserID, "passport", "user_id"); err != nil {
		return err
	}
	return requireRef(txn, tableCountries, p.CountryID, "passport", "country_id")
}

func (r *PassportRepository) Create(_ context.Context, passport *domain.Passport) error {
	return r.s.write(func(txn *memdb.Txn) error {
		if err := checkPassportRefs(txn, passport); err != nil {
			return err
		}
		ok, err := exists(txn, tablePassports, passport.UserID)
		if err != nil {
			return err
		}
		if ok {
			return domain.NewConflictError("passport", "user_id", "")
		}
		row := *passport
		return txn.Insert(tablePassports, &row)
	})
}

func (r *PassportRepository) Update(_ context.Context, passport *domain.Passport) error {
	return r.s.write(func(txn *memdb.Txn) error {
		ok, err := exists(txn, tablePassports, passport.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFoundError("passport", passport.UserID)
		}
		if err := checkPassportRefs(txn, passport); err != nil {
			return err
		}
		row := *passport
		return txn.Insert(tablePassports, &row)
	})
}

func (r *PassportRepository) Delete(_ context.Context, userID int64) error {
	return r.s.write(func(txn *memdb.Txn) error {
		n, err := txn.DeleteAll(tablePassports, "id", userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.NewNotFoundError("passport", userID)
		}
		return nil
	})
}

func (r *PassportRepository) GetByUserID(_ context.Context, userID int64) (*domain.Passport, error) {
	var passport *domain.Passport
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		passport, err = first[domain.Passport](txn, tablePassports, "id", userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if passport == nil {
		return nil, domain.NewNotFoundError("passport", userID)
	}
	return passport, nil
}

var _ repository.PassportRepository = (*PassportRepository)(nil)
