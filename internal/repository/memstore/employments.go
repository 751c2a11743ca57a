package memstore

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
)

type EmploymentRepository struct {
	s *Store
}

func employmentID(raw any) int64 { return raw.(*domain.Employment).ID }

func employmentKey(e domain.Employment) int64 { return e.ID }

func (r *EmploymentRepository) Create(_ context.Context, employment *domain.Employment) error {
	return r.s.write(func(txn *memdb.Txn) error {
		if err := requireRef(txn, tableUsers, employment.UserID, "employment", "user_id"); err != nil {
			return err
		}
		if err := requireRef(txn, tableCompanies, employment.CompanyID, "employment", "company_id"); err != nil {
			return err
		}
		if err := requireUnique(txn, tableEmployments, "user", employment.UserID, 0, employmentID, "employment", "user_id"); err != nil {
			return err
		}
		row := *employment
		row.ID = r.s.nextID(tableEmployments)
		if err := txn.Insert(tableEmployments, &row); err != nil {
			return err
		}
		employment.ID = row.ID
		return nil
	})
}

func (r *EmploymentRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(txn *memdb.Txn) error {
		employment, err := first[domain.Employment](txn, tableEmployments, "id", id)
		if err != nil {
			return err
		}
		if employment == nil {
			return domain.NewNotFoundError("employment", id)
		}
		if err := restrict(txn, tableBookings, "employment", id, "employment"); err != nil {
			return err
		}
		return txn.Delete(tableEmployments, employment)
	})
}

func (r *EmploymentRepository) GetByID(_ context.Context, id int64) (*domain.Employment, error) {
	return r.get("id", id, id)
}

func (r *EmploymentRepository) GetByUserID(_ context.Context, userID int64) (*domain.Employment, error) {
	return r.get("user", userID, nil)
}

func (r *EmploymentRepository) get(index string, value int64, key any) (*domain.Employment, error) {
	var employment *domain.Employment
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		employment, err = first[domain.Employment](txn, tableEmployments, index, value)
		return err
	})
	if err != nil {
		return nil, err
	}
	if employment == nil {
		return nil, domain.NewNotFoundError("employment", key)
	}
	return employment, nil
}

func (r *EmploymentRepository) List(_ context.Context) ([]domain.Employment, error) {
	var employments []domain.Employment
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		employments, err = collectByID(txn, tableEmployments, "id", employmentKey)
		return err
	})
	return employments, err
}

func (r *EmploymentRepository) ListByCompany(_ context.Context, companyID int64) ([]domain.Employment, error) {
	var employments []domain.Employment
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		employments, err = collectByID(txn, tableEmployments, "company", employmentKey, companyID)
		return err
	})
	return employments, err
}

var _ repository.EmploymentRepository = (*EmploymentRepository)(nil)
