package memstore

import (
	"context"

	"github.com/hashicorp/go-memdb"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
)

type CompanyRepository struct {
	s *Store
}

func companyID(raw any) int64 { return raw.(*domain.Company).ID }

func checkCompany(txn *memdb.Txn, c *domain.Company, self int64) error {
	if err := requireUnique(txn, tableCompanies, "name", c.Name, self, companyID, "company", "name"); err != nil {
		return err
	}
	return requireUnique(txn, tableCompanies, "email", c.Email, self, companyID, "company", "email")
}

func (r *CompanyRepository) Create(_ context.Context, company *domain.Company) error {
	return r.s.write(func(txn *memdb.Txn) error {
		if err := checkCompany(txn, company, 0); err != nil {
			return err
		}
		row := *company
		row.ID = r.s.nextID(tableCompanies)
		if err := txn.Insert(tableCompanies, &row); err != nil {
			return err
		}
		company.ID = row.ID
		return nil
	})
}

func (r *CompanyRepository) Update(_ context.Context, company *domain.Company) error {
	return r.s.write(func(txn *memdb.Txn) error {
		ok, err := exists(txn, tableCompanies, company.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFoundError("company", company.ID)
		}
		if err := checkCompany(txn, company, company.ID); err != nil {
			return err
		}
		row := *company
		return txn.Insert(tableCompanies, &row)
	})
}

func (r *CompanyRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(txn *memdb.Txn) error {
		company, err := first[domain.Company](txn, tableCompanies, "id", id)
		if err != nil {
			return err
		}
		if company == nil {
			return domain.NewNotFoundError("company", id)
		}
		if err := restrict(txn, tableEmployments, "company", id, "company"); err != nil {
			return err
		}
		return txn.Delete(tableCompanies, company)
	})
}

func (r *CompanyRepository) GetByID(_ context.Context, id int64) (*domain.Company, error) {
	var company *domain.Company
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		company, err = first[domain.Company](txn, tableCompanies, "id", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NewNotFoundError("company", id)
	}
	return company, nil
}

func (r *CompanyRepository) List(_ context.Context) ([]domain.Company, error) {
	var companies []domain.Company
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		companies, err = collectByID(txn, tableCompanies, "id", func(c domain.Company) int64 { return c.ID })
		return err
	})
	return companies, err
}

var _ repository.CompanyRepository = (*CompanyRepository)(nil)
