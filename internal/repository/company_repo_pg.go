package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/andromeda/internal/domain"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
}

type PGCompanyRepository struct {
	db *pgxpool.Pool
}

func NewCompanyRepository(db *pgxpool.Pool) CompanyRepository {
	return &PGCompanyRepository{db: db}
}

const companyColumns = `id, name, email, phone_number, ticket_quota`

func scanCompany(row scanner) (*domain.Company, error) {
	var c domain.Company
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.TicketQuota); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	err := r.db.QueryRow(ctx, `INSERT INTO companies (name, email, phone_number, ticket_quota)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		company.Name, company.Email, company.PhoneNumber, company.TicketQuota).Scan(&company.ID)
	return translateWrite(err, "company")
}

func (r *PGCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	cmd, err := r.db.Exec(ctx, `UPDATE companies SET name=$1, email=$2, phone_number=$3, ticket_quota=$4 WHERE id=$5`,
		company.Name, company.Email, company.PhoneNumber, company.TicketQuota, company.ID)
	if err != nil {
		return translateWrite(err, "company")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("company", company.ID)
	}
	return nil
}

func (r *PGCompanyRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id=$1`, id)
	if err != nil {
		return translateDelete(err, "company")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("company", id)
	}
	return nil
}

func (r *PGCompanyRepository) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	c, err := scanCompany(r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id=$1`, id))
	if err != nil {
		return nil, translateRead(err, "company", id)
	}
	return c, nil
}

func (r *PGCompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]domain.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

var _ CompanyRepository = (*PGCompanyRepository)(nil)
