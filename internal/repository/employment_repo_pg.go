package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/andromeda/internal/domain"
)

type EmploymentRepository interface {
	Create(ctx context.Context, employment *domain.Employment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Employment, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Employment, error)
	List(ctx context.Context) ([]domain.Employment, error)
	ListByCompany(ctx context.Context, companyID int64) ([]domain.Employment, error)
}

type PGEmploymentRepository struct {
	db *pgxpool.Pool
}

func NewEmploymentRepository(db *pgxpool.Pool) EmploymentRepository {
	return &PGEmploymentRepository{db: db}
}

const employmentColumns = `id, user_id, company_id, date`

func scanEmployment(row scanner) (*domain.Employment, error) {
	var e domain.Employment
	if err := row.Scan(&e.ID, &e.UserID, &e.CompanyID, &e.Date); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PGEmploymentRepository) Create(ctx context.Context, e *domain.Employment) error {
	err := r.db.QueryRow(ctx, `INSERT INTO employments (user_id, company_id, date) VALUES ($1, $2, $3) RETURNING id`,
		e.UserID, e.CompanyID, e.Date).Scan(&e.ID)
	return translateWrite(err, "employment")
}

func (r *PGEmploymentRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM employments WHERE id=$1`, id)
	if err != nil {
		return translateDelete(err, "employment")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("employment", id)
	}
	return nil
}

func (r *PGEmploymentRepository) GetByID(ctx context.Context, id int64) (*domain.Employment, error) {
	e, err := scanEmployment(r.db.QueryRow(ctx, `SELECT `+employmentColumns+` FROM employments WHERE id=$1`, id))
	if err != nil {
		return nil, translateRead(err, "employment", id)
	}
	return e, nil
}

func (r *PGEmploymentRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Employment, error) {
	e, err := scanEmployment(r.db.QueryRow(ctx, `SELECT `+employmentColumns+` FROM employments WHERE user_id=$1`, userID))
	if err != nil {
		return nil, translateRead(err, "employment", nil)
	}
	return e, nil
}

func (r *PGEmploymentRepository) List(ctx context.Context) ([]domain.Employment, error) {
	return r.list(ctx, `SELECT `+employmentColumns+` FROM employments ORDER BY id`)
}

func (r *PGEmploymentRepository) ListByCompany(ctx context.Context, companyID int64) ([]domain.Employment, error) {
	return r.list(ctx, `SELECT `+employmentColumns+` FROM employments WHERE company_id=$1 ORDER BY id`, companyID)
}

func (r *PGEmploymentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Employment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employments := make([]domain.Employment, 0)
	for rows.Next() {
		e, err := scanEmployment(rows)
		if err != nil {
			return nil, err
		}
		employments = append(employments, *e)
	}
	return employments, rows.Err()
}

var _ EmploymentRepository = (*PGEmploymentRepository)(nil)
