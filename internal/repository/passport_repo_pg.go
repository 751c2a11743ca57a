package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/andromeda/internal/domain"
)

// PassportRepository keys passports by their owner's user ID.
type PassportRepository interface {
	Create(ctx context.Context, passport *domain.Passport) error
	Update(ctx context.Context, passport *domain.Passport) error
	Delete(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Passport, error)
}

type PGPassportRepository struct {
	db *pgxpool.Pool
}

func NewPassportRepository(db *pgxpool.Pool) PassportRepository {
	return &PGPassportRepository{db: db}
}

func (r *PGPassportRepository) Create(ctx context.Context, p *domain.Passport) error {
	_, err := r.db.Exec(ctx, `INSERT INTO passports (user_id, country_id, first_name, last_name, date_of_birth, issue_date, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.UserID, p.CountryID, p.FirstName, p.LastName, p.DateOfBirth, p.IssueDate, p.ExpirationDate)
	return translateWrite(err, "passport")
}

func (r *PGPassportRepository) Update(ctx context.Context, p *domain.Passport) error {
	cmd, err := r.db.Exec(ctx, `UPDATE passports SET country_id=$1, first_name=$2, last_name=$3, date_of_birth=$4, issue_date=$5, expiration_date=$6
		WHERE user_id=$7`,
		p.CountryID, p.FirstName, p.LastName, p.DateOfBirth, p.IssueDate, p.ExpirationDate, p.UserID)
	if err != nil {
		return translateWrite(err, "passport")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("passport", p.UserID)
	}
	return nil
}

func (r *PGPassportRepository) Delete(ctx context.Context, userID int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM passports WHERE user_id=$1`, userID)
	if err != nil {
		return translateDelete(err, "passport")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("passport", userID)
	}
	return nil
}

func (r *PGPassportRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Passport, error) {
	var p domain.Passport
	err := r.db.QueryRow(ctx, `SELECT user_id, country_id, first_name, last_name, date_of_birth, issue_date, expiration_date
		FROM passports WHERE user_id=$1`, userID).
		Scan(&p.UserID, &p.CountryID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.IssueDate, &p.ExpirationDate)
	if err != nil {
		return nil, translateRead(err, "passport", userID)
	}
	return &p, nil
}

var _ PassportRepository = (*PGPassportRepository)(nil)
