package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Domenick1991/andromeda/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users whose username or email contains search; an empty
	// search returns every user.
	List(ctx context.Context, search string) ([]domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, phone_number`

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.PhoneNumber); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (username, email, password_hash, phone_number)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Username, user.Email, user.PasswordHash, user.PhoneNumber).Scan(&user.ID)
	return translateWrite(err, "user")
}

func (r *PGUserRepository) Update(ctx context.Context, user *domain.User) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET username=$1, email=$2, password_hash=$3, phone_number=$4 WHERE id=$5`,
		user.Username, user.Email, user.PasswordHash, user.PhoneNumber, user.ID)
	if err != nil {
		return translateWrite(err, "user")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("user", user.ID)
	}
	return nil
}

func (r *PGUserRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return translateDelete(err, "user")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFoundError("user", id)
	}
	return nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if err != nil {
		return nil, translateRead(err, "user", id)
	}
	return u, nil
}

func (r *PGUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username))
	if err != nil {
		return nil, translateRead(err, "user", username)
	}
	return u, nil
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
	if err != nil {
		return nil, translateRead(err, "user", email)
	}
	return u, nil
}

func (r *PGUserRepository) List(ctx context.Context, search string) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users
		WHERE $1::text = '' OR username ILIKE $2 OR email ILIKE $2 ORDER BY id`, search, containsPattern(search))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

var _ UserRepository = (*PGUserRepository)(nil)
