package memstore

import (
	"context"
	"strings"

	"github.com/hashicorp/go-memdb"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
)

type UserRepository struct {
	s *Store
}

func userID(raw any) int64 { return raw.(*domain.User).ID }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	return r.s.write(func(txn *memdb.Txn) error {
		if err := checkUser(txn, user, 0); err != nil {
			return err
		}
		row := *user
		row.ID = r.s.nextID(tableUsers)
		if err := txn.Insert(tableUsers, &row); err != nil {
			return err
		}
		user.ID = row.ID
		return nil
	})
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	return r.s.write(func(txn *memdb.Txn) error {
		ok, err := exists(txn, tableUsers, user.ID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewNotFoundError("user", user.ID)
		}
		if err := checkUser(txn, user, user.ID); err != nil {
			return err
		}
		row := *user
		return txn.Insert(tableUsers, &row)
	})
}

func checkUser(txn *memdb.Txn, user *domain.User, self int64) error {
	if err := requireUnique(txn, tableUsers, "username", user.Username, self, userID, "user", "username"); err != nil {
		return err
	}
	return requireUnique(txn, tableUsers, "email", user.Email, self, userID, "user", "email")
}

// Delete removes the user together with their passport. Bookings and an
// employment keep the user in place.
func (r *UserRepository) Delete(_ context.Context, id int64) error {
	return r.s.write(func(txn *memdb.Txn) error {
		user, err := first[domain.User](txn, tableUsers, "id", id)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.NewNotFoundError("user", id)
		}
		if err := restrict(txn, tableEmployments, "user", id, "user"); err != nil {
			return err
		}
		if err := restrict(txn, tableBookings, "user", id, "user"); err != nil {
			return err
		}
		if _, err := txn.DeleteAll(tablePassports, "id", id); err != nil {
			return err
		}
		return txn.Delete(tableUsers, user)
	})
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return r.get("id", id, id)
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.get("username", username, username)
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.get("email", email, email)
}

func (r *UserRepository) get(index string, value, key any) (*domain.User, error) {
	var user *domain.User
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		user, err = first[domain.User](txn, tableUsers, index, value)
		return err
	})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user", key)
	}
	return user, nil
}

func (r *UserRepository) List(_ context.Context, search string) ([]domain.User, error) {
	var users []domain.User
	err := r.s.read(func(txn *memdb.Txn) error {
		var err error
		users, err = collectByID(txn, tableUsers, "id", func(u domain.User) int64 { return u.ID })
		return err
	})
	if err != nil || search == "" {
		return users, err
	}
	needle := strings.ToLower(search)
	filtered := users[:0]
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Username), needle) || strings.Contains(strings.ToLower(u.Email), needle) {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
