// Package memstore keeps every entity in a hashicorp/go-memdb database.
// Write transactions are serialized by go-memdb, so uniqueness and foreign
// key checks made inside one are race free.
package memstore

import (
	"cmp"
	"slices"
	"sync/atomic"

	"github.com/hashicorp/go-memdb"

	"github.com/Domenick1991/andromeda/internal/domain"
	"github.com/Domenick1991/andromeda/internal/repository"
)

const (
	tableUsers       = "users"
	tableCompanies   = "companies"
	tableCountries   = "countries"
	tableCities      = "cities"
	tablePassports   = "passports"
	tableFlights     = "flights"
	tableEmployments = "employments"
	tableBookings    = "bookings"
)

func idIndex(field string) *memdb.IndexSchema {
	return &memdb.IndexSchema{Name: "id", Unique: true, Indexer: &memdb.IntFieldIndex{Field: field}}
}

func intIndex(name, field string, unique bool) *memdb.IndexSchema {
	return &memdb.IndexSchema{Name: name, Unique: unique, Indexer: &memdb.IntFieldIndex{Field: field}}
}

func stringIndex(name, field string) *memdb.IndexSchema {
	return &memdb.IndexSchema{Name: name, Unique: true, Indexer: &memdb.StringFieldIndex{Field: field}}
}

func table(name string, indexes ...*memdb.IndexSchema) *memdb.TableSchema {
	t := &memdb.TableSchema{Name: name, Indexes: make(map[string]*memdb.IndexSchema, len(indexes))}
	for _, idx := range indexes {
		t.Indexes[idx.Name] = idx
	}
	return t
}

func schema() *memdb.DBSchema {
	tables := []*memdb.TableSchema{
		table(tableUsers, idIndex("ID"), stringIndex("username", "Username"), stringIndex("email", "Email")),
		table(tableCompanies, idIndex("ID"), stringIndex("name", "Name"), stringIndex("email", "Email")),
		// Country names are stored in their canonical spelling, so an exact
		// index is enough to catch case variants.
		table(tableCountries, idIndex("ID"), stringIndex("name", "Name")),
		table(tableCities, idIndex("ID"), intIndex("country", "CountryID", false)),
		table(tablePassports, idIndex("UserID"), intIndex("country", "CountryID", false)),
		table(tableFlights, idIndex("ID"), stringIndex("name", "Name"),
			intIndex("departure_city", "DepartureCityID", false),
			intIndex("arrival_city", "ArrivalCityID", false)),
		table(tableEmployments, idIndex("ID"), intIndex("user", "UserID", true), intIndex("company", "CompanyID", false)),
		table(tableBookings, idIndex("ID"),
			intIndex("flight", "FlightID", false),
			intIndex("user", "UserID", false),
			intIndex("employment", "EmploymentID", false)),
	}
	s := &memdb.DBSchema{Tables: make(map[string]*memdb.TableSchema, len(tables))}
	for _, t := range tables {
		s.Tables[t.Name] = t
	}
	return s
}

type Store struct {
	db  *memdb.MemDB
	seq map[string]*atomic.Int64
}

func New() (*Store, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, err
	}
	seq := make(map[string]*atomic.Int64)
	for _, name := range []string{tableUsers, tableCompanies, tableCountries, tableCities, tableFlights, tableEmployments, tableBookings} {
		seq[name] = new(atomic.Int64)
	}
	return &Store{db: db, seq: seq}, nil
}

// NewRepositories returns a fresh store wrapped in the repository set.
func NewRepositories() (repository.Repositories, error) {
	s, err := New()
	if err != nil {
		return repository.Repositories{}, err
	}
	return s.Repositories(), nil
}

func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:       &UserRepository{s},
		Companies:   &CompanyRepository{s},
		Countries:   &CountryRepository{s},
		Cities:      &CityRepository{s},
		Passports:   &PassportRepository{s},
		Flights:     &FlightRepository{s},
		Employments: &EmploymentRepository{s},
		Bookings:    &BookingRepository{s},
	}
}

// nextID hands out identifiers like a Postgres sequence: aborted writes
// leave gaps.
func (s *Store) nextID(table string) int64 {
	return s.seq[table].Add(1)
}

func (s *Store) write(fn func(txn *memdb.Txn) error) error {
	txn := s.db.Txn(true)
	defer txn.Abort()
	if err := fn(txn); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (s *Store) read(fn func(txn *memdb.Txn) error) error {
	txn := s.db.Txn(false)
	defer txn.Abort()
	return fn(txn)
}

// first returns a copy of the first match, or nil when nothing matches.
func first[T any](txn *memdb.Txn, table, index string, args ...any) (*T, error) {
	raw, err := txn.First(table, index, args...)
	if err != nil || raw == nil {
		return nil, err
	}
	v := *raw.(*T)
	return &v, nil
}

func collect[T any](txn *memdb.Txn, table, index string, args ...any) ([]T, error) {
	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0)
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, *raw.(*T))
	}
	return out, nil
}

// collectByID returns matches ordered by id. go-memdb's integer index uses
// varint keys, which do not iterate in numeric order.
func collectByID[T any](txn *memdb.Txn, table, index string, id func(T) int64, args ...any) ([]T, error) {
	out, err := collect[T](txn, table, index, args...)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out, nil
}

func exists(txn *memdb.Txn, table string, id int64) (bool, error) {
	raw, err := txn.First(table, "id", id)
	return raw != nil, err
}

// requireRef fails with a ReferenceError when id is not a row of table.
func requireRef(txn *memdb.Txn, table string, id int64, entity, field string) error {
	ok, err := exists(txn, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewReferenceError(entity, field, id)
	}
	return nil
}

// requireUnique fails with a ConflictError when another row (any id other
// than self) already holds value in a unique index.
func requireUnique(txn *memdb.Txn, table, index string, value any, self int64, idOf func(any) int64, entity, field string) error {
	raw, err := txn.First(table, index, value)
	if err != nil {
		return err
	}
	if raw != nil && idOf(raw) != self {
		return domain.NewConflictError(entity, field, toString(value))
	}
	return nil
}

// restrict fails with an in-use ReferenceError when any row of table still
// points at the record being deleted.
func restrict(txn *memdb.Txn, table, index string, id int64, entity string) error {
	raw, err := txn.First(table, index, id)
	if err != nil {
		return err
	}
	if raw != nil {
		return domain.InUseError(entity, table)
	}
	return nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
