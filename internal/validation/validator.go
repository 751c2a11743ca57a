package validation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/Domenick1991/andromeda/internal/domain"
)

// MXResolver is satisfied by *net.Resolver.
type MXResolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
}

type Options struct {
	DisallowedCountries []string
	CheckMXRecords      bool
	Resolver            MXResolver
}

// Validator checks field formats and entity rules before a record is written.
// Entity methods normalize the values they accept (case-folded emails, E.164
// phone numbers, canonical country names) in place.
type Validator struct {
	validate  *validator.Validate
	countries *countryCatalog
	checkMX   bool
	resolver  MXResolver
}

func New(opts Options) *Validator {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &Validator{
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		countries: newCountryCatalog(opts.DisallowedCountries),
		checkMX:   opts.CheckMXRecords,
		resolver:  resolver,
	}
}

func (v *Validator) User(ctx context.Context, u *domain.User) error {
	if err := v.structure("user", u); err != nil {
		return err
	}
	email, err := v.Email(ctx, "user", u.Email)
	if err != nil {
		return err
	}
	phone, err := v.Phone("user", u.PhoneNumber)
	if err != nil {
		return err
	}
	u.Email, u.PhoneNumber = email, phone
	return nil
}

func (v *Validator) Company(ctx context.Context, c *domain.Company) error {
	if err := v.structure("company", c); err != nil {
		return err
	}
	email, err := v.Email(ctx, "company", c.Email)
	if err != nil {
		return err
	}
	phone, err := v.Phone("company", c.PhoneNumber)
	if err != nil {
		return err
	}
	c.Email, c.PhoneNumber = email, phone
	return nil
}

func (v *Validator) Country(c *domain.Country) error {
	name, err := v.CountryName(c.Name)
	if err != nil {
		return err
	}
	c.Name = name
	return nil
}

func (v *Validator) City(c *domain.City) error {
	c.Name = strings.TrimSpace(c.Name)
	return v.structure("city", c)
}

func (v *Validator) Passport(p *domain.Passport) error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	if err := v.structure("passport", p); err != nil {
		return err
	}
	if p.DateOfBirth.After(p.IssueDate) {
		return domain.NewValidationError("passport", "date_of_birth", "must not be after the issue date")
	}
	return nil
}

func (v *Validator) Flight(f *domain.Flight) error {
	f.Name = strings.TrimSpace(f.Name)
	return v.structure("flight", f)
}

func (v *Validator) Employment(e *domain.Employment) error {
	return v.structure("employment", e)
}

func (v *Validator) Booking(b *domain.Booking) error {
	return v.structure("booking", b)
}

func (v *Validator) structure(entity string, s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return domain.NewValidationError(entity, snakeCase(fe.Field()), describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gtfield":
		return fmt.Sprintf("must be after %s", snakeCase(fe.Param()))
	case "nefield":
		return fmt.Sprintf("must differ from %s", snakeCase(fe.Param()))
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

// snakeCase maps Go field names to the names used in the API payloads,
// e.g. "DepartureCityID" -> "departure_city_id".
func snakeCase(field string) string {
	runes := []rune(field)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || (nextLower && unicode.IsUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
