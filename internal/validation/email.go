package validation

import (
	"context"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/cases"

	"github.com/Domenick1991/andromeda/internal/domain"
)

// Email checks syntax (internationalized addresses included) and that the
// domain is a valid IDNA host name with a top-level domain. With MX checks
// enabled the domain must also publish at least one mail exchanger.
// The returned address is case-folded.
func (v *Validator) Email(ctx context.Context, entity, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.NewValidationError(entity, "email", "is required")
	}
	if err := v.validate.Var(email, "email"); err != nil {
		return "", domain.NewValidationError(entity, "email", "is not a valid email address")
	}

	host := email[strings.LastIndexByte(email, '@')+1:]
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", domain.NewValidationError(entity, "email", "has an invalid domain")
	}
	dot := strings.LastIndexByte(ascii, '.')
	if dot <= 0 || !validTLD(ascii[dot+1:]) {
		return "", domain.NewValidationError(entity, "email", "domain has no top-level domain")
	}

	if v.checkMX {
		records, err := v.resolver.LookupMX(ctx, ascii)
		if err != nil || len(records) == 0 {
			return "", domain.NewValidationError(entity, "email", "domain does not accept mail")
		}
	}

	return cases.Fold().String(email), nil
}

func validTLD(tld string) bool {
	if strings.HasPrefix(tld, "xn--") {
		return len(tld) > 4
	}
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
