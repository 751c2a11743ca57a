package validation

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/Domenick1991/andromeda/internal/domain"
)

// Phone accepts nil (the field is optional) or an international mobile
// number written with its country calling code. Accepted numbers are
// returned in E.164 form.
func (v *Validator) Phone(entity string, phone *string) (*string, error) {
	if phone == nil {
		return nil, nil
	}
	raw := strings.TrimSpace(*phone)
	if raw == "" {
		return nil, nil
	}

	// No default region: only numbers carrying their country code parse.
	num, err := phonenumbers.Parse(raw, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return nil, domain.NewValidationError(entity, "phone_number", "is not a valid international phone number")
	}
	switch phonenumbers.GetNumberType(num) {
	case phonenumbers.MOBILE, phonenumbers.FIXED_LINE_OR_MOBILE:
	default:
		return nil, domain.NewValidationError(entity, "phone_number", "must be a mobile number")
	}

	formatted := phonenumbers.Format(num, phonenumbers.E164)
	return &formatted, nil
}
