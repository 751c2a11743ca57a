package validation

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Domenick1991/andromeda/internal/domain"
)

// aliases are common names CLDR does not use for its English display name,
// keyed to the ISO 3166 region they stand for.
var aliases = map[string]string{
	"Burma":                    "MM",
	"Myanmar":                  "MM",
	"Czech Republic":           "CZ",
	"Türkiye":                  "TR",
	"Ivory Coast":              "CI",
	"Cabo Verde":               "CV",
	"Cape Verde":               "CV",
	"Swaziland":                "SZ",
	"Eswatini":                 "SZ",
	"Macedonia":                "MK",
	"North Macedonia":          "MK",
	"East Timor":               "TL",
	"Timor-Leste":              "TL",
	"Vatican City":             "VA",
	"Holy See":                 "VA",
	"DR Congo":                 "CD",
	"Republic of the Congo":    "CG",
	"Russian Federation":       "RU",
	"United States of America": "US",
	"USA":                      "US",
	"UK":                       "GB",
	"Great Britain":            "GB",
}

// countryCatalog maps folded country names (CLDR English display names and
// the aliases above) to the CLDR spelling.
type countryCatalog struct {
	names  map[string]string
	denied map[string]struct{}
}

func newCountryCatalog(disallowed []string) *countryCatalog {
	c := &countryCatalog{
		names:  make(map[string]string, 256),
		denied: make(map[string]struct{}, len(disallowed)),
	}

	namer := display.English.Regions()
	for a := 'A'; a <= 'Z'; a++ {
		for b := 'A'; b <= 'Z'; b++ {
			region, err := language.ParseRegion(string([]rune{a, b}))
			if err != nil || !region.IsCountry() {
				continue
			}
			if name := namer.Name(region); name != "" {
				c.names[fold(name)] = name
			}
		}
	}
	for alias, code := range aliases {
		region, err := language.ParseRegion(code)
		if err != nil {
			continue
		}
		if name := namer.Name(region); name != "" {
			if _, taken := c.names[fold(alias)]; !taken {
				c.names[fold(alias)] = name
			}
		}
	}

	for _, name := range disallowed {
		c.denied[fold(name)] = struct{}{}
	}
	return c
}

func (c *countryCatalog) lookup(name string) (string, bool) {
	canonical, ok := c.names[fold(name)]
	return canonical, ok
}

func (c *countryCatalog) isDenied(name string) bool {
	_, ok := c.denied[fold(name)]
	return ok
}

// CountryName resolves name against the catalog and returns its canonical
// spelling. Names on the deny list are rejected even when they are real
// countries.
func (v *Validator) CountryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.NewValidationError("country", "name", "is required")
	}
	if v.countries.isDenied(name) {
		return "", domain.NewValidationError("country", "name", "is not an accepted country")
	}
	canonical, ok := v.countries.lookup(name)
	if !ok {
		return "", domain.NewValidationError("country", "name", "is not a recognized country name")
	}
	if v.countries.isDenied(canonical) {
		return "", domain.NewValidationError("country", "name", "is not an accepted country")
	}
	return canonical, nil
}

// fold case-folds s and drops diacritics, apostrophes and repeated spaces,
// so "Cote d'Ivoire" and "Côte d’Ivoire" share a key. The transformer is
// built per call; Casers are stateful and must not be shared between
// goroutines.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold())
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = strings.ToLower(s)
	}
	folded = strings.Map(func(r rune) rune {
		switch r {
		case '\'', '’', '`':
			return -1
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}
