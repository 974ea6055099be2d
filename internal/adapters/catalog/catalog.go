package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"workdays/internal/domain/workday"
)

//go:embed eu-countries.json
var euCountries []byte

// ErrEmptyCatalog is returned when a catalog contains no countries.
var ErrEmptyCatalog = errors.New("country catalog is empty")

// Directory is an immutable, in-memory CountryDirectory.
// It is safe for concurrent use.
type Directory struct {
	countries []workday.Country
	byCode    map[string]workday.Country
}

// Compile-time check that *Directory satisfies workday.CountryDirectory.
var _ workday.CountryDirectory = (*Directory)(nil)

// NewDirectory builds a Directory from countries, keeping their order.
// Codes are normalized; the first entry wins on duplicates.
// PRE: none
// POST: returns a Directory or an error if any country is invalid
func NewDirectory(countries []workday.Country) (*Directory, error) {
	d := &Directory{
		countries: make([]workday.Country, 0, len(countries)),
		byCode:    make(map[string]workday.Country, len(countries)),
	}
	for _, c := range countries {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("country %q: %w", c.Code, err)
		}
		c.Code = workday.NormalizeCode(c.Code)
		if _, dup := d.byCode[c.Code]; dup {
			continue
		}
		d.byCode[c.Code] = c
		d.countries = append(d.countries, c)
	}
	return d, nil
}

// FindByCode returns the country for code.
// PRE: none
// POST: returns false when code is unknown
func (d *Directory) FindByCode(code string) (workday.Country, bool) {
	c, ok := d.byCode[workday.NormalizeCode(code)]
	return c, ok
}

// ListAll returns a copy of all countries in catalog order.
func (d *Directory) ListAll() []workday.Country {
	out := make([]workday.Country, len(d.countries))
	copy(out, d.countries)
	return out
}

// Len returns the number of countries.
func (d *Directory) Len() int {
	return len(d.countries)
}

// Decode reads a JSON array of {code, name} objects.
// PRE: r yields a JSON array
// POST: returns the countries in file order or an error
func Decode(r io.Reader) ([]workday.Country, error) {
	var countries []workday.Country
	if err := json.NewDecoder(r).Decode(&countries); err != nil {
		return nil, fmt.Errorf("decode country catalog: %w", err)
	}
	if len(countries) == 0 {
		return nil, ErrEmptyCatalog
	}
	for _, c := range countries {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("country %q: %w", c.Code, err)
		}
	}
	return countries, nil
}

// EmbeddedCountries returns the bundled EU country catalog.
func EmbeddedCountries() ([]workday.Country, error) {
	return Decode(bytes.NewReader(euCountries))
}
