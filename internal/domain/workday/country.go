package workday

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyCountryCode = errors.New("country code cannot be empty")
	ErrEmptyCountryName = errors.New("country name cannot be empty")
)

// Country is a selectable country with its own holiday calendar.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Validate checks if the Country has valid data.
// PRE: Country struct is populated
// POST: Returns nil if valid, error otherwise
func (c Country) Validate() error {
	if NormalizeCode(c.Code) == "" {
		return ErrEmptyCountryCode
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCountryName
	}
	return nil
}

// NormalizeCode returns the canonical lookup form of a country code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CountryDirectory resolves and enumerates the supported countries.
// Implementations are read-only once constructed.
type CountryDirectory interface {
	// FindByCode returns the country for code, or false when it is unknown.
	FindByCode(code string) (Country, bool)
	// ListAll returns every supported country in catalog order.
	ListAll() []Country
}

// HolidayOracle answers whether a date is a public holiday in a country.
type HolidayOracle interface {
	IsHoliday(date time.Time, countryCode string) bool
}
