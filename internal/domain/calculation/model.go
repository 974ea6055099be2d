package calculation

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyID          = errors.New("calculation ID cannot be empty")
	ErrEmptyCountryCode = errors.New("calculation country code cannot be empty")
	ErrInvalidRange     = errors.New("calculation start date cannot be after end date")
	ErrNegativeDays     = errors.New("working days cannot be negative")
	ErrTooManyDays      = errors.New("working days exceed the days in the range")
)

// MaxListLimit caps how many records one listing may return.
const MaxListLimit = 100

// Record is one completed working-day calculation kept in the calculation log.
type Record struct {
	ID          string    `json:"id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	CountryCode string    `json:"country_code"`
	WorkingDays int64     `json:"working_days"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks if the Record has valid data.
// PRE: Record struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(r.CountryCode) == "" {
		return ErrEmptyCountryCode
	}
	if r.StartDate.After(r.EndDate) {
		return ErrInvalidRange
	}
	if r.WorkingDays < 0 {
		return ErrNegativeDays
	}
	span := int64(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
	if r.WorkingDays > span {
		return ErrTooManyDays
	}
	return nil
}

// ListFilter narrows a calculation log listing.
type ListFilter struct {
	CountryCode string // empty means all countries
	Limit       int
}

// Normalize clamps Limit into [1, MaxListLimit] and uppercases the country code.
// A non-positive limit becomes def.
func (f ListFilter) Normalize(def int) ListFilter {
	if f.Limit <= 0 {
		f.Limit = def
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Limit <= 0 {
		f.Limit = 1
	}
	f.CountryCode = strings.ToUpper(strings.TrimSpace(f.CountryCode))
	return f
}
