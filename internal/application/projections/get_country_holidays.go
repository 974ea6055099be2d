package projections

import (
	"context"
	"errors"

	"workdays/internal/domain/holiday"
	"workdays/internal/domain/workday"
)

// Projection errors
var (
	ErrUnknownCountry = errors.New("unknown country")
	ErrYearOutOfRange = errors.New("year outside supported range")
)

// HolidayLister lists the holidays of a country in one year.
type HolidayLister interface {
	Holidays(countryCode string, year int) []holiday.Holiday
}

// GetCountryHolidaysQuery carries input for the country holidays projection.
type GetCountryHolidaysQuery struct {
	CountryCode string
	Year        int
}

// GetCountryHolidaysDeps holds dependencies for the country holidays projection.
type GetCountryHolidaysDeps struct {
	Countries workday.CountryDirectory
	Holidays  HolidayLister
}

// HolidayEntry is one holiday formatted for display.
type HolidayEntry struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Observed string `json:"observed"`
	Weekday  string `json:"weekday"`
	Weekend  bool   `json:"weekend"` // falls on Saturday or Sunday
}

// CountryHolidaysResult carries the output of the country holidays projection.
type CountryHolidaysResult struct {
	Country  workday.Country `json:"country"`
	Year     int             `json:"year"`
	Holidays []HolidayEntry  `json:"holidays"`
}

// QueryGetCountryHolidays lists a catalog country's holidays for one year.
// PRE: deps fields are non-nil
// POST: returns ErrUnknownCountry for codes outside the catalog and
// ErrYearOutOfRange outside the supported date window
func QueryGetCountryHolidays(_ context.Context, query GetCountryHolidaysQuery, deps GetCountryHolidaysDeps) (CountryHolidaysResult, error) {
	country, ok := deps.Countries.FindByCode(query.CountryCode)
	if !ok {
		return CountryHolidaysResult{}, ErrUnknownCountry
	}
	if query.Year < workday.MinSupportedDate.Year() || query.Year > workday.MaxSupportedDate.Year() {
		return CountryHolidaysResult{}, ErrYearOutOfRange
	}

	list := deps.Holidays.Holidays(country.Code, query.Year)
	entries := make([]HolidayEntry, 0, len(list))
	for _, h := range list {
		entries = append(entries, HolidayEntry{
			Name:     h.Name,
			Date:     h.Date.Format(workday.DateLayout),
			Observed: h.Observed.Format(workday.DateLayout),
			Weekday:  h.Date.Weekday().String(),
			Weekend:  workday.IsWeekend(h.Date),
		})
	}
	return CountryHolidaysResult{Country: country, Year: query.Year, Holidays: entries}, nil
}
