package workday_test

import (
	"time"

	"workdays/internal/domain/workday"
)

// mockDirectory implements workday.CountryDirectory for testing.
type mockDirectory struct {
	countries []workday.Country
}

// FindByCode implements workday.CountryDirectory.
// PRE: code is normalized
// POST: returns the matching country or false
func (m *mockDirectory) FindByCode(code string) (workday.Country, bool) {
	for _, c := range m.countries {
		if c.Code == code {
			return c, true
		}
	}
	return workday.Country{}, false
}

// ListAll implements workday.CountryDirectory.
func (m *mockDirectory) ListAll() []workday.Country {
	return m.countries
}

// mockOracle implements workday.HolidayOracle with a fixed set of dates per country.
type mockOracle struct {
	holidays map[string]map[string]bool
	lookups  int
}

// IsHoliday implements workday.HolidayOracle.
func (m *mockOracle) IsHoliday(date time.Time, countryCode string) bool {
	m.lookups++
	return m.holidays[countryCode][date.Format(workday.DateLayout)]
}

var (
	france  = workday.Country{Code: "FR", Name: "France"}
	germany = workday.Country{Code: "DE", Name: "Germany"}
)

func newDirectory() *mockDirectory {
	return &mockDirectory{countries: []workday.Country{germany, france}}
}

func newOracle() *mockOracle {
	return &mockOracle{holidays: map[string]map[string]bool{
		"DE": {"2023-10-03": true},
		"FR": {"2023-11-01": true},
	}}
}

func day(s string) time.Time {
	t, err := workday.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}
