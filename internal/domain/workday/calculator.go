package workday

import "time"

// Calculator counts working days in a date range for a country.
type Calculator struct {
	holidays HolidayOracle
}

// NewCalculator creates a Calculator that consults oracle for public holidays.
func NewCalculator(oracle HolidayOracle) *Calculator {
	return &Calculator{holidays: oracle}
}

// Calculate returns the number of days in [start, end], both inclusive, that
// are neither Saturday, Sunday nor a public holiday in countryCode.
// An out-of-order range yields 0 rather than an error so the calculator can be
// called without going through the Validator.
// PRE: start and end are calendar dates
// POST: returns a count in [0, end-start+1]
// INVARIANT: each date in the range is visited exactly once
func (c *Calculator) Calculate(start, end time.Time, countryCode string) int64 {
	r := NewDateRange(start, end)
	if !r.Ordered() {
		return 0
	}

	code := NormalizeCode(countryCode)
	days := r.Days()

	var count int64
	d := r.Start
	for i := 0; i < days; i++ {
		if !IsWeekend(d) && !c.holidays.IsHoliday(d, code) {
			count++
		}
		d = d.AddDate(0, 0, 1)
	}
	return count
}
