package workday

import (
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Supported calendar bounds, inclusive.
var (
	MinSupportedDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxSupportedDate = time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// DateRange is a pair of calendar dates. It is not guaranteed to be ordered.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a DateRange from two instants, keeping only their calendar dates.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: CivilDate(start), End: CivilDate(end)}
}

// CivilDate drops the time-of-day and location from t, keeping the calendar
// date as seen in t's own location.
// PRE: none
// POST: returns midnight UTC of t's year/month/day
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Ordered reports whether Start is on or before End.
func (r DateRange) Ordered() bool {
	return !r.Start.After(r.End)
}

// WithinSupportedBounds reports whether Start is not before MinSupportedDate
// and End is not after MaxSupportedDate.
func (r DateRange) WithinSupportedBounds() bool {
	return !r.Start.Before(MinSupportedDate) && !r.End.After(MaxSupportedDate)
}

// Days returns the number of calendar days in the closed interval, or 0 when
// the range is out of order.
// PRE: Start and End are calendar dates (see CivilDate)
// POST: returns End-Start+1 for ordered ranges, 0 otherwise
func (r DateRange) Days() int {
	if !r.Ordered() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// IsWeekend reports whether d falls on a Saturday or Sunday.
func IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
