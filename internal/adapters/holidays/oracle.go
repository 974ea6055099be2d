package holidays

import (
	"log/slog"
	"sync"
	"time"

	cal "github.com/rickar/cal/v2"
	"golang.org/x/sync/singleflight"

	"workdays/internal/domain/holiday"
	"workdays/internal/domain/workday"
)

// Oracle answers holiday questions from rickar/cal calendars. Each country's
// calendar is built on first use and then shared read-only.
type Oracle struct {
	sources   map[string][]*cal.Holiday
	calendars sync.Map // code -> *cal.BusinessCalendar
	group     singleflight.Group
	onBuild   func(code string)
}

// Compile-time check that *Oracle satisfies workday.HolidayOracle.
var _ workday.HolidayOracle = (*Oracle)(nil)

// Option configures an Oracle.
type Option func(*Oracle)

// WithCalendars replaces the default NationalCalendars source.
func WithCalendars(sources map[string][]*cal.Holiday) Option {
	return func(o *Oracle) {
		o.sources = make(map[string][]*cal.Holiday, len(sources))
		for code, hols := range sources {
			o.sources[workday.NormalizeCode(code)] = hols
		}
	}
}

// WithBuildHook registers fn to be called once per country when its calendar is built.
func WithBuildHook(fn func(code string)) Option {
	return func(o *Oracle) {
		o.onBuild = fn
	}
}

// NewOracle creates an Oracle backed by NationalCalendars unless overridden.
// PRE: none
// POST: no calendar is built until first lookup
func NewOracle(opts ...Option) *Oracle {
	o := &Oracle{}
	WithCalendars(NationalCalendars)(o)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Supports reports whether a calendar exists for the country code.
func (o *Oracle) Supports(countryCode string) bool {
	_, ok := o.sources[workday.NormalizeCode(countryCode)]
	return ok
}

// IsHoliday reports whether date is a public holiday, on its actual or
// observed date. Unknown country codes have no holidays.
// PRE: date is a calendar date
// POST: returns false for codes without a calendar
func (o *Oracle) IsHoliday(date time.Time, countryCode string) bool {
	c := o.calendar(workday.NormalizeCode(countryCode))
	if c == nil {
		return false
	}
	actual, observed, _ := c.IsHoliday(date)
	return actual || observed
}

// Holidays lists the holidays of a country for one year in date order.
// PRE: year is within the supported range
// POST: returns nil for codes without a calendar
func (o *Oracle) Holidays(countryCode string, year int) []holiday.Holiday {
	hols, ok := o.sources[workday.NormalizeCode(countryCode)]
	if !ok {
		return nil
	}

	list := make([]holiday.Holiday, 0, len(hols))
	for _, h := range hols {
		actual, observed := h.Calc(year)
		if actual.IsZero() {
			continue
		}
		entry := holiday.Holiday{
			Name:     h.Name,
			Date:     workday.CivilDate(actual),
			Observed: workday.CivilDate(observed),
		}
		if observed.IsZero() {
			entry.Observed = entry.Date
		}
		if err := entry.Validate(); err != nil {
			slog.Warn("holiday_skipped", "country", countryCode, "year", year, "error", err)
			continue
		}
		list = append(list, entry)
	}
	holiday.SortByDate(list)
	return list
}

// calendar returns the built calendar for code, building it at most once even
// under concurrent first use.
func (o *Oracle) calendar(code string) *cal.BusinessCalendar {
	if c, ok := o.calendars.Load(code); ok {
		return c.(*cal.BusinessCalendar)
	}
	hols, ok := o.sources[code]
	if !ok {
		return nil
	}

	v, _, _ := o.group.Do(code, func() (any, error) {
		if c, ok := o.calendars.Load(code); ok {
			return c, nil
		}
		c := cal.NewBusinessCalendar()
		c.AddHoliday(hols...)
		o.calendars.Store(code, c)

		slog.Debug("holiday_calendar_built", "country", code, "holidays", len(hols))
		if o.onBuild != nil {
			o.onBuild(code)
		}
		return c, nil
	})
	return v.(*cal.BusinessCalendar)
}
