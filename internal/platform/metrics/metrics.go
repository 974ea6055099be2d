package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for working-day calculations.
// All methods are safe on a nil *Metrics.
type Metrics struct {
	// Successful calculations
	Calculations prometheus.Counter

	// Rejected requests by validation error kind
	ValidationFailures *prometheus.CounterVec

	// Time spent counting working days
	CalculationDuration prometheus.Histogram

	// Length of requested ranges in calendar days
	RangeDays prometheus.Histogram

	// Lazily built holiday calendars by country
	CalendarBuilds *prometheus.CounterVec

	// Calculation log writes that failed
	LogWriteFailures prometheus.Counter
}

// New creates a Metrics instance registered on reg.
// PRE: reg is non-nil and has not seen these metric names
// POST: all collectors are registered
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Calculations: f.NewCounter(prometheus.CounterOpts{
			Name: "workdays_calculations_total",
			Help: "Total successful working-day calculations",
		}),

		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "workdays_validation_failures_total",
			Help: "Total rejected calculation requests by error kind",
		}, []string{"kind"}), // INVALID_DATE_RANGE, DATE_BEFORE_MINIMUM, INVALID_COUNTRY

		CalculationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "workdays_calculation_duration_seconds",
			Help:    "Duration of working-day counting",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),

		RangeDays: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "workdays_calculated_days",
			Help:    "Number of calendar days in calculated ranges",
			Buckets: []float64{1, 7, 31, 92, 366, 3660, 36600, 73414},
		}),

		CalendarBuilds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "workdays_holiday_calendar_builds_total",
			Help: "Holiday calendars built on first use, by country",
		}, []string{"country"}),

		LogWriteFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "workdays_calculation_log_failures_total",
			Help: "Calculation log writes that failed",
		}),
	}
}

// ObserveCalculation records one successful calculation.
func (m *Metrics) ObserveCalculation(rangeDays int64, d time.Duration) {
	if m != nil {
		m.Calculations.Inc()
		m.RangeDays.Observe(float64(rangeDays))
		m.CalculationDuration.Observe(d.Seconds())
	}
}

// IncrementValidationFailure records a rejected request.
func (m *Metrics) IncrementValidationFailure(kind string) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(kind).Inc()
	}
}

// IncrementCalendarBuild records a holiday calendar being built.
func (m *Metrics) IncrementCalendarBuild(country string) {
	if m != nil {
		m.CalendarBuilds.WithLabelValues(country).Inc()
	}
}

// IncrementLogWriteFailure records a failed calculation log write.
func (m *Metrics) IncrementLogWriteFailure() {
	if m != nil {
		m.LogWriteFailures.Inc()
	}
}
