package orchestrators

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"workdays/internal/adapters/http/perf"
	"workdays/internal/domain/calculation"
	"workdays/internal/domain/workday"
	"workdays/internal/platform/metrics"
)

// WorkdayValidator checks a calculation request.
type WorkdayValidator interface {
	Validate(start, end time.Time, countryCode string) workday.ValidationOutcome
}

// WorkdayCalculator counts working days.
type WorkdayCalculator interface {
	Calculate(start, end time.Time, countryCode string) int64
}

// CalculationLogStore defines the store interface needed to log calculations.
type CalculationLogStore interface {
	Save(ctx context.Context, r calculation.Record) error
}

// CalculateWorkingDaysInput carries input for the calculation orchestrator.
type CalculateWorkingDaysInput struct {
	Start       time.Time
	End         time.Time
	CountryCode string // as submitted; echoed in the result
}

// CalculateWorkingDaysDeps holds dependencies for CalculateWorkingDays.
// LogStore, Metrics and Collector are optional.
type CalculateWorkingDaysDeps struct {
	Validator  WorkdayValidator
	Calculator WorkdayCalculator
	Countries  workday.CountryDirectory
	LogStore   CalculationLogStore
	Metrics    *metrics.Metrics
	Collector  *perf.Collector
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCalculateWorkingDays validates the request, counts working days and
// assembles the result for presentation.
// PRE: deps.Validator, deps.Calculator and deps.Countries are non-nil
// POST: on success the calculation is logged (best effort) and counted;
// on validation failure returns a *workday.ValidationError and nothing is logged
func ExecuteCalculateWorkingDays(ctx context.Context, input CalculateWorkingDaysInput, deps CalculateWorkingDaysDeps) (workday.CalculationResult, error) {
	outcome := deps.Validator.Validate(input.Start, input.End, input.CountryCode)

	var country workday.Country
	switch o := outcome.(type) {
	case workday.Valid:
		country = o.Country
	case workday.Invalid:
		deps.Metrics.IncrementValidationFailure(string(o.Kind))
		slog.Info("calculation_rejected", "kind", o.Kind, "code", o.Kind.Code(), "country", clipForLog(input.CountryCode))
		return workday.CalculationResult{}, o.Err()
	}

	r := workday.NewDateRange(input.Start, input.End)
	started := time.Now()
	count := deps.Calculator.Calculate(r.Start, r.End, country.Code)
	elapsed := time.Since(started)

	deps.Metrics.ObserveCalculation(int64(r.Days()), elapsed)
	deps.Collector.Record(perf.Entry{
		Kind:       perf.KindCalculation,
		Path:       country.Code,
		DurationMs: float64(elapsed.Microseconds()) / 1000.0,
		Timestamp:  started,
	})

	result := workday.Assemble(count, r.Start, r.End, country, deps.Countries.ListAll(), input.CountryCode)

	if deps.LogStore != nil {
		logCalculation(ctx, result, deps)
	}
	return result, nil
}

// logCalculation appends the result to the calculation log. Failures are
// logged and counted but never change the response.
func logCalculation(ctx context.Context, result workday.CalculationResult, deps CalculateWorkingDaysDeps) {
	rec := calculation.Record{
		ID:          deps.GenerateID(),
		StartDate:   result.Range.Start,
		EndDate:     result.Range.End,
		CountryCode: result.Country.Code,
		WorkingDays: result.WorkingDays,
		CreatedAt:   deps.Now(),
	}
	if err := rec.Validate(); err != nil {
		slog.Error("calculation_log_invalid", "error", err)
		deps.Metrics.IncrementLogWriteFailure()
		return
	}
	if err := deps.LogStore.Save(ctx, rec); err != nil {
		slog.Error("calculation_log_failed", "id", rec.ID, "error", err)
		deps.Metrics.IncrementLogWriteFailure()
		return
	}
	slog.Debug("calculation_logged", "id", rec.ID, "country", rec.CountryCode, "working_days", rec.WorkingDays)
}

// logFieldMax bounds user-supplied values written to the log.
const logFieldMax = 64

func clipForLog(s string) string {
	if utf8.RuneCountInString(s) <= logFieldMax {
		return s
	}
	return string([]rune(s)[:logFieldMax]) + "..."
}
