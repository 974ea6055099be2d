package orchestrators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workdays/internal/adapters/catalog"
	"workdays/internal/adapters/http/perf"
	"workdays/internal/domain/calculation"
	"workdays/internal/domain/workday"
	"workdays/internal/platform/metrics"
)

// mockLogStore implements CalculationLogStore for testing.
type mockLogStore struct {
	saved []calculation.Record
	err   error
}

func (m *mockLogStore) Save(_ context.Context, r calculation.Record) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, r)
	return nil
}

// holidaySet is a fixed HolidayOracle keyed by "CODE YYYY-MM-DD".
type holidaySet map[string]bool

func (h holidaySet) IsHoliday(date time.Time, code string) bool {
	return h[workday.NormalizeCode(code)+" "+date.Format(workday.DateLayout)]
}

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newCalcDeps(t *testing.T) (CalculateWorkingDaysDeps, *mockLogStore, *metrics.Metrics) {
	t.Helper()
	dir, err := catalog.NewDirectory([]workday.Country{
		{Code: "FR", Name: "France"},
		{Code: "DE", Name: "Germany"},
	})
	require.NoError(t, err)

	oracle := holidaySet{"DE 2023-10-03": true, "FR 2023-11-01": true}
	store := &mockLogStore{}
	m := metrics.New(prometheus.NewRegistry())

	return CalculateWorkingDaysDeps{
		Validator:  workday.NewValidator(dir),
		Calculator: workday.NewCalculator(oracle),
		Countries:  dir,
		LogStore:   store,
		Metrics:    m,
		Collector:  perf.NewCollector(10),
		GenerateID: fixedID,
		Now:        fixedNow,
	}, store, m
}

// TestExecuteCalculateWorkingDays_Valid tests a successful calculation is assembled and logged.
func TestExecuteCalculateWorkingDays_Valid(t *testing.T) {
	deps, store, m := newCalcDeps(t)

	result, err := ExecuteCalculateWorkingDays(context.Background(), CalculateWorkingDaysInput{
		Start:       day(2023, 10, 2),
		End:         day(2023, 10, 6),
		CountryCode: "de",
	}, deps)
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.WorkingDays)
	assert.Equal(t, workday.Country{Code: "DE", Name: "Germany"}, result.Country)
	assert.Equal(t, "de", result.SelectedCountryCode)
	assert.Len(t, result.AllCountries, 2)
	assert.Equal(t, day(2023, 10, 2), result.Range.Start)

	require.Len(t, store.saved, 1)
	assert.Equal(t, calculation.Record{
		ID:          "test-id-001",
		StartDate:   day(2023, 10, 2),
		EndDate:     day(2023, 10, 6),
		CountryCode: "DE",
		WorkingDays: 4,
		CreatedAt:   fixedTime,
	}, store.saved[0])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calculations))
	assert.Equal(t, int64(1), deps.Collector.TotalRecorded())
}

// TestExecuteCalculateWorkingDays_Invalid tests each rejection kind and that nothing is logged.
func TestExecuteCalculateWorkingDays_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input CalculateWorkingDaysInput
		want  workday.ErrorKind
	}{
		{"reversed", CalculateWorkingDaysInput{day(2023, 10, 10), day(2023, 10, 5), "FR"}, workday.KindInvalidDateRange},
		{"too early", CalculateWorkingDaysInput{day(1899, 12, 31), day(1900, 1, 5), "FR"}, workday.KindDateBeforeMinimum},
		{"unknown country", CalculateWorkingDaysInput{day(2023, 10, 2), day(2023, 10, 6), "XX"}, workday.KindInvalidCountry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, store, m := newCalcDeps(t)

			_, err := ExecuteCalculateWorkingDays(context.Background(), tt.input, deps)
			var verr *workday.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.want, verr.Kind)

			assert.Empty(t, store.saved)
			assert.Equal(t, 0.0, testutil.ToFloat64(m.Calculations))
			assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailures.WithLabelValues(string(tt.want))))
		})
	}
}

// TestExecuteCalculateWorkingDays_RejectedCodeClipped tests an oversized
// country code is cut before it reaches the log.
func TestExecuteCalculateWorkingDays_RejectedCodeClipped(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	deps, _, _ := newCalcDeps(t)
	code := strings.Repeat("X", 4000)

	_, err := ExecuteCalculateWorkingDays(context.Background(), CalculateWorkingDaysInput{day(2023, 10, 2), day(2023, 10, 6), code}, deps)
	require.Error(t, err)

	var entry struct {
		Msg     string `json:"msg"`
		Country string `json:"country"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "calculation_rejected", entry.Msg)
	assert.Equal(t, strings.Repeat("X", logFieldMax)+"...", entry.Country)

	assert.Equal(t, "FR", clipForLog("FR"))
}

// TestExecuteCalculateWorkingDays_LogFailure tests a failing log write does not fail the request.
func TestExecuteCalculateWorkingDays_LogFailure(t *testing.T) {
	deps, store, m := newCalcDeps(t)
	store.err = errors.New("disk full")

	result, err := ExecuteCalculateWorkingDays(context.Background(), CalculateWorkingDaysInput{
		Start:       day(2023, 10, 2),
		End:         day(2023, 10, 6),
		CountryCode: "FR",
	}, deps)
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.WorkingDays)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LogWriteFailures))
}

// TestExecuteCalculateWorkingDays_OptionalDeps tests the orchestrator runs without log, metrics or collector.
func TestExecuteCalculateWorkingDays_OptionalDeps(t *testing.T) {
	deps, _, _ := newCalcDeps(t)
	deps.LogStore = nil
	deps.Metrics = nil
	deps.Collector = nil

	result, err := ExecuteCalculateWorkingDays(context.Background(), CalculateWorkingDaysInput{
		Start:       day(2023, 10, 6),
		End:         day(2023, 10, 10),
		CountryCode: "FR",
	}, deps)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.WorkingDays)
}

// TestExecuteCalculateWorkingDays_TimeOfDay tests inputs with clock times are treated as dates.
func TestExecuteCalculateWorkingDays_TimeOfDay(t *testing.T) {
	deps, store, _ := newCalcDeps(t)

	result, err := ExecuteCalculateWorkingDays(context.Background(), CalculateWorkingDaysInput{
		Start:       time.Date(2023, 10, 2, 18, 30, 0, 0, time.UTC),
		End:         time.Date(2023, 10, 6, 7, 0, 0, 0, time.UTC),
		CountryCode: "DE",
	}, deps)
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.WorkingDays)
	require.Len(t, store.saved, 1)
	assert.Equal(t, day(2023, 10, 6), store.saved[0].EndDate)
}
