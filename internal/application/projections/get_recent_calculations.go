package projections

import (
	"context"
	"time"

	"workdays/internal/domain/calculation"
	"workdays/internal/domain/workday"
)

// DefaultRecentLimit is used when a query does not set a limit.
const DefaultRecentLimit = 20

// CalculationLogReader defines the store interface needed by the recent calculations projection.
type CalculationLogReader interface {
	List(ctx context.Context, filter calculation.ListFilter) ([]calculation.Record, error)
}

// GetRecentCalculationsQuery carries input for the recent calculations projection.
type GetRecentCalculationsQuery struct {
	CountryCode string
	Limit       int
}

// GetRecentCalculationsDeps holds dependencies for the recent calculations projection.
type GetRecentCalculationsDeps struct {
	LogStore  CalculationLogReader
	Countries workday.CountryDirectory
}

// RecentCalculation is one calculation log entry with its country name resolved.
type RecentCalculation struct {
	ID          string `json:"id"`
	Start       string `json:"start"` // YYYY-MM-DD
	End         string `json:"end"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	WorkingDays int64  `json:"working_days"`
	CreatedAt   string `json:"created_at"` // RFC 3339
}

// QueryGetRecentCalculations lists the newest calculations first.
// PRE: deps.LogStore is non-nil
// POST: returns at most calculation.MaxListLimit entries
func QueryGetRecentCalculations(ctx context.Context, query GetRecentCalculationsQuery, deps GetRecentCalculationsDeps) ([]RecentCalculation, error) {
	filter := calculation.ListFilter{CountryCode: query.CountryCode, Limit: query.Limit}.Normalize(DefaultRecentLimit)

	records, err := deps.LogStore.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]RecentCalculation, 0, len(records))
	for _, r := range records {
		out = append(out, toRecentCalculation(r, deps.Countries))
	}
	return out, nil
}

// toRecentCalculation formats a record and resolves its country name.
// The name stays empty when countries is nil or no longer lists the code.
func toRecentCalculation(r calculation.Record, countries workday.CountryDirectory) RecentCalculation {
	entry := RecentCalculation{
		ID:          r.ID,
		Start:       r.StartDate.Format(workday.DateLayout),
		End:         r.EndDate.Format(workday.DateLayout),
		CountryCode: r.CountryCode,
		WorkingDays: r.WorkingDays,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
	if countries != nil {
		if c, ok := countries.FindByCode(r.CountryCode); ok {
			entry.CountryName = c.Name
		}
	}
	return entry
}
