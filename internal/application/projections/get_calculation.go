package projections

import (
	"context"

	"workdays/internal/domain/calculation"
	"workdays/internal/domain/workday"
)

// CalculationLookup defines the store interface needed to fetch one logged calculation.
type CalculationLookup interface {
	GetByID(ctx context.Context, id string) (calculation.Record, error)
}

// GetCalculationDeps holds dependencies for the single calculation projection.
type GetCalculationDeps struct {
	LogStore  CalculationLookup
	Countries workday.CountryDirectory
}

// QueryGetCalculation returns one logged calculation.
// PRE: deps.LogStore is non-nil
// POST: store errors, including not-found, are returned unchanged
func QueryGetCalculation(ctx context.Context, id string, deps GetCalculationDeps) (RecentCalculation, error) {
	r, err := deps.LogStore.GetByID(ctx, id)
	if err != nil {
		return RecentCalculation{}, err
	}
	return toRecentCalculation(r, deps.Countries), nil
}
