package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"workdays/internal/domain/workday"
)

// CountryStoreForSeed defines the store interface needed by SeedCountries.
type CountryStoreForSeed interface {
	List(ctx context.Context) ([]workday.Country, error)
	Replace(ctx context.Context, countries []workday.Country) error
}

// CalendarChecker reports whether holiday data exists for a country.
type CalendarChecker interface {
	Supports(countryCode string) bool
}

// SeedCountriesDeps holds dependencies for SeedCountries.
type SeedCountriesDeps struct {
	CountryStore CountryStoreForSeed
	Calendars    CalendarChecker // optional
}

// ExecuteSeedCountries makes the stored country catalog match catalog.
// The store is rewritten only when its contents differ.
// PRE: catalog is non-empty and every country has been validated
// POST: the store lists catalog in order; returns the stored countries
func ExecuteSeedCountries(ctx context.Context, catalog []workday.Country, deps SeedCountriesDeps) ([]workday.Country, error) {
	want := make([]workday.Country, len(catalog))
	for i, c := range catalog {
		c.Code = workday.NormalizeCode(c.Code)
		want[i] = c
	}

	existing, err := deps.CountryStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	if slices.Equal(existing, want) {
		slog.Debug("country_catalog_unchanged", "countries", len(want))
	} else {
		if err := deps.CountryStore.Replace(ctx, want); err != nil {
			return nil, fmt.Errorf("seed countries: %w", err)
		}
		slog.Info("country_catalog_seeded", "countries", len(want), "previous", len(existing))
	}

	if deps.Calendars != nil {
		for _, c := range want {
			if !deps.Calendars.Supports(c.Code) {
				slog.Warn("country_without_holiday_calendar", "country", c.Code,
					"effect", "only weekends are excluded")
			}
		}
	}
	return want, nil
}
