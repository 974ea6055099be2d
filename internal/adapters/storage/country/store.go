package country

import (
	"context"

	"workdays/internal/domain/workday"
)

// Store persists the country catalog.
type Store interface {
	List(ctx context.Context) ([]workday.Country, error)
	Replace(ctx context.Context, countries []workday.Country) error
}
