package calculation

import (
	"context"
	"errors"

	domain "workdays/internal/domain/calculation"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("calculation not found")

// Store persists the calculation log.
type Store interface {
	Save(ctx context.Context, record domain.Record) error
	GetByID(ctx context.Context, id string) (domain.Record, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Record, error)
}
