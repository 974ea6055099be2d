package calculation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workdays/internal/adapters/storage"
	domain "workdays/internal/domain/calculation"
)

const (
	dateFormat      = "2006-01-02"
	// Fixed width so created_at sorts lexically.
	timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new calculation log store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save appends a record to the calculation log.
// PRE: record has been validated
// POST: record is persisted; saving an existing ID fails
func (s *SQLiteStore) Save(ctx context.Context, r domain.Record) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO calculation (id, start_date, end_date, country_code, working_days, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.ID, r.StartDate.Format(dateFormat), r.EndDate.Format(dateFormat), r.CountryCode, r.WorkingDays,
		r.CreatedAt.UTC().Format(timestampFormat),
	)
	return err
}

// GetByID retrieves a record by its ID.
// PRE: id is non-empty
// POST: Returns the record or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, start_date, end_date, country_code, working_days, created_at FROM calculation WHERE id = ?", id)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return r, err
}

// List retrieves the most recent records first.
// PRE: filter has been normalized
// POST: Returns at most filter.Limit records, newest first
func (s *SQLiteStore) List(ctx context.Context, filter domain.ListFilter) ([]domain.Record, error) {
	query := "SELECT id, start_date, end_date, country_code, working_days, created_at FROM calculation"
	var args []any
	if filter.CountryCode != "" {
		query += " WHERE country_code = ?"
		args = append(args, filter.CountryCode)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (domain.Record, error) {
	var r domain.Record
	var startStr, endStr, createdStr string
	if err := sc.Scan(&r.ID, &startStr, &endStr, &r.CountryCode, &r.WorkingDays, &createdStr); err != nil {
		return domain.Record{}, err
	}
	var err error
	if r.StartDate, err = time.Parse(dateFormat, startStr); err != nil {
		return domain.Record{}, fmt.Errorf("calculation %s start_date: %w", r.ID, err)
	}
	if r.EndDate, err = time.Parse(dateFormat, endStr); err != nil {
		return domain.Record{}, fmt.Errorf("calculation %s end_date: %w", r.ID, err)
	}
	if r.CreatedAt, err = time.Parse(timestampFormat, createdStr); err != nil {
		return domain.Record{}, fmt.Errorf("calculation %s created_at: %w", r.ID, err)
	}
	return r, nil
}
