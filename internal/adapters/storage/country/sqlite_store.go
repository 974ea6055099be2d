package country

import (
	"context"
	"fmt"

	"workdays/internal/adapters/storage"
	"workdays/internal/domain/workday"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// Compile-time check that *SQLiteStore satisfies Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new country store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List retrieves all countries in catalog order.
// PRE: none
// POST: Returns countries ordered by their catalog position
func (s *SQLiteStore) List(ctx context.Context) ([]workday.Country, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT code, name FROM country ORDER BY position, code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []workday.Country
	for rows.Next() {
		var c workday.Country
		if err := rows.Scan(&c.Code, &c.Name); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// Replace swaps the whole catalog for countries inside one transaction.
// PRE: every country has been validated
// POST: the table holds exactly countries, positioned in slice order; codes are normalized
func (s *SQLiteStore) Replace(ctx context.Context, countries []workday.Country) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin country replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM country"); err != nil {
		return fmt.Errorf("clear countries: %w", err)
	}
	for i, c := range countries {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO country (code, name, position) VALUES (?, ?, ?)",
			workday.NormalizeCode(c.Code), c.Name, i,
		); err != nil {
			return fmt.Errorf("insert country %s: %w", c.Code, err)
		}
	}
	return tx.Commit()
}
