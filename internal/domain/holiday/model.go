package holiday

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName = errors.New("holiday name cannot be empty")
	ErrEmptyDate = errors.New("holiday date cannot be zero")
)

// Holiday is one public holiday occurrence in a given year.
// Observed differs from Date when the day off moves, e.g. to the next Monday.
type Holiday struct {
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Observed time.Time `json:"observed"`
}

// Validate checks if the Holiday has valid data.
// PRE: Holiday struct is populated
// POST: Returns nil if valid, error otherwise
func (h *Holiday) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	if h.Date.IsZero() {
		return ErrEmptyDate
	}
	return nil
}

// SortByDate orders holidays chronologically, ties broken by name.
func SortByDate(list []Holiday) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.Before(list[j].Date)
		}
		return list[i].Name < list[j].Name
	})
}
