package holiday_test

import (
	"testing"
	"time"

	"workdays/internal/domain/holiday"
)

// TestHoliday_Validate tests validation of Holiday.
func TestHoliday_Validate(t *testing.T) {
	date := time.Date(2023, 10, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		hol     holiday.Holiday
		wantErr bool
	}{
		{
			name:    "valid holiday",
			hol:     holiday.Holiday{Name: "Tag der Deutschen Einheit", Date: date, Observed: date},
			wantErr: false,
		},
		{
			name:    "valid without observed date",
			hol:     holiday.Holiday{Name: "Tag der Deutschen Einheit", Date: date},
			wantErr: false,
		},
		{
			name:    "empty name",
			hol:     holiday.Holiday{Name: " ", Date: date},
			wantErr: true,
		},
		{
			name:    "zero date",
			hol:     holiday.Holiday{Name: "Test"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hol.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Holiday.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSortByDate tests chronological ordering.
func TestSortByDate(t *testing.T) {
	list := []holiday.Holiday{
		{Name: "B", Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "A", Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "A2", Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	holiday.SortByDate(list)

	want := []string{"A", "A2", "B"}
	for i, h := range list {
		if h.Name != want[i] {
			t.Errorf("list[%d] = %q, want %q", i, h.Name, want[i])
		}
	}
}
