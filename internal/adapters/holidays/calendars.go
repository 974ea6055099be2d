package holidays

import (
	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/at"
	"github.com/rickar/cal/v2/be"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/dk"
	"github.com/rickar/cal/v2/es"
	"github.com/rickar/cal/v2/fi"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/pl"
	"github.com/rickar/cal/v2/se"
)

// NationalCalendars maps a country code to its national public holidays.
// Regional holidays are not included.
var NationalCalendars = map[string][]*cal.Holiday{
	"AT": at.Holidays,
	"BE": be.Holidays,
	"DE": withStartYears(de.Holidays, map[*cal.Holiday]int{
		de.DeutschenEinheit: 1990,
	}),
	"DK": dk.Holidays,
	"ES": es.Holidays,
	"FI": fi.Holidays,
	"FR": fr.Holidays,
	"IT": withStartYears(it.Holidays, map[*cal.Holiday]int{
		it.FestaDellaLiberazione: 1946,
		it.FestaDellaRepubblica:  1947,
	}),
	"NL": nl.Holidays,
	"PL": withStartYears(pl.Holidays, map[*cal.Holiday]int{
		pl.ThreeKings:              2011,
		pl.ConstitutionDay:         1990,
		pl.NationalIndependenceDay: 1989,
	}),
	"SE": se.Holidays,
}

// withStartYears copies hols, giving the listed holidays the first year they
// were observed. The package-level holidays of rickar/cal are left untouched.
func withStartYears(hols []*cal.Holiday, startYears map[*cal.Holiday]int) []*cal.Holiday {
	out := make([]*cal.Holiday, len(hols))
	for i, h := range hols {
		if year, ok := startYears[h]; ok && h.StartYear < year {
			h = h.Clone(&cal.Holiday{StartYear: year})
		}
		out[i] = h
	}
	return out
}
