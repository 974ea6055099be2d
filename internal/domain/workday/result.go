package workday

import "time"

// CalculationResult is the outcome of a successful calculation together with
// the inputs echoed back for presentation.
type CalculationResult struct {
	WorkingDays         int64
	Range               DateRange
	Country             Country
	AllCountries        []Country
	SelectedCountryCode string
}

// Assemble packages a working-day count with its metadata.
// PRE: none
// POST: returned result owns its own copy of allCountries
func Assemble(count int64, start, end time.Time, country Country, allCountries []Country, selectedCode string) CalculationResult {
	countries := make([]Country, len(allCountries))
	copy(countries, allCountries)

	return CalculationResult{
		WorkingDays:         count,
		Range:               DateRange{Start: start, End: end},
		Country:             country,
		AllCountries:        countries,
		SelectedCountryCode: selectedCode,
	}
}
