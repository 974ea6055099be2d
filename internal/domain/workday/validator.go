package workday

import "time"

// Validator checks a calculation request before any counting happens.
type Validator struct {
	countries CountryDirectory
}

// NewValidator creates a Validator that resolves countries through dir.
func NewValidator(dir CountryDirectory) *Validator {
	return &Validator{countries: dir}
}

// Validate applies the request rules in a fixed order; the first failure wins.
//  1. start after end
//  2. outside [MinSupportedDate, MaxSupportedDate]
//  3. unknown country
//
// PRE: start and end are calendar dates
// POST: returns Valid with the resolved country, or Invalid with one kind
// INVARIANT: no side effects
func (v *Validator) Validate(start, end time.Time, countryCode string) ValidationOutcome {
	r := NewDateRange(start, end)

	if !r.Ordered() {
		return Invalid{Kind: KindInvalidDateRange}
	}

	if !r.WithinSupportedBounds() {
		return Invalid{Kind: KindDateBeforeMinimum}
	}

	country, ok := v.countries.FindByCode(NormalizeCode(countryCode))
	if !ok {
		return Invalid{Kind: KindInvalidCountry}
	}

	return Valid{Country: country}
}
