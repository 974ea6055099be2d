package workday

// ValidationOutcome is either Valid or Invalid. The unexported method seals
// the set of variants to this package.
type ValidationOutcome interface {
	validationOutcome()
}

// Valid is the successful outcome, carrying the resolved country.
type Valid struct {
	Country Country
}

// Invalid is the failed outcome, carrying the first rule that failed.
type Invalid struct {
	Kind ErrorKind
}

func (Valid) validationOutcome()   {}
func (Invalid) validationOutcome() {}

// Err adapts the failure into an error for callers that propagate errors.
func (i Invalid) Err() error {
	return &ValidationError{Kind: i.Kind}
}
