package workday

import "fmt"

// ErrorKind is the closed set of reasons a calculation request is rejected.
type ErrorKind string

const (
	KindInvalidDateRange  ErrorKind = "INVALID_DATE_RANGE"
	KindDateBeforeMinimum ErrorKind = "DATE_BEFORE_MINIMUM"
	KindInvalidCountry    ErrorKind = "INVALID_COUNTRY"
)

type kindInfo struct {
	code    string
	message string
}

// DATE_BEFORE_MINIMUM covers both ends of the supported window; the name is historical.
var kinds = map[ErrorKind]kindInfo{
	KindInvalidDateRange:  {code: "DATE_001", message: "Start date cannot be after end date"},
	KindDateBeforeMinimum: {code: "DATE_002", message: "Date range must be between 1900-01-01 and 2100-12-31"},
	KindInvalidCountry:    {code: "COUNTRY_001", message: "Invalid country selected"},
}

// Code returns the stable error code shown to API clients (e.g. "DATE_001").
func (k ErrorKind) Code() string {
	return kinds[k].code
}

// Message returns the user-facing message for the kind.
func (k ErrorKind) Message() string {
	return kinds[k].message
}

// ValidationError carries an ErrorKind through error-returning APIs.
type ValidationError struct {
	Kind ErrorKind
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Code(), e.Kind.Message())
}
