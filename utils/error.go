package utils

import "errors"

var (
	ErrorRecordNotFound = errors.New("record not found")
	ErrorPeriodNotFound = errors.New("payroll period not found")

	// ErrorValidation covers malformed caller input (bad scope, bad target status).
	// It is raised before any state is read or written.
	ErrorValidation = errors.New("validation failed")

	// ErrorInvalidTransition is returned when a resolution is attempted on a
	// record that is no longer pending, including a lost compare-and-set race.
	ErrorInvalidTransition = errors.New("invalid resolution transition")
)
