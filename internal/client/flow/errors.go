package flow

import "errors"

// ValidationError is a form or gate failure detected before any network
// call. Its text is shown to the user as is.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func invalid(msg string) *ValidationError { return &ValidationError{msg: msg} }

var (
	ErrEmptyIssue        = invalid("Please describe the issue")
	ErrNoMechanic        = invalid("Please select a mechanic")
	ErrNoLocation        = invalid("Location not available")
	ErrNoStars           = invalid("Please select a rating")
	ErrStarsOutOfRange   = invalid("Rating must be between 1 and 5 stars")
	ErrMissingFields     = invalid("Please fill in all fields")
	ErrPasswordMismatch  = invalid("Passwords do not match")
	ErrNoProfileLocation = invalid("Please set your location")
	ErrUnknownSkill      = invalid("Unknown skill type")
	ErrInvalidRole       = invalid("Role must be CUSTOMER or MECHANIC")
	ErrInvalidCoordinate = invalid("Latitude must be between -90 and 90, longitude between -180 and 180")
	ErrActionNotAllowed  = invalid("Action not allowed for this request")
	ErrNoSuchCandidate   = invalid("No mechanic with that number")
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
