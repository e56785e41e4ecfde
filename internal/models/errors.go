package models

import "errors"

var (
	// ErrInvalidRange is returned when the minimum rent exceeds the maximum rent.
	ErrInvalidRange = errors.New("invalid rent range")
	// ErrInvalidPlatformFilter is returned when every known platform is excluded.
	ErrInvalidPlatformFilter = errors.New("invalid platform filter")
	// ErrUnknownFeature is returned for a preference that names no known feature.
	ErrUnknownFeature = errors.New("unknown feature")
	// ErrDuplicatePreference is returned when a feature is selected more than once.
	ErrDuplicatePreference = errors.New("duplicate preference")
)

// ValidationError is a user-correctable problem with a search query.
// The search is not executed when one is returned.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
