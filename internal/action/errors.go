package action

import "errors"

var (
	// ErrUnknownAction is returned by New for a kind outside the supported set.
	ErrUnknownAction = errors.New("unknown action")

	// ErrInvalidOption is returned when an option value cannot be used,
	// either because it cannot be coerced to the option's type or because
	// it is outside the accepted values.
	ErrInvalidOption = errors.New("invalid action option")
)
