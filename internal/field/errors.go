package field

import "errors"

var (
	// ErrInvalidConfig indicates a generator was configured with values it cannot work with.
	ErrInvalidConfig = errors.New("field: invalid configuration")

	// ErrUnknownSource indicates a source name that no generator is registered under.
	ErrUnknownSource = errors.New("field: unknown source")
)
