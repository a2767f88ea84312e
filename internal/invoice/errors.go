package invoice

import "errors"

var (
	// ErrValidation indicates malformed or out-of-range input: a bad
	// billing date, a non-numeric or negative rate, a tax percentage
	// outside [0, 100].
	ErrValidation = errors.New("invalid invoice input")

	// ErrIO indicates a missing input file, an unwritable output
	// directory, or a missing font/logo asset.
	ErrIO = errors.New("invoice i/o failure")
)
