package volunteer

import "errors"

var (
	// ErrInvalidID is returned when a path id is not a valid store identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidDocument is returned when a request body cannot be stored.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrInvalidQuery is returned for filters using operators or empty keys.
	ErrInvalidQuery = errors.New("invalid query")
)
