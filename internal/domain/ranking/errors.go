package ranking

import "errors"

// Sentinel errors for request parsing.
var (
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrUnknownDirection = errors.New("unknown sort direction")
)
