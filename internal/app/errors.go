package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoStore          = errors.New("no store configured")
	ErrInvalidPage      = errors.New("invalid page")
	ErrInvalidYearRange = errors.New("invalid year range")
)
