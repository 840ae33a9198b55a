package repository

import (
	"errors"

	"github.com/okian/facultyhub/internal/domain/model"
)

// Sentinel kinds for store errors.
var (
	ErrNotFound       = model.ErrNotFound
	ErrUnknownDriver  = errors.New("unknown store driver")
	ErrInvalidFixture = errors.New("invalid fixture")
	ErrMissingDSN     = errors.New("database url is required")
)
