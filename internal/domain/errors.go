package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes; everything else is treated as an internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)

// Conflict variants. Both match errors.Is(err, ErrConflict); callers that
// need the distinction can match the specific error.
var (
	ErrAlreadyRegistered = fmt.Errorf("%w: already registered for this conference", ErrConflict)
	ErrNoSeatsAvailable  = fmt.Errorf("%w: no seats available", ErrConflict)
	ErrAlreadyWishlisted = fmt.Errorf("%w: session already in wishlist", ErrConflict)
)
