package services

import "errors"

// Domain error taxonomy. Controllers map these to HTTP statuses; anything
// else that surfaces from the store is treated as a transient server error.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrConflict    = errors.New("conflict")
	ErrSelfRequest = errors.New("cannot request own ride")
	ErrNoCapacity  = errors.New("no available seats left")
	ErrValidation  = errors.New("invalid input")
)
