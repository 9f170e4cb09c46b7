package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrNotOwner            = errors.New("booking belongs to another user")
	ErrNoSeats             = errors.New("not enough seats available")
	ErrSeatTaken           = errors.New("seat is already taken")
	ErrFlightClosed        = errors.New("flight is not open for booking")
	ErrFlightDeparted      = errors.New("flight has already departed")
	ErrAlreadyCancelled    = errors.New("booking is already cancelled")
	ErrUniquenessExhausted = errors.New("could not generate a unique identifier")
)

// ValidationError carries the ordered list of field-level messages
// accumulated before any store access happens.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}
