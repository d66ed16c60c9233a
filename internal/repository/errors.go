package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when a booking overlaps an existing booking
	// that still reserves the car's calendar.
	ErrConflict = errors.New("booking dates conflict")

	// ErrStaleVersion is returned when an optimistic write loses against a
	// concurrent update of the same booking.
	ErrStaleVersion = errors.New("booking was modified concurrently")

	// ErrDuplicate is returned when a unique field (email, plate number)
	// is already taken.
	ErrDuplicate = errors.New("duplicate field value")
)
