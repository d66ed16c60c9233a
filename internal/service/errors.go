package service

import "errors"

var (
	// ErrMissingFields is returned when a required field is absent.
	ErrMissingFields = errors.New("missing required field")

	// ErrInvalidDateRange is returned when the end date precedes the start date.
	ErrInvalidDateRange = errors.New("end date before start date")

	// ErrPastStartDate is returned when a booking starts before today.
	ErrPastStartDate = errors.New("cannot book dates in the past")

	// ErrInvalidStatus is returned when a requested status is not one of
	// the booking status enum values.
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrBookingConflict is returned when the requested dates overlap an
	// existing booking that still reserves the car's calendar.
	ErrBookingConflict = errors.New("car is already booked for these dates")

	// ErrNotBookingParticipant is returned when the actor is neither the
	// booking's renter nor the owner of its car.
	ErrNotBookingParticipant = errors.New("not authorized to manage this booking")

	// ErrRenterTransition is returned when a renter requests a status
	// outside their rights.
	ErrRenterTransition = errors.New("renters can only cancel or pay for bookings")

	// ErrBookingClosed is returned when a transition is requested out of a
	// terminal status.
	ErrBookingClosed = errors.New("booking is in a terminal status")

	// ErrHostOnly is returned when a non-host tries to manage car listings.
	ErrHostOnly = errors.New("only hosts can manage car listings")

	// ErrNotCarOwner is returned when the actor does not own the car.
	ErrNotCarOwner = errors.New("not the owner of this car")

	// ErrInvalidRole is returned when a registration requests a role that
	// cannot be self-assigned.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrPlateTaken is returned when the plate number is already listed.
	ErrPlateTaken = errors.New("plate number already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
