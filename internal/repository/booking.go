package repository

import (
	"context"
	"time"

	"rentwheels/internal/domain"
)

// RenterBooking is a booking joined with the reduced car projection shown
// in a renter's booking list.
type RenterBooking struct {
	Booking        domain.Booking
	CarMake        string
	CarModel       string
	CarImages      []string
	CarLocation    string
	CarPricePerDay float64
}

// HostBooking is a booking joined with the full renter and car records,
// shown in a host's fleet dashboard.
type HostBooking struct {
	Booking domain.Booking
	Renter  domain.User
	Car     domain.Car
}

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// CreateIfAvailable persists the booking unless an overlapping booking
	// in a calendar-blocking status exists for the same car. The overlap
	// check and the insert are one atomic unit, serialized per car.
	// Returns ErrConflict when the range is taken.
	CreateIfAvailable(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// FindOverlapping returns a booking for the car that overlaps the
	// inclusive date range and still reserves the calendar.
	// Returns nil if no such booking exists.
	FindOverlapping(ctx context.Context, carID string, start, end time.Time) (*domain.Booking, error)

	// ListByRenter retrieves the renter's bookings, newest first.
	ListByRenter(ctx context.Context, renterID string) ([]RenterBooking, error)

	// ListByCarIDs retrieves all bookings for the given cars, newest first.
	ListByCarIDs(ctx context.Context, carIDs []string) ([]HostBooking, error)

	// UpdateStatus writes a new status and payment status if the stored
	// version still matches the one the caller read.
	// Returns ErrStaleVersion when a concurrent update won.
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, payment domain.PaymentStatus, version int64) error
}
