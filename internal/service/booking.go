package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rentwheels/internal/domain"
	"rentwheels/internal/redis"
	"rentwheels/internal/repository"
)

// carLockTTL bounds how long a per-car create lock can be held.
const carLockTTL = 10 * time.Second

// BookingService handles the booking lifecycle: creation with conflict
// resolution, role-gated status transitions, and the renter/host queries.
type BookingService struct {
	bookings repository.BookingRepository
	cars     repository.CarRepository
	users    repository.UserRepository
	locks    redis.LockStoreInterface
	notifier *NotificationService

	// allowTerminalOverride relaxes the transition table so hosts can move
	// bookings out of Completed/Cancelled/Rejected. Off by default.
	allowTerminalOverride bool
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings repository.BookingRepository,
	cars repository.CarRepository,
	users repository.UserRepository,
	locks redis.LockStoreInterface,
	notifier *NotificationService,
	allowTerminalOverride bool,
) *BookingService {
	return &BookingService{
		bookings:              bookings,
		cars:                  cars,
		users:                 users,
		locks:                 locks,
		notifier:              notifier,
		allowTerminalOverride: allowTerminalOverride,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
// The total price is computed from the car's daily rate; any client-side
// figure is a display hint only.
type CreateBookingRequest struct {
	RenterID  string
	CarID     string
	StartDate time.Time
	EndDate   time.Time
}

// CreateBooking validates the request, checks the car's calendar and
// persists a new booking in Pending status.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.RenterID == "" || req.CarID == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, ErrMissingFields
	}

	start := domain.DateOnly(req.StartDate)
	end := domain.DateOnly(req.EndDate)
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	today := domain.DateOnly(time.Now())
	if start.Before(today) {
		return nil, ErrPastStartDate
	}

	car, err := s.cars.GetByID(ctx, req.CarID)
	if err != nil {
		return nil, err
	}

	// Fast-fail guard across instances; the repository's per-car advisory
	// lock is the authoritative serialization of check-then-insert.
	if s.locks != nil {
		locked, err := s.locks.AcquireCarLock(ctx, car.ID, carLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrBookingConflict
		}
		defer s.locks.ReleaseCarLock(ctx, car.ID)
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:            uuid.New().String(),
		RenterID:      req.RenterID,
		CarID:         car.ID,
		StartDate:     start,
		EndDate:       end,
		TotalPrice:    car.PricePerDay * float64(domain.RentalDays(start, end)),
		Status:        domain.BookingStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bookings.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	if s.notifier != nil {
		if host, err := s.users.GetByID(ctx, car.OwnerID); err == nil {
			_ = s.notifier.NotifyBookingRequested(ctx, host, booking)
		}
	}

	return booking, nil
}

// BookingDetails is a booking joined with renter display info and car info,
// returned after a status transition.
type BookingDetails struct {
	Booking     domain.Booking
	RenterName  string
	RenterEmail string
	Car         domain.Car
}

// UpdateStatusRequest contains the parameters for a status transition.
type UpdateStatusRequest struct {
	BookingID string
	ActorID   string
	NewStatus domain.BookingStatus
}

// UpdateBookingStatus validates and applies a status change requested by an
// authenticated actor. Hosts may request any status for bookings of their
// own cars; renters may only cancel or confirm (the payment step). The
// transition table blocks moves out of terminal statuses.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, req UpdateStatusRequest) (*BookingDetails, error) {
	if !req.NewStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	car, err := s.cars.GetByID(ctx, booking.CarID)
	if err != nil {
		return nil, err
	}

	isHost := car.OwnerID == req.ActorID
	isRenter := booking.RenterID == req.ActorID
	if !isHost && !isRenter {
		return nil, ErrNotBookingParticipant
	}

	// Host rights win when the actor is both host and renter.
	if !isHost && !domain.RenterRequestable(req.NewStatus) {
		return nil, ErrRenterTransition
	}

	if !domain.CanTransition(booking.Status, req.NewStatus) && !s.allowTerminalOverride {
		return nil, ErrBookingClosed
	}

	payment := booking.PaymentStatus
	if req.NewStatus == domain.BookingStatusConfirmed {
		payment = domain.PaymentStatusPaid
	}

	if err := s.bookings.UpdateStatus(ctx, booking.ID, req.NewStatus, payment, booking.Version); err != nil {
		if errors.Is(err, repository.ErrStaleVersion) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	booking.Status = req.NewStatus
	booking.PaymentStatus = payment
	booking.Version++

	renter, err := s.users.GetByID(ctx, booking.RenterID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.NotifyStatusChanged(ctx, renter, booking)
	}

	return &BookingDetails{
		Booking:     *booking,
		RenterName:  renter.Name,
		RenterEmail: renter.Email,
		Car:         *car,
	}, nil
}

// CancelBooking cancels a booking on behalf of its renter or host. It is
// a shorthand for requesting the Cancelled status through the transition
// authority, sharing its authorization policy.
func (s *BookingService) CancelBooking(ctx context.Context, actorID, bookingID string) (*BookingDetails, error) {
	return s.UpdateBookingStatus(ctx, UpdateStatusRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		NewStatus: domain.BookingStatusCancelled,
	})
}

// ListMyBookings retrieves the renter's bookings, newest first, each joined
// with a reduced car projection.
func (s *BookingService) ListMyBookings(ctx context.Context, renterID string) ([]repository.RenterBooking, error) {
	return s.bookings.ListByRenter(ctx, renterID)
}

// ListHostBookings retrieves bookings across the host's fleet, newest
// first. A host with no cars gets an empty list without a booking query.
func (s *BookingService) ListHostBookings(ctx context.Context, hostID string) ([]repository.HostBooking, error) {
	cars, err := s.cars.GetByOwner(ctx, hostID)
	if err != nil {
		return nil, err
	}
	if len(cars) == 0 {
		return []repository.HostBooking{}, nil
	}

	carIDs := make([]string, len(cars))
	for i, c := range cars {
		carIDs[i] = c.ID
	}

	return s.bookings.ListByCarIDs(ctx, carIDs)
}

// NotifyRenter hands off a payment reminder for the booking to the
// notification sender. It mutates nothing.
func (s *BookingService) NotifyRenter(ctx context.Context, bookingID string) error {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	renter, err := s.users.GetByID(ctx, booking.RenterID)
	if err != nil {
		return err
	}

	if s.notifier != nil {
		return s.notifier.NotifyPaymentReminder(ctx, renter, booking)
	}
	return nil
}
