package tests

import (
	"context"
	"errors"
	"testing"

	"rentwheels/internal/domain"
	"rentwheels/internal/repository"
	"rentwheels/internal/service"
)

// addBooking stores a booking on the fixture's car and returns it.
func (f *bookingFixture) addBooking(id string, status domain.BookingStatus) *domain.Booking {
	booking := &domain.Booking{
		ID:            id,
		RenterID:      f.renter.ID,
		CarID:         f.car.ID,
		StartDate:     day(5),
		EndDate:       day(10),
		TotalPrice:    300,
		Status:        status,
		PaymentStatus: domain.PaymentStatusPending,
		Version:       1,
	}
	f.bookings.AddBooking(booking)
	return booking
}

// ──────────────────────────────────────────────
// 3. STATUS TRANSITIONS
// ──────────────────────────────────────────────

func TestStatusUpdate_UnknownStatus_Rejected(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusPending)

	_, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b1",
		ActorID:   f.host.ID,
		NewStatus: domain.BookingStatus("Archived"),
	})
	if !errors.Is(err, service.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestStatusUpdate_UnknownBooking_NotFound(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)

	_, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "no-such-booking",
		ActorID:   f.host.ID,
		NewStatus: domain.BookingStatusApproved,
	})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestStatusUpdate_ThirdParty_Rejected(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusPending)

	_, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b1",
		ActorID:   "stranger",
		NewStatus: domain.BookingStatusCancelled,
	})
	if !errors.Is(err, service.ErrNotBookingParticipant) {
		t.Errorf("expected ErrNotBookingParticipant, got: %v", err)
	}
}

func TestStatusUpdate_HostMayRequestAnyStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.BookingStatus{
		domain.BookingStatusPending,
		domain.BookingStatusApproved,
		domain.BookingStatusConfirmed,
		domain.BookingStatusActive,
		domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
		domain.BookingStatusRejected,
	} {
		status := status
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()

			f := newBookingFixture(t)
			f.addBooking("b1", domain.BookingStatusPending)

			details, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
				BookingID: "b1",
				ActorID:   f.host.ID,
				NewStatus: status,
			})
			if err != nil {
				t.Fatalf("expected host transition to %s to succeed, got: %v", status, err)
			}
			if details.Booking.Status != status {
				t.Errorf("expected status %s, got %s", status, details.Booking.Status)
			}
		})
	}
}

func TestStatusUpdate_RenterLimitedToCancelAndConfirm(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		status  domain.BookingStatus
		allowed bool
	}{
		{domain.BookingStatusCancelled, true},
		{domain.BookingStatusConfirmed, true},
		{domain.BookingStatusApproved, false},
		{domain.BookingStatusActive, false},
		{domain.BookingStatusCompleted, false},
		{domain.BookingStatusRejected, false},
		{domain.BookingStatusPending, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(string(tc.status), func(t *testing.T) {
			t.Parallel()

			f := newBookingFixture(t)
			f.addBooking("b1", domain.BookingStatusApproved)

			_, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
				BookingID: "b1",
				ActorID:   f.renter.ID,
				NewStatus: tc.status,
			})
			if tc.allowed && err != nil {
				t.Errorf("expected renter transition to %s to succeed, got: %v", tc.status, err)
			}
			if !tc.allowed && !errors.Is(err, service.ErrRenterTransition) {
				t.Errorf("expected ErrRenterTransition for %s, got: %v", tc.status, err)
			}
		})
	}
}

func TestStatusUpdate_HostWhoIsAlsoRenter_KeepsHostRights(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	booking := f.addBooking("b1", domain.BookingStatusPending)
	booking.RenterID = f.host.ID // host booked their own car

	_, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b1",
		ActorID:   f.host.ID,
		NewStatus: domain.BookingStatusApproved,
	})
	if err != nil {
		t.Errorf("expected host rights to win, got: %v", err)
	}
}

func TestStatusUpdate_ConfirmMarksPaymentPaid(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusApproved)

	details, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b1",
		ActorID:   f.renter.ID,
		NewStatus: domain.BookingStatusConfirmed,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if details.Booking.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("expected payment status Paid, got %s", details.Booking.PaymentStatus)
	}
	if stored := f.bookings.GetBooking("b1"); stored.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("expected stored payment status Paid, got %s", stored.PaymentStatus)
	}
}

func TestStatusUpdate_TerminalBooking_Locked(t *testing.T) {
	t.Parallel()

	for _, status := range []domain.BookingStatus{
		domain.BookingStatusCompleted,
		domain.BookingStatusCancelled,
		domain.BookingStatusRejected,
	} {
		status := status
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()

			f := newBookingFixture(t)
			f.addBooking("b1", status)

			_, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
				BookingID: "b1",
				ActorID:   f.host.ID,
				NewStatus: domain.BookingStatusPending,
			})
			if !errors.Is(err, service.ErrBookingClosed) {
				t.Errorf("expected ErrBookingClosed from %s, got: %v", status, err)
			}
		})
	}
}

func TestStatusUpdate_TerminalOverride_AllowsReopen(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusCancelled)

	// Same wiring, override knob on.
	svc := service.NewBookingService(f.bookings, f.cars, f.users, f.locks, nil, true)

	details, err := svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b1",
		ActorID:   f.host.ID,
		NewStatus: domain.BookingStatusPending,
	})
	if err != nil {
		t.Fatalf("expected override to permit reopening, got: %v", err)
	}
	if details.Booking.Status != domain.BookingStatusPending {
		t.Errorf("expected status Pending, got %s", details.Booking.Status)
	}
}

func TestStatusUpdate_IncrementsVersion(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusPending)

	if _, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b1",
		ActorID:   f.host.ID,
		NewStatus: domain.BookingStatusApproved,
	}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if stored := f.bookings.GetBooking("b1"); stored.Version != 2 {
		t.Errorf("expected version 2 after update, got %d", stored.Version)
	}
}

func TestStatusUpdate_StaleVersion_Conflict(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusPending)
	f.bookings.UpdateStatusError = repository.ErrStaleVersion

	_, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b1",
		ActorID:   f.host.ID,
		NewStatus: domain.BookingStatusApproved,
	})
	if !errors.Is(err, service.ErrBookingConflict) {
		t.Errorf("expected ErrBookingConflict on stale version, got: %v", err)
	}
}

func TestStatusUpdate_ReturnsRenterAndCarDetails(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusPending)

	details, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: "b1",
		ActorID:   f.host.ID,
		NewStatus: domain.BookingStatusApproved,
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if details.RenterName != f.renter.Name || details.RenterEmail != f.renter.Email {
		t.Errorf("expected renter details %s/%s, got %s/%s",
			f.renter.Name, f.renter.Email, details.RenterName, details.RenterEmail)
	}
	if details.Car.ID != f.car.ID {
		t.Errorf("expected car %s, got %s", f.car.ID, details.Car.ID)
	}
}

// ──────────────────────────────────────────────
// 4. CANCELLATION
// ──────────────────────────────────────────────

func TestCancelBooking_RenterCancels(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusPending)

	details, err := f.svc.CancelBooking(context.Background(), f.renter.ID, "b1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if details.Booking.Status != domain.BookingStatusCancelled {
		t.Errorf("expected status Cancelled, got %s", details.Booking.Status)
	}
}

func TestCancelBooking_HostCancels(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusConfirmed)

	if _, err := f.svc.CancelBooking(context.Background(), f.host.ID, "b1"); err != nil {
		t.Errorf("expected host cancel to succeed, got: %v", err)
	}
}

func TestCancelBooking_ThirdParty_Rejected(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusPending)

	_, err := f.svc.CancelBooking(context.Background(), "stranger", "b1")
	if !errors.Is(err, service.ErrNotBookingParticipant) {
		t.Errorf("expected ErrNotBookingParticipant, got: %v", err)
	}
}

func TestCancelBooking_AlreadyClosed_Rejected(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	f.addBooking("b1", domain.BookingStatusCompleted)

	_, err := f.svc.CancelBooking(context.Background(), f.renter.ID, "b1")
	if !errors.Is(err, service.ErrBookingClosed) {
		t.Errorf("expected ErrBookingClosed, got: %v", err)
	}
}

// ──────────────────────────────────────────────
// 5. END TO END LIFECYCLE
// ──────────────────────────────────────────────

func TestBookingLifecycle_ApprovedBookingBlocksSecondRenter(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)
	other := &domain.User{ID: "renter-2", Name: "Riya", Email: "riya@example.com", Role: domain.RoleUser}
	f.users.AddUser(other)

	booking, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		RenterID:  f.renter.ID,
		CarID:     f.car.ID,
		StartDate: day(12),
		EndDate:   day(14),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: booking.ID,
		ActorID:   f.host.ID,
		NewStatus: domain.BookingStatusApproved,
	}); err != nil {
		t.Fatalf("approve: %v", err)
	}

	// Overlapping request from a second renter while the first booking
	// works through its lifecycle.
	_, err = f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		RenterID:  other.ID,
		CarID:     f.car.ID,
		StartDate: day(13),
		EndDate:   day(15),
	})
	if !errors.Is(err, service.ErrBookingConflict) {
		t.Errorf("expected ErrBookingConflict against the approved booking, got: %v", err)
	}

	if _, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: booking.ID,
		ActorID:   f.renter.ID,
		NewStatus: domain.BookingStatusConfirmed,
	}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	_, err = f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
		BookingID: booking.ID,
		ActorID:   f.renter.ID,
		NewStatus: domain.BookingStatusActive,
	})
	if !errors.Is(err, service.ErrRenterTransition) {
		t.Errorf("expected ErrRenterTransition for renter activation, got: %v", err)
	}
}

func TestBookingLifecycle_RequestToCompletion(t *testing.T) {
	t.Parallel()

	f := newBookingFixture(t)

	booking, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		RenterID:  f.renter.ID,
		CarID:     f.car.ID,
		StartDate: day(5),
		EndDate:   day(10),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	steps := []struct {
		actor  string
		status domain.BookingStatus
	}{
		{f.host.ID, domain.BookingStatusApproved},
		{f.renter.ID, domain.BookingStatusConfirmed},
		{f.host.ID, domain.BookingStatusActive},
		{f.host.ID, domain.BookingStatusCompleted},
	}

	for _, step := range steps {
		if _, err := f.svc.UpdateBookingStatus(context.Background(), service.UpdateStatusRequest{
			BookingID: booking.ID,
			ActorID:   step.actor,
			NewStatus: step.status,
		}); err != nil {
			t.Fatalf("transition to %s: %v", step.status, err)
		}
	}

	stored := f.bookings.GetBooking(booking.ID)
	if stored.Status != domain.BookingStatusCompleted {
		t.Errorf("expected final status Completed, got %s", stored.Status)
	}
	if stored.PaymentStatus != domain.PaymentStatusPaid {
		t.Errorf("expected payment Paid, got %s", stored.PaymentStatus)
	}

	// The completed booking no longer reserves the calendar.
	if _, err := f.svc.CreateBooking(context.Background(), service.CreateBookingRequest{
		RenterID:  f.renter.ID,
		CarID:     f.car.ID,
		StartDate: day(5),
		EndDate:   day(10),
	}); err != nil {
		t.Errorf("expected rebooking after completion to succeed, got: %v", err)
	}
}
