package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "Pending"
	BookingStatusApproved  BookingStatus = "Approved"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusActive    BookingStatus = "Active"
	BookingStatusCompleted BookingStatus = "Completed"
	BookingStatusCancelled BookingStatus = "Cancelled"
	BookingStatusRejected  BookingStatus = "Rejected"
)

// PaymentStatus represents the payment state of a booking.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusPaid    PaymentStatus = "Paid"
)

// Booking represents a reservation of a car for an inclusive date range.
type Booking struct {
	ID            string
	RenterID      string
	CarID         string
	StartDate     time.Time // date-only, UTC midnight
	EndDate       time.Time // date-only, UTC midnight
	TotalPrice    float64
	Status        BookingStatus
	PaymentStatus PaymentStatus
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// allStatuses is the closed status enum.
var allStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusConfirmed,
	BookingStatusActive,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusRejected,
}

// Valid reports whether s is one of the seven booking statuses.
func (s BookingStatus) Valid() bool {
	for _, v := range allStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether s ends the booking lifecycle. No transition
// leaves a terminal status.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusRejected:
		return true
	}
	return false
}

// CalendarFreeing reports whether a booking in this status no longer
// reserves the car's calendar and so never blocks a new booking.
func (s BookingStatus) CalendarFreeing() bool {
	return s.Terminal()
}

// statusTransitions is the transition table: the statuses reachable from
// each state. Hosts hold full transition rights over their bookings, so
// every non-terminal state admits the whole enum; terminal states admit
// nothing.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   allStatuses,
	BookingStatusApproved:  allStatuses,
	BookingStatusConfirmed: allStatuses,
	BookingStatusActive:    allStatuses,
	BookingStatusCompleted: nil,
	BookingStatusCancelled: nil,
	BookingStatusRejected:  nil,
}

// CanTransition reports whether the transition table permits moving a
// booking from one status to another. Role restrictions are layered on
// top by the caller.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RenterRequestable reports whether a renter may request the status on
// their own booking. Renters can only cancel, or confirm after the host
// approved (the payment step); everything else is the host's call.
func RenterRequestable(s BookingStatus) bool {
	return s == BookingStatusCancelled || s == BookingStatusConfirmed
}

// DateOnly truncates t to midnight UTC. Bookings operate at calendar-date
// granularity with no time-of-day component.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays returns the inclusive number of calendar days covered by the
// range. Both endpoints count: a same-day rental is one day.
func RentalDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

// Overlaps reports whether two inclusive date ranges share at least one
// day. Touching endpoints overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return !s1.After(e2) && !s2.After(e1)
}
