package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"rentwheels/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingRequested NotificationType = "BOOKING_REQUESTED"
	NotificationBookingApproved  NotificationType = "BOOKING_APPROVED"
	NotificationBookingRejected  NotificationType = "BOOKING_REJECTED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationPaymentReminder  NotificationType = "PAYMENT_REMINDER"
)

// Notification represents a message handed off for delivery.
type Notification struct {
	Type           NotificationType
	RecipientID    string
	RecipientEmail string
	Title          string
	Message        string
	CreatedAt      time.Time
}

// NotificationService hands notifications off for delivery. Delivery is
// fire-and-forget; the booking engine never depends on it succeeding.
type NotificationService struct {
	// In a real deployment this would carry a push client (FCM/APNS),
	// an email client and SMS gateway. Here delivery is a structured log.
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyBookingRequested tells the host a new booking request arrived for
// one of their cars.
func (s *NotificationService) NotifyBookingRequested(ctx context.Context, host *domain.User, booking *domain.Booking) error {
	s.send(ctx, Notification{
		Type:           NotificationBookingRequested,
		RecipientID:    host.ID,
		RecipientEmail: host.Email,
		Title:          "New Booking Request",
		Message: fmt.Sprintf("Booking request for %s to %s awaits your approval",
			booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02")),
		CreatedAt: time.Now(),
	})
	return nil
}

// NotifyStatusChanged tells the renter their booking moved to a new status.
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, renter *domain.User, booking *domain.Booking) error {
	var typ NotificationType
	var title, msg string
	switch booking.Status {
	case domain.BookingStatusApproved:
		typ, title = NotificationBookingApproved, "Booking Approved"
		msg = "Your booking was approved. Complete payment to confirm it."
	case domain.BookingStatusRejected:
		typ, title = NotificationBookingRejected, "Booking Rejected"
		msg = "Your booking request was rejected by the host."
	case domain.BookingStatusCancelled:
		typ, title = NotificationBookingCancelled, "Booking Cancelled"
		msg = "Your booking was cancelled."
	default:
		return nil
	}

	s.send(ctx, Notification{
		Type:           typ,
		RecipientID:    renter.ID,
		RecipientEmail: renter.Email,
		Title:          title,
		Message:        msg,
		CreatedAt:      time.Now(),
	})
	return nil
}

// NotifyPaymentReminder sends the renter a payment reminder for an
// approved but unpaid booking.
func (s *NotificationService) NotifyPaymentReminder(ctx context.Context, renter *domain.User, booking *domain.Booking) error {
	s.send(ctx, Notification{
		Type:           NotificationPaymentReminder,
		RecipientID:    renter.ID,
		RecipientEmail: renter.Email,
		Title:          "Payment Reminder",
		Message: fmt.Sprintf("Payment of %.2f is pending for your booking starting %s",
			booking.TotalPrice, booking.StartDate.Format("2006-01-02")),
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *NotificationService) send(ctx context.Context, n Notification) {
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q", n.Type, n.RecipientID, n.Title, n.Message)
}
