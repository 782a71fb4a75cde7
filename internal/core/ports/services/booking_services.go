package services

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/dto"
)

// CaptureOutcome is the result of ConfirmBooking.
type CaptureOutcome struct {
	// Confirmed is false when the provider did not complete the payment.
	Confirmed bool
	// AlreadyConfirmed is true when the booking was confirmed before this call.
	AlreadyConfirmed bool
	ProviderStatus   string
	Booking          *domain.Booking
	RedirectURL      string
}

// BookingReaderSvc defines read operations for bookings
type BookingReaderSvc interface {
	GetBooking(ctx context.Context, userID string, role domain.Role, bookingID string) (*domain.Booking, error)

	// BookingHistory returns the caller's bookings newest first and the token of the next page.
	BookingHistory(ctx context.Context, userID string, params dto.BookingHistoryParams) ([]domain.Booking, string, error)
}

// BookingWriterSvc defines booking lifecycle operations
type BookingWriterSvc interface {
	CreateBooking(ctx context.Context, userID string, req dto.CreateBookingRequest) (*domain.Booking, error)

	// ConfirmBooking captures the payment order and, on success, confirms the booking atomically.
	ConfirmBooking(ctx context.Context, userID string, req dto.CapturePaymentRequest) (*CaptureOutcome, error)

	// CancelBooking cancels a booking. Owners may cancel PENDING bookings; admins may also cancel CONFIRMED ones.
	CancelBooking(ctx context.Context, userID string, role domain.Role, bookingID string, reason string) (*domain.Booking, error)
}

// BookingSvcFacade combines all booking service interfaces
type BookingSvcFacade interface {
	BookingReaderSvc
	BookingWriterSvc
}
