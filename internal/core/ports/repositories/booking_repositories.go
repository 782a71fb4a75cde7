package repositories

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/utils/pagination"
)

// BookingReader defines read operations for bookings
type BookingReader interface {
	FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error)

	// FindBookingsByUser lists a user's bookings newest first, starting after cursor.
	FindBookingsByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]domain.Booking, error)
}

// BookingWriter defines write operations for bookings
type BookingWriter interface {
	SaveBooking(ctx context.Context, booking domain.Booking) error

	// ConfirmBooking atomically flips a PENDING booking to CONFIRMED, takes its availability
	// slot and credits the guide. A booking that is already CONFIRMED is returned unchanged.
	// A slot held by another booking yields apperrors.ErrConflict; a cancelled booking
	// yields apperrors.ErrValidation.
	ConfirmBooking(ctx context.Context, confirmation domain.BookingConfirmation) (*domain.Booking, error)

	// CancelBooking atomically cancels a booking. A CONFIRMED booking releases its slot and
	// has its guide credit reversed; this is only allowed when allowConfirmed is true.
	CancelBooking(ctx context.Context, cancellation domain.BookingCancellation, allowConfirmed bool) (*domain.Booking, error)
}

// BookingRepositoryFacade combines all booking repository interfaces
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}
