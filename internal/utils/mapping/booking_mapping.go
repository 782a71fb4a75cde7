package mapping

import (
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/models"
)

// ToModelBooking converts a domain Booking to a model Booking
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:        d.BookingID,
		GuidePostID:      d.GuidePostID,
		UserID:           d.UserID,
		Date:             domain.TruncateToDay(d.Date),
		AdultCount:       d.AdultCount,
		TotalAmount:      d.TotalAmount,
		Status:           string(d.Status),
		PaymentOrderID:   nullString(d.PaymentOrderID),
		PaymentCaptureID: nullString(d.PaymentCaptureID),
		CreatedAt:        d.CreatedAt,
		GuidePostTitle:   d.GuidePostTitle,
		GuideID:          d.GuideID,
	}
}

// ToDomainBooking converts a model Booking to a domain Booking
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:        m.BookingID,
		GuidePostID:      m.GuidePostID,
		UserID:           m.UserID,
		Date:             domain.TruncateToDay(m.Date),
		AdultCount:       m.AdultCount,
		TotalAmount:      m.TotalAmount,
		Status:           domain.BookingStatus(m.Status),
		PaymentOrderID:   stringPtr(m.PaymentOrderID),
		PaymentCaptureID: stringPtr(m.PaymentCaptureID),
		CreatedAt:        m.CreatedAt.UTC(),
		ConfirmedAt:      timePtr(m.ConfirmedAt),
		CancelledAt:      timePtr(m.CancelledAt),
		GuidePostTitle:   m.GuidePostTitle,
		GuideID:          m.GuideID,
	}
}
