package dto

import (
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBookingRequest starts a checkout.
type CreateBookingRequest struct {
	GuidePostID string `json:"guidePostId" binding:"required"`
	Date        string `json:"date" binding:"required,ymd"`
	AdultCount  int    `json:"adultCount" binding:"required,min=1"`
}

// CapturePaymentRequest asks the server to capture a PayPal order for a booking.
type CapturePaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required,max=64"`
	BookingID string `json:"bookingId" binding:"required"`
}

// CapturePaymentResponse reports the outcome of a capture.
type CapturePaymentResponse struct {
	Status      string `json:"status"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	Message     string `json:"message,omitempty"`
}

// CancelBookingRequest carries an optional reason.
type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// BookingHistoryParams pages the caller's bookings.
type BookingHistoryParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken string `form:"nextToken"`
}

type BookingResponse struct {
	BookingID      string          `json:"bookingId"`
	GuidePostID    string          `json:"guidePostId"`
	GuidePostTitle string          `json:"guidePostTitle,omitempty"`
	UserID         string          `json:"userId"`
	Date           string          `json:"date"`
	AdultCount     int             `json:"adultCount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Status         string          `json:"status"`
	PaymentOrderID *string         `json:"paymentOrderId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	ConfirmedAt    *time.Time      `json:"confirmedAt,omitempty"`
	CancelledAt    *time.Time      `json:"cancelledAt,omitempty"`
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:      b.BookingID,
		GuidePostID:    b.GuidePostID,
		GuidePostTitle: b.GuidePostTitle,
		UserID:         b.UserID,
		Date:           b.Date.Format(domain.DateLayout),
		AdultCount:     b.AdultCount,
		TotalAmount:    b.TotalAmount,
		Status:         string(b.Status),
		PaymentOrderID: b.PaymentOrderID,
		CreatedAt:      b.CreatedAt,
		ConfirmedAt:    b.ConfirmedAt,
		CancelledAt:    b.CancelledAt,
	}
}

// BookingHistoryResponse is one page of the caller's bookings.
type BookingHistoryResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	NextToken string            `json:"nextToken,omitempty"`
}

func ToBookingHistoryResponse(bookings []domain.Booking, nextToken string) BookingHistoryResponse {
	out := make([]BookingResponse, len(bookings))
	for i := range bookings {
		out[i] = ToBookingResponse(&bookings[i])
	}
	return BookingHistoryResponse{Bookings: out, NextToken: nextToken}
}
