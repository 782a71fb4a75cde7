package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// DateLayout is the wire and storage format of calendar days.
const DateLayout = "2006-01-02"

// Booking is a user's reservation of a guide post for one calendar day.
type Booking struct {
	BookingID        string          `json:"bookingID"`
	GuidePostID      string          `json:"guidePostID"`
	UserID           string          `json:"userID"`
	Date             time.Time       `json:"date"`
	AdultCount       int             `json:"adultCount"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Status           BookingStatus   `json:"status"`
	PaymentOrderID   *string         `json:"paymentOrderID,omitempty"`
	PaymentCaptureID *string         `json:"paymentCaptureID,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	ConfirmedAt      *time.Time      `json:"confirmedAt,omitempty"`
	CancelledAt      *time.Time      `json:"cancelledAt,omitempty"`

	// Read-side enrichment for history views.
	GuidePostTitle string `json:"guidePostTitle,omitempty"`
	GuideID        string `json:"guideID,omitempty"`
}

// CanTransitionTo reports whether the state machine allows moving to next.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCancelled
	default:
		return false
	}
}

// TruncateToDay drops the clock part and pins the value to UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// BookingConfirmation holds everything the repository needs to confirm a booking atomically.
type BookingConfirmation struct {
	BookingID      string
	OrderID        string
	CaptureID      string
	GuideCredit    decimal.Decimal
	CreditNote     string
	ConfirmedAt    time.Time
	ConfirmedByUID string
}

// BookingCancellation holds the inputs of an atomic cancellation.
type BookingCancellation struct {
	BookingID   string
	CancelledAt time.Time
	CancelledBy string
	Reason      string
}
