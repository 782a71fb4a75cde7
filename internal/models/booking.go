package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Booking is a row of the bookings table, joined with the title and guide of its post.
type Booking struct {
	BookingID        string          `db:"booking_id"`
	GuidePostID      string          `db:"guide_post_id"`
	UserID           string          `db:"user_id"`
	Date             time.Time       `db:"booking_date"`
	AdultCount       int             `db:"adult_count"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	Status           string          `db:"status"`
	PaymentOrderID   sql.NullString  `db:"payment_order_id"`
	PaymentCaptureID sql.NullString  `db:"payment_capture_id"`
	CreatedAt        time.Time       `db:"created_at"`
	ConfirmedAt      sql.NullTime    `db:"confirmed_at"`
	CancelledAt      sql.NullTime    `db:"cancelled_at"`
	GuidePostTitle   string          `db:"title"`
	GuideID          string          `db:"guide_id"`
}
