package domain

import "time"

// Availability is the bookability flag of one guide post on one calendar day.
// Days without a row are bookable.
type Availability struct {
	GuidePostID string    `json:"guidePostID"`
	Date        time.Time `json:"date"`
	IsAvailable bool      `json:"isAvailable"`
	BookingID   *string   `json:"bookingID,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
