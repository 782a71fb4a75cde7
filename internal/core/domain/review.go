package domain

import "time"

// Review is a traveler's rating of a guide post, tied to one confirmed booking.
type Review struct {
	ReviewID    string    `json:"reviewID"`
	GuidePostID string    `json:"guidePostID"`
	UserID      string    `json:"userID"`
	BookingID   string    `json:"bookingID"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`

	UserName string `json:"userName,omitempty"`
}

// Like marks a guide post as liked by a user.
type Like struct {
	GuidePostID string    `json:"guidePostID"`
	UserID      string    `json:"userID"`
	CreatedAt   time.Time `json:"createdAt"`
}
