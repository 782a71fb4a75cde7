package domain

import "time"

// NotificationType groups notifications for the client.
type NotificationType string

const (
	NotifyBookingConfirmed    NotificationType = "BOOKING_CONFIRMED"
	NotifyBookingCancelled    NotificationType = "BOOKING_CANCELLED"
	NotifyNewBooking          NotificationType = "NEW_BOOKING"
	NotifyWithdrawalProcessed NotificationType = "WITHDRAWAL_PROCESSED"
	NotifyApplicationReviewed NotificationType = "APPLICATION_REVIEWED"
	NotifyNewReview           NotificationType = "NEW_REVIEW"
	NotifyGeneral             NotificationType = "GENERAL"
)

type Notification struct {
	NotificationID string           `json:"notificationID"`
	UserID         string           `json:"userID"`
	Type           NotificationType `json:"type"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Link           string           `json:"link,omitempty"`
	IsRead         bool             `json:"isRead"`
	CreatedAt      time.Time        `json:"createdAt"`
}
