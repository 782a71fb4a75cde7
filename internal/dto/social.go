package dto

import (
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
)

// CreateReviewRequest rates a past confirmed booking.
type CreateReviewRequest struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}

type ReviewResponse struct {
	ReviewID    string    `json:"reviewId"`
	GuidePostID string    `json:"guidePostId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName,omitempty"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToReviewListResponse(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = ReviewResponse{
			ReviewID:    r.ReviewID,
			GuidePostID: r.GuidePostID,
			UserID:      r.UserID,
			UserName:    r.UserName,
			Rating:      r.Rating,
			Comment:     r.Comment,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}

// CreateNotificationRequest creates a notification. UserID defaults to the caller.
type CreateNotificationRequest struct {
	UserID  string `json:"userId"`
	Type    string `json:"type" binding:"omitempty,max=50"`
	Title   string `json:"title" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=2000"`
	Link    string `json:"link" binding:"omitempty,max=500"`
}

// MarkNotificationsReadRequest marks either the listed notifications or all of them.
type MarkNotificationsReadRequest struct {
	IDs []string `json:"ids" binding:"omitempty,max=200"`
	All bool     `json:"all"`
}

// ListNotificationsParams pages the caller's notifications.
type ListNotificationsParams struct {
	UnreadOnly bool   `form:"unreadOnly"`
	Limit      int    `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken  string `form:"nextToken"`
}

type NotificationResponse struct {
	NotificationID string    `json:"notificationId"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Link           string    `json:"link,omitempty"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

func ToNotificationResponse(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		NotificationID: n.NotificationID,
		Type:           string(n.Type),
		Title:          n.Title,
		Message:        n.Message,
		Link:           n.Link,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// NotificationListResponse is one page of notifications with the unread total.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
	NextToken     string                 `json:"nextToken,omitempty"`
}

func ToNotificationListResponse(ns []domain.Notification, unread int64, nextToken string) NotificationListResponse {
	out := make([]NotificationResponse, len(ns))
	for i := range ns {
		out[i] = ToNotificationResponse(&ns[i])
	}
	return NotificationListResponse{Notifications: out, UnreadCount: unread, NextToken: nextToken}
}
