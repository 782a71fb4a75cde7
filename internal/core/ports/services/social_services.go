package services

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/dto"
)

// ReviewSvc handles reviews of listings.
type ReviewSvc interface {
	CreateReview(ctx context.Context, userID, guidePostID string, req dto.CreateReviewRequest) (*domain.Review, error)
	ListReviews(ctx context.Context, guidePostID string, limit, offset int) ([]domain.Review, error)
}

// NotificationSvc handles in-app notifications.
type NotificationSvc interface {
	// Notify stores notifications produced by other services. Failures are logged, not returned.
	Notify(ctx context.Context, notifications ...domain.Notification)

	CreateNotification(ctx context.Context, callerID string, callerRole domain.Role, req dto.CreateNotificationRequest) (*domain.Notification, error)
	ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) ([]domain.Notification, int64, string, error)
	MarkRead(ctx context.Context, userID string, req dto.MarkNotificationsReadRequest) (int64, error)
}
