package repositories

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/utils/pagination"
)

// NotificationRepositoryFacade stores user notifications.
type NotificationRepositoryFacade interface {
	SaveNotifications(ctx context.Context, notifications []domain.Notification) error
	FindNotificationsByUser(ctx context.Context, userID string, unreadOnly bool, limit int, cursor *pagination.Cursor) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)

	// MarkRead marks the given notifications of userID as read and returns how many changed.
	MarkRead(ctx context.Context, userID string, notificationIDs []string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
