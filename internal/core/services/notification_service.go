package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

type notificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepositoryFacade
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade) portssvc.NotificationSvc {
	return &notificationService{notificationRepo: notificationRepo}
}

var _ portssvc.NotificationSvc = (*notificationService)(nil)

func (s *notificationService) Notify(ctx context.Context, notifications ...domain.Notification) {
	if len(notifications) == 0 {
		return
	}
	now := s.Now()
	for i := range notifications {
		if notifications[i].NotificationID == "" {
			notifications[i].NotificationID = uuid.NewString()
		}
		if notifications[i].CreatedAt.IsZero() {
			notifications[i].CreatedAt = now
		}
		if notifications[i].Type == "" {
			notifications[i].Type = domain.NotifyGeneral
		}
	}
	if err := s.notificationRepo.SaveNotifications(ctx, notifications); err != nil {
		s.LogError(ctx, err, "Failed to store notifications", slog.Int("count", len(notifications)))
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, callerID string, callerRole domain.Role, req dto.CreateNotificationRequest) (*domain.Notification, error) {
	target := req.UserID
	if target == "" {
		target = callerID
	}
	if target != callerID && callerRole != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins can notify other users", apperrors.ErrForbidden)
	}
	notifType := domain.NotificationType(req.Type)
	if notifType == "" {
		notifType = domain.NotifyGeneral
	}

	n := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         target,
		Type:           notifType,
		Title:          req.Title,
		Message:        req.Message,
		Link:           req.Link,
		CreatedAt:      s.Now(),
	}
	if err := s.notificationRepo.SaveNotifications(ctx, []domain.Notification{n}); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

func (s *notificationService) ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) ([]domain.Notification, int64, string, error) {
	cursor, err := pagination.DecodeToken(params.NextToken)
	if err != nil {
		return nil, 0, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	limit := pagination.NormalizeLimit(params.Limit)

	items, err := s.notificationRepo.FindNotificationsByUser(ctx, userID, params.UnreadOnly, limit+1, cursor)
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to list notifications: %w", err)
	}
	nextToken := ""
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		nextToken = pagination.EncodeToken(last.CreatedAt, last.NotificationID)
	}

	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return items, unread, nextToken, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID string, req dto.MarkNotificationsReadRequest) (int64, error) {
	if req.All {
		n, err := s.notificationRepo.MarkAllRead(ctx, userID)
		if err != nil {
			return 0, fmt.Errorf("failed to mark notifications read: %w", err)
		}
		return n, nil
	}
	if len(req.IDs) == 0 {
		return 0, fmt.Errorf("%w: provide ids or set all", apperrors.ErrValidation)
	}
	n, err := s.notificationRepo.MarkRead(ctx, userID, req.IDs)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}
