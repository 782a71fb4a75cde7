package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotify_FillsDefaultsAndSwallowsErrors(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	svc := services.NewNotificationService(repo)

	repo.On("SaveNotifications", ctx, mock.MatchedBy(func(ns []domain.Notification) bool {
		return len(ns) == 1 && ns[0].NotificationID != "" && !ns[0].CreatedAt.IsZero() && ns[0].Type == domain.NotifyGeneral
	})).Return(assert.AnError).Once()

	assert.NotPanics(t, func() {
		svc.Notify(ctx, domain.Notification{UserID: "u1", Title: "hi", Message: "there"})
	})
	repo.AssertExpectations(t)
}

func TestCreateNotification_Targeting(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	svc := services.NewNotificationService(repo)
	repo.On("SaveNotifications", ctx, mock.Anything).Return(nil)

	n, err := svc.CreateNotification(ctx, "u1", domain.RoleUser, dto.CreateNotificationRequest{Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, "u1", n.UserID)

	_, err = svc.CreateNotification(ctx, "u1", domain.RoleUser, dto.CreateNotificationRequest{UserID: "u2", Title: "t", Message: "m"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	n, err = svc.CreateNotification(ctx, "admin", domain.RoleAdmin, dto.CreateNotificationRequest{UserID: "u2", Title: "t", Message: "m"})
	require.NoError(t, err)
	assert.Equal(t, "u2", n.UserID)
}

func TestListNotifications_PagesAndCounts(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	svc := services.NewNotificationService(repo)
	now := time.Now().UTC()

	repo.On("FindNotificationsByUser", ctx, "u1", true, 2, mock.Anything).Return([]domain.Notification{
		{NotificationID: "n3", CreatedAt: now},
		{NotificationID: "n2", CreatedAt: now.Add(-time.Minute)},
	}, nil).Once()
	repo.On("CountUnread", ctx, "u1").Return(int64(7), nil).Once()

	items, unread, next, err := svc.ListNotifications(ctx, "u1", dto.ListNotificationsParams{UnreadOnly: true, Limit: 1})

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(7), unread)
	assert.NotEmpty(t, next)
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	repo := new(MockNotificationRepository)
	svc := services.NewNotificationService(repo)
	repo.On("MarkAllRead", ctx, "u1").Return(int64(4), nil).Once()
	repo.On("MarkRead", ctx, "u1", []string{"n1"}).Return(int64(1), nil).Once()

	n, err := svc.MarkRead(ctx, "u1", dto.MarkNotificationsReadRequest{All: true})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	n, err = svc.MarkRead(ctx, "u1", dto.MarkNotificationsReadRequest{IDs: []string{"n1"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = svc.MarkRead(ctx, "u1", dto.MarkNotificationsReadRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
