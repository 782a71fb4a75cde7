package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestIsDateAvailable(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAvailabilityRepository)
	svc := services.NewAvailabilityService(repo, new(MockGuidePostRepository))

	repo.On("FindAvailabilityForDate", ctx, "post-1", day(1)).Return(nil, apperrors.ErrNotFound).Once()
	repo.On("FindAvailabilityForDate", ctx, "post-1", day(2)).Return(&domain.Availability{IsAvailable: false}, nil).Once()

	ok, err := svc.IsDateAvailable(ctx, "post-1", day(1).Add(15*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok, "days without a row are bookable")

	ok, err = svc.IsDateAvailable(ctx, "post-1", day(2))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetAvailability(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAvailabilityRepository)
	posts := new(MockGuidePostRepository)
	svc := services.NewAvailabilityService(repo, posts)

	posts.On("FindGuidePostByID", ctx, "post-1").Return(&domain.GuidePost{GuidePostID: "post-1", GuideID: "guide-1"}, nil)

	repo.On("SetAvailability", ctx, "post-1", []time.Time{day(3), day(4)}, false).Return(nil).Once()
	err := svc.SetAvailability(ctx, "guide-1", "post-1", []time.Time{day(3), day(4), day(3)}, false)
	require.NoError(t, err)

	err = svc.SetAvailability(ctx, "guide-2", "post-1", []time.Time{day(3)}, false)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.SetAvailability(ctx, "guide-1", "post-1", []time.Time{day(-1)}, true)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	err = svc.SetAvailability(ctx, "guide-1", "post-1", nil, true)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	repo.AssertNumberOfCalls(t, "SetAvailability", 1)
}

func TestGetAvailability_RangeChecks(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAvailabilityRepository)
	posts := new(MockGuidePostRepository)
	svc := services.NewAvailabilityService(repo, posts)

	_, err := svc.GetAvailability(ctx, "post-1", day(5), day(1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.GetAvailability(ctx, "post-1", day(0), day(400))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	posts.On("FindGuidePostByID", ctx, "post-1").Return(&domain.GuidePost{GuidePostID: "post-1"}, nil).Once()
	repo.On("FindAvailability", ctx, "post-1", day(0), day(89)).Return([]domain.Availability{{Date: day(2)}}, nil).Once()

	rows, err := svc.GetAvailability(ctx, "post-1", time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	repo.AssertExpectations(t)
}
