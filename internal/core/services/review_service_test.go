package services_test

import (
	"context"
	"testing"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pastConfirmedBooking() *domain.Booking {
	return &domain.Booking{
		BookingID:      "b1",
		GuidePostID:    "post-1",
		GuideID:        "guide-1",
		GuidePostTitle: "Harbour tour",
		UserID:         "u1",
		Date:           day(-3),
		Status:         domain.BookingConfirmed,
	}
}

func TestCreateReview_Success(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingRepository)
	notifier := &fakeNotifier{}
	svc := services.NewReviewService(reviews, bookings, notifier)

	bookings.On("FindBookingByID", ctx, "b1").Return(pastConfirmedBooking(), nil).Once()
	reviews.On("SaveReview", ctx, mock.MatchedBy(func(r domain.Review) bool {
		return r.BookingID == "b1" && r.Rating == 5 && r.Comment == "Great"
	})).Return(nil).Once()

	review, err := svc.CreateReview(ctx, "u1", "post-1", dto.CreateReviewRequest{BookingID: "b1", Rating: 5, Comment: " Great "})

	require.NoError(t, err)
	assert.NotEmpty(t, review.ReviewID)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "guide-1", notifier.sent[0].UserID)
}

func TestCreateReview_Rules(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		userID  string
		postID  string
		mutate  func(b *domain.Booking)
		wantErr error
	}{
		{"not the traveller", "u2", "post-1", func(*domain.Booking) {}, apperrors.ErrForbidden},
		{"other post", "u1", "post-2", func(*domain.Booking) {}, apperrors.ErrValidation},
		{"pending booking", "u1", "post-1", func(b *domain.Booking) { b.Status = domain.BookingPending }, apperrors.ErrValidation},
		{"future tour", "u1", "post-1", func(b *domain.Booking) { b.Date = day(2) }, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reviews := new(MockReviewRepository)
			bookings := new(MockBookingRepository)
			svc := services.NewReviewService(reviews, bookings, nil)
			b := pastConfirmedBooking()
			tt.mutate(b)
			bookings.On("FindBookingByID", ctx, "b1").Return(b, nil).Once()

			_, err := svc.CreateReview(ctx, tt.userID, tt.postID, dto.CreateReviewRequest{BookingID: "b1", Rating: 4})

			assert.ErrorIs(t, err, tt.wantErr)
			reviews.AssertNotCalled(t, "SaveReview", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateReview_OnePerBooking(t *testing.T) {
	ctx := context.Background()
	reviews := new(MockReviewRepository)
	bookings := new(MockBookingRepository)
	svc := services.NewReviewService(reviews, bookings, nil)
	bookings.On("FindBookingByID", ctx, "b1").Return(pastConfirmedBooking(), nil).Once()
	reviews.On("SaveReview", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	_, err := svc.CreateReview(ctx, "u1", "post-1", dto.CreateReviewRequest{BookingID: "b1", Rating: 4})

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}
