package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

type reviewService struct {
	BaseService
	reviewRepo  portsrepo.ReviewRepositoryFacade
	bookingRepo portsrepo.BookingReader
	notifier    portssvc.NotificationSvc
}

// NewReviewService creates a new review service. notifier may be nil.
func NewReviewService(reviewRepo portsrepo.ReviewRepositoryFacade, bookingRepo portsrepo.BookingReader, notifier portssvc.NotificationSvc) portssvc.ReviewSvc {
	return &reviewService{reviewRepo: reviewRepo, bookingRepo: bookingRepo, notifier: notifier}
}

var _ portssvc.ReviewSvc = (*reviewService)(nil)

func (s *reviewService) CreateReview(ctx context.Context, userID, guidePostID string, req dto.CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", apperrors.ErrValidation)
	}

	booking, err := s.bookingRepo.FindBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: not the owner of this booking", apperrors.ErrForbidden)
	}
	if booking.GuidePostID != guidePostID {
		return nil, fmt.Errorf("%w: booking does not belong to this guide post", apperrors.ErrValidation)
	}
	if booking.Status != domain.BookingConfirmed {
		return nil, fmt.Errorf("%w: only confirmed bookings can be reviewed", apperrors.ErrValidation)
	}
	if !booking.Date.Before(s.Today()) {
		return nil, fmt.Errorf("%w: tours can be reviewed after they took place", apperrors.ErrValidation)
	}

	review := domain.Review{
		ReviewID:    uuid.NewString(),
		GuidePostID: guidePostID,
		UserID:      userID,
		BookingID:   booking.BookingID,
		Rating:      req.Rating,
		Comment:     strings.TrimSpace(req.Comment),
		CreatedAt:   s.Now(),
	}
	if err := s.reviewRepo.SaveReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	if s.notifier != nil && booking.GuideID != "" {
		s.notifier.Notify(ctx, domain.Notification{
			UserID:  booking.GuideID,
			Type:    domain.NotifyNewReview,
			Title:   "New review",
			Message: fmt.Sprintf("%s received a %d star review.", booking.GuidePostTitle, req.Rating),
			Link:    "/guide-posts/" + guidePostID,
		})
	}
	return &review, nil
}

func (s *reviewService) ListReviews(ctx context.Context, guidePostID string, limit, offset int) ([]domain.Review, error) {
	reviews, err := s.reviewRepo.FindReviewsByPost(ctx, guidePostID, pagination.NormalizeLimit(limit), max(offset, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}
