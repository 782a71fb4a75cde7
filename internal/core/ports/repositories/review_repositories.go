package repositories

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
)

// ReviewRepositoryFacade stores reviews of guide posts.
type ReviewRepositoryFacade interface {
	// SaveReview persists a review. A second review for the same booking yields apperrors.ErrDuplicate.
	SaveReview(ctx context.Context, review domain.Review) error
	FindReviewsByPost(ctx context.Context, guidePostID string, limit, offset int) ([]domain.Review, error)
}
