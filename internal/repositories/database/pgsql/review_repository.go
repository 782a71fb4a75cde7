package pgsql

import (
	"context"
	"fmt"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
)

const constraintReviewBooking = "reviews_booking_id_key"

type PgxReviewRepository struct {
	BaseRepository
}

func newPgxReviewRepository(db DB) portsrepo.ReviewRepositoryFacade {
	return &PgxReviewRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ReviewRepositoryFacade = (*PgxReviewRepository)(nil)

func (r *PgxReviewRepository) SaveReview(ctx context.Context, review domain.Review) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO reviews (review_id, guide_post_id, user_id, booking_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, review.ReviewID, review.GuidePostID, review.UserID, review.BookingID, review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, constraintReviewBooking) {
			return fmt.Errorf("%w: booking %s was already reviewed", apperrors.ErrDuplicate, review.BookingID)
		}
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

func (r *PgxReviewRepository) FindReviewsByPost(ctx context.Context, guidePostID string, limit, offset int) ([]domain.Review, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT rv.review_id, rv.guide_post_id, rv.user_id, rv.booking_id, rv.rating, rv.comment, rv.created_at,
			COALESCE(u.name, '')
		FROM reviews rv
		LEFT JOIN users u ON u.user_id = rv.user_id
		WHERE rv.guide_post_id = $1
		ORDER BY rv.created_at DESC
		LIMIT $2 OFFSET $3;
	`, guidePostID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ReviewID, &rv.GuidePostID, &rv.UserID, &rv.BookingID, &rv.Rating, &rv.Comment,
			&rv.CreatedAt, &rv.UserName); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}
	return reviews, nil
}
