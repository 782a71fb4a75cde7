package repositories

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
)

// GuidePostReader defines read operations for guide posts
type GuidePostReader interface {
	FindGuidePostByID(ctx context.Context, guidePostID string) (*domain.GuidePost, error)
	FindGuidePosts(ctx context.Context, filter domain.GuidePostFilter) ([]domain.GuidePost, error)
}

// GuidePostWriter defines write operations for guide posts
type GuidePostWriter interface {
	SaveGuidePost(ctx context.Context, post domain.GuidePost) error
	UpdateGuidePost(ctx context.Context, post domain.GuidePost) error
}

// LikeManager maintains likes and the cached like count of a post.
type LikeManager interface {
	// AddLike records a like and returns the new like count. Liking twice is a no-op.
	AddLike(ctx context.Context, guidePostID, userID string) (int, error)
	// RemoveLike deletes a like and returns the new like count. Unliking twice is a no-op.
	RemoveLike(ctx context.Context, guidePostID, userID string) (int, error)
	HasLiked(ctx context.Context, guidePostID, userID string) (bool, error)
}

// GuidePostRepositoryFacade combines all guide post repository interfaces
type GuidePostRepositoryFacade interface {
	GuidePostReader
	GuidePostWriter
	LikeManager
}
