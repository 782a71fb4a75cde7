package services

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/dto"
)

// GuidePostReaderSvc defines public read operations on listings
type GuidePostReaderSvc interface {
	GetGuidePost(ctx context.Context, guidePostID string) (*domain.GuidePost, error)
	ListGuidePosts(ctx context.Context, params dto.ListGuidePostsParams) ([]domain.GuidePost, error)
	ListGuidePostsByGuide(ctx context.Context, guideID string) ([]domain.GuidePost, error)
}

// GuidePostWriterSvc defines guide-only write operations on listings
type GuidePostWriterSvc interface {
	CreateGuidePost(ctx context.Context, guideID string, req dto.CreateGuidePostRequest) (*domain.GuidePost, error)
	UpdateGuidePost(ctx context.Context, guideID, guidePostID string, req dto.UpdateGuidePostRequest) (*domain.GuidePost, error)
}

// LikeSvc maintains likes on listings
type LikeSvc interface {
	Like(ctx context.Context, userID, guidePostID string) (*dto.LikeResponse, error)
	Unlike(ctx context.Context, userID, guidePostID string) (*dto.LikeResponse, error)
}

// GuidePostSvcFacade combines all guide post service interfaces
type GuidePostSvcFacade interface {
	GuidePostReaderSvc
	GuidePostWriterSvc
	LikeSvc
}
