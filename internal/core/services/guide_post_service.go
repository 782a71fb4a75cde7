package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type guidePostService struct {
	BaseService
	postRepo portsrepo.GuidePostRepositoryFacade
}

// NewGuidePostService creates a new guide post service.
func NewGuidePostService(postRepo portsrepo.GuidePostRepositoryFacade) portssvc.GuidePostSvcFacade {
	return &guidePostService{postRepo: postRepo}
}

var _ portssvc.GuidePostSvcFacade = (*guidePostService)(nil)

func validatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: pricePerAdult must be greater than zero", apperrors.ErrValidation)
	}
	if !utils.HasValidMoneyPrecision(price) {
		return fmt.Errorf("%w: pricePerAdult has too many decimal places", apperrors.ErrValidation)
	}
	return nil
}

func (s *guidePostService) CreateGuidePost(ctx context.Context, guideID string, req dto.CreateGuidePostRequest) (*domain.GuidePost, error) {
	if err := validatePrice(req.PricePerAdult); err != nil {
		return nil, err
	}

	now := s.Now()
	post := domain.GuidePost{
		GuidePostID:   uuid.NewString(),
		GuideID:       guideID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Location:      strings.TrimSpace(req.Location),
		PricePerAdult: req.PricePerAdult,
		MaxAdults:     req.MaxAdults,
		ImageURLs:     req.ImageURLs,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     guideID,
			LastUpdatedAt: now,
			LastUpdatedBy: guideID,
		},
	}
	if err := s.postRepo.SaveGuidePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create guide post: %w", err)
	}
	s.GetLogger(ctx).Info("Guide post created", slog.String("guide_post_id", post.GuidePostID))
	return &post, nil
}

func (s *guidePostService) UpdateGuidePost(ctx context.Context, guideID, guidePostID string, req dto.UpdateGuidePostRequest) (*domain.GuidePost, error) {
	post, err := s.postRepo.FindGuidePostByID(ctx, guidePostID)
	if err != nil {
		return nil, fmt.Errorf("failed to load guide post: %w", err)
	}
	if post.GuideID != guideID {
		s.GetLogger(ctx).Warn("Guide tried to edit a post they do not own", slog.String("guide_post_id", guidePostID))
		return nil, fmt.Errorf("%w: not the owner of this guide post", apperrors.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.Location != nil {
		post.Location = strings.TrimSpace(*req.Location)
	}
	if req.PricePerAdult != nil {
		if err := validatePrice(*req.PricePerAdult); err != nil {
			return nil, err
		}
		post.PricePerAdult = *req.PricePerAdult
	}
	if req.MaxAdults != nil {
		post.MaxAdults = *req.MaxAdults
	}
	if req.ImageURLs != nil {
		post.ImageURLs = req.ImageURLs
	}
	if req.IsActive != nil {
		post.IsActive = *req.IsActive
	}
	post.LastUpdatedAt = s.Now()
	post.LastUpdatedBy = guideID

	if err := s.postRepo.UpdateGuidePost(ctx, *post); err != nil {
		return nil, fmt.Errorf("failed to update guide post: %w", err)
	}
	return post, nil
}

func (s *guidePostService) GetGuidePost(ctx context.Context, guidePostID string) (*domain.GuidePost, error) {
	post, err := s.postRepo.FindGuidePostByID(ctx, guidePostID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guide post: %w", err)
	}
	return post, nil
}

func (s *guidePostService) ListGuidePosts(ctx context.Context, params dto.ListGuidePostsParams) ([]domain.GuidePost, error) {
	active := true
	posts, err := s.postRepo.FindGuidePosts(ctx, domain.GuidePostFilter{
		Query:    strings.TrimSpace(params.Q),
		Location: strings.TrimSpace(params.Location),
		Active:   &active,
		Limit:    pagination.NormalizeLimit(params.Limit),
		Offset:   max(params.Offset, 0),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list guide posts: %w", err)
	}
	return posts, nil
}

func (s *guidePostService) ListGuidePostsByGuide(ctx context.Context, guideID string) ([]domain.GuidePost, error) {
	posts, err := s.postRepo.FindGuidePosts(ctx, domain.GuidePostFilter{GuideID: guideID, Limit: pagination.MaxLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list guide posts of guide: %w", err)
	}
	return posts, nil
}

func (s *guidePostService) loadActivePost(ctx context.Context, guidePostID string) (*domain.GuidePost, error) {
	post, err := s.postRepo.FindGuidePostByID(ctx, guidePostID)
	if err != nil {
		return nil, err
	}
	if !post.IsActive {
		return nil, fmt.Errorf("%w: guide post is not active", apperrors.ErrNotFound)
	}
	return post, nil
}

func (s *guidePostService) Like(ctx context.Context, userID, guidePostID string) (*dto.LikeResponse, error) {
	if _, err := s.loadActivePost(ctx, guidePostID); err != nil {
		return nil, fmt.Errorf("failed to like guide post: %w", err)
	}
	count, err := s.postRepo.AddLike(ctx, guidePostID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to like guide post: %w", err)
	}
	return &dto.LikeResponse{Liked: true, LikeCount: count}, nil
}

func (s *guidePostService) Unlike(ctx context.Context, userID, guidePostID string) (*dto.LikeResponse, error) {
	count, err := s.postRepo.RemoveLike(ctx, guidePostID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to unlike guide post: %w", err)
	}
	return &dto.LikeResponse{Liked: false, LikeCount: count}, nil
}
