package services

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/dto"
)

// ApplicationSvc handles guide applications.
type ApplicationSvc interface {
	SubmitApplication(ctx context.Context, userID string, req dto.CreateGuideApplicationRequest) (*domain.GuideApplication, error)
	ListMyApplications(ctx context.Context, userID string) ([]domain.GuideApplication, error)
	ListApplications(ctx context.Context, params dto.ListApplicationsParams) ([]domain.GuideApplication, error)
	ReviewApplication(ctx context.Context, adminID, applicationID string, req dto.ReviewApplicationRequest) (*domain.GuideApplication, error)
}
