package repositories

import (
	"context"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
)

// ApplicationRepositoryFacade stores guide applications.
type ApplicationRepositoryFacade interface {
	// SaveApplication persists a new application. A second PENDING application of the
	// same user yields apperrors.ErrDuplicate.
	SaveApplication(ctx context.Context, app domain.GuideApplication) error
	FindApplicationByID(ctx context.Context, applicationID string) (*domain.GuideApplication, error)
	FindApplicationsByUser(ctx context.Context, userID string) ([]domain.GuideApplication, error)
	FindApplications(ctx context.Context, status *domain.ApplicationStatus, limit, offset int) ([]domain.GuideApplication, error)

	// ReviewApplication sets the status in one transaction. Approval also promotes the owner
	// to GUIDE and opens their finance row; rejection never demotes. changed is false when
	// the application already had status and nothing was written.
	ReviewApplication(ctx context.Context, applicationID string, status domain.ApplicationStatus, reviewerID string, reviewedAt time.Time) (app *domain.GuideApplication, changed bool, err error)
}
