package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/ports/gateways"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

// ApplicationReviewedEvent is published when an admin decides on an application.
type ApplicationReviewedEvent struct {
	ApplicationID string    `json:"applicationId"`
	UserID        string    `json:"userId"`
	Status        string    `json:"status"`
	ReviewedBy    string    `json:"reviewedBy"`
	ReviewedAt    time.Time `json:"reviewedAt"`
}

type applicationService struct {
	BaseService
	appRepo   portsrepo.ApplicationRepositoryFacade
	notifier  portssvc.NotificationSvc
	publisher gateways.EventPublisher
}

// NewApplicationService creates a new guide application service. notifier and publisher may be nil.
func NewApplicationService(appRepo portsrepo.ApplicationRepositoryFacade, notifier portssvc.NotificationSvc, publisher gateways.EventPublisher) portssvc.ApplicationSvc {
	return &applicationService{appRepo: appRepo, notifier: notifier, publisher: publisher}
}

var _ portssvc.ApplicationSvc = (*applicationService)(nil)

func (s *applicationService) SubmitApplication(ctx context.Context, userID string, req dto.CreateGuideApplicationRequest) (*domain.GuideApplication, error) {
	langs := make([]string, 0, len(req.Languages))
	for _, l := range req.Languages {
		if l = strings.TrimSpace(l); l != "" {
			langs = append(langs, l)
		}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("%w: at least one language is required", apperrors.ErrValidation)
	}

	app := domain.GuideApplication{
		ApplicationID:   uuid.NewString(),
		UserID:          userID,
		FullName:        strings.TrimSpace(req.FullName),
		Phone:           strings.TrimSpace(req.Phone),
		Bio:             req.Bio,
		Languages:       langs,
		ExperienceYears: req.ExperienceYears,
		IDDocumentURL:   req.IDDocumentURL,
		Status:          domain.ApplicationPending,
		CreatedAt:       s.Now(),
	}
	if err := s.appRepo.SaveApplication(ctx, app); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: you already have a pending application", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to submit application: %w", err)
	}
	s.GetLogger(ctx).Info("Guide application submitted", slog.String("application_id", app.ApplicationID))
	s.publish(ctx, gateways.EventGuideApplicationSent, ApplicationReviewedEvent{
		ApplicationID: app.ApplicationID,
		UserID:        userID,
		Status:        string(app.Status),
	})
	return &app, nil
}

func (s *applicationService) ListMyApplications(ctx context.Context, userID string) ([]domain.GuideApplication, error) {
	apps, err := s.appRepo.FindApplicationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *applicationService) ListApplications(ctx context.Context, params dto.ListApplicationsParams) ([]domain.GuideApplication, error) {
	var status *domain.ApplicationStatus
	if params.Status != "" {
		st := domain.ApplicationStatus(params.Status)
		status = &st
	}
	apps, err := s.appRepo.FindApplications(ctx, status, pagination.NormalizeLimit(params.Limit), max(params.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (s *applicationService) ReviewApplication(ctx context.Context, adminID, applicationID string, req dto.ReviewApplicationRequest) (*domain.GuideApplication, error) {
	status := domain.ApplicationStatus(req.Status)
	if status != domain.ApplicationApproved && status != domain.ApplicationRejected {
		return nil, fmt.Errorf("%w: status must be APPROVED or REJECTED", apperrors.ErrValidation)
	}

	now := s.Now()
	app, changed, err := s.appRepo.ReviewApplication(ctx, applicationID, status, adminID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to review application: %w", err)
	}
	logger := s.GetLogger(ctx).With(slog.String("application_id", applicationID), slog.String("status", string(status)))
	if !changed {
		logger.Info("Guide application already has this status")
		return app, nil
	}
	logger.Info("Guide application reviewed")

	if s.notifier != nil {
		msg := "Your guide application was rejected."
		if status == domain.ApplicationApproved {
			msg = "Your guide application was approved. Sign in again to open your guide dashboard."
		}
		s.notifier.Notify(ctx, domain.Notification{
			UserID:  app.UserID,
			Type:    domain.NotifyApplicationReviewed,
			Title:   "Guide application " + strings.ToLower(string(status)),
			Message: msg,
		})
	}
	s.publish(ctx, gateways.EventApplicationReviewed, ApplicationReviewedEvent{
		ApplicationID: app.ApplicationID,
		UserID:        app.UserID,
		Status:        string(app.Status),
		ReviewedBy:    adminID,
		ReviewedAt:    now,
	})
	return app, nil
}

func (s *applicationService) publish(ctx context.Context, key string, event ApplicationReviewedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.LogError(ctx, err, "Failed to publish application event", slog.String("routing_key", key))
	}
}
