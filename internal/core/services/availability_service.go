package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
)

// maxAvailabilityWindow bounds how many days one lookup may span.
const maxAvailabilityWindow = 366 * 24 * time.Hour

// defaultAvailabilityDays is how many days, from included, a lookup without an end date covers.
const defaultAvailabilityDays = 90

type availabilityService struct {
	BaseService
	availabilityRepo portsrepo.AvailabilityRepositoryFacade
	postRepo         portsrepo.GuidePostReader
}

// NewAvailabilityService creates a new availability service.
func NewAvailabilityService(availabilityRepo portsrepo.AvailabilityRepositoryFacade, postRepo portsrepo.GuidePostReader) portssvc.AvailabilitySvc {
	return &availabilityService{availabilityRepo: availabilityRepo, postRepo: postRepo}
}

var _ portssvc.AvailabilitySvc = (*availabilityService)(nil)

func (s *availabilityService) GetAvailability(ctx context.Context, guidePostID string, from, to time.Time) ([]domain.Availability, error) {
	if from.IsZero() {
		from = s.Today()
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, defaultAvailabilityDays-1)
	}
	from, to = domain.TruncateToDay(from), domain.TruncateToDay(to)
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
	}
	if to.Sub(from) > maxAvailabilityWindow {
		return nil, fmt.Errorf("%w: date range is too large", apperrors.ErrValidation)
	}
	if _, err := s.postRepo.FindGuidePostByID(ctx, guidePostID); err != nil {
		return nil, fmt.Errorf("failed to load guide post: %w", err)
	}

	rows, err := s.availabilityRepo.FindAvailability(ctx, guidePostID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability: %w", err)
	}
	return rows, nil
}

func (s *availabilityService) IsDateAvailable(ctx context.Context, guidePostID string, date time.Time) (bool, error) {
	row, err := s.availabilityRepo.FindAvailabilityForDate(ctx, guidePostID, domain.TruncateToDay(date))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return row.IsAvailable, nil
}

func (s *availabilityService) SetAvailability(ctx context.Context, guideID, guidePostID string, dates []time.Time, isAvailable bool) error {
	logger := s.GetLogger(ctx)
	if len(dates) == 0 {
		return fmt.Errorf("%w: at least one date is required", apperrors.ErrValidation)
	}

	post, err := s.postRepo.FindGuidePostByID(ctx, guidePostID)
	if err != nil {
		return fmt.Errorf("failed to load guide post: %w", err)
	}
	if post.GuideID != guideID {
		logger.Warn("Guide tried to edit availability of a post they do not own", slog.String("guide_post_id", guidePostID))
		return fmt.Errorf("%w: not the owner of this guide post", apperrors.ErrForbidden)
	}

	today := s.Today()
	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := domain.TruncateToDay(d)
		if day.Before(today) {
			return fmt.Errorf("%w: %s is in the past", apperrors.ErrValidation, day.Format(domain.DateLayout))
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}

	if err := s.availabilityRepo.SetAvailability(ctx, guidePostID, days, isAvailable); err != nil {
		return fmt.Errorf("failed to set availability: %w", err)
	}
	logger.Info("Availability updated", slog.String("guide_post_id", guidePostID), slog.Int("days", len(days)), slog.Bool("is_available", isAvailable))
	return nil
}
