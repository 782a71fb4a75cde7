package repositories

import (
	"context"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
)

// AvailabilityRepositoryFacade stores per-date availability of guide posts.
type AvailabilityRepositoryFacade interface {
	// FindAvailability returns the stored rows of a post for days in [from, to].
	// Days without a row are bookable and are not returned.
	FindAvailability(ctx context.Context, guidePostID string, from, to time.Time) ([]domain.Availability, error)

	// FindAvailabilityForDate returns apperrors.ErrNotFound when no row exists for the day.
	FindAvailabilityForDate(ctx context.Context, guidePostID string, date time.Time) (*domain.Availability, error)

	// SetAvailability sets the flag for every day in one transaction. Reopening a day
	// held by a booking yields apperrors.ErrConflict and changes nothing.
	SetAvailability(ctx context.Context, guidePostID string, dates []time.Time, isAvailable bool) error
}
