package services

import (
	"context"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
)

// AvailabilitySvc reads and edits per-day availability of listings.
type AvailabilitySvc interface {
	// GetAvailability returns stored rows of a post between from and to inclusive.
	GetAvailability(ctx context.Context, guidePostID string, from, to time.Time) ([]domain.Availability, error)

	// IsDateAvailable reports whether a day can still be booked.
	IsDateAvailable(ctx context.Context, guidePostID string, date time.Time) (bool, error)

	// SetAvailability opens or closes days of a post owned by guideID.
	SetAvailability(ctx context.Context, guideID, guidePostID string, dates []time.Time, isAvailable bool) error
}
