package services

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
)

// ReportingService defines operations for the admin dashboard
type ReportingService interface {
	// DashboardStats returns platform counters and the last twelve months of revenue.
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
