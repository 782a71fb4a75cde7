package repositories

import (
	"context"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving admin dashboard data
type ReportingRepository interface {
	// GetDashboardCounts fills every counter and total of the dashboard except MonthlyRevenue.
	GetDashboardCounts(ctx context.Context) (*domain.DashboardStats, error)

	// GetMonthlyRevenue returns confirmed booking revenue per month for bookings confirmed since from.
	GetMonthlyRevenue(ctx context.Context, from time.Time) ([]domain.RevenuePoint, error)
}
