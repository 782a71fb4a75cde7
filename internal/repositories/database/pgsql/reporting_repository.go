package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db DB) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetDashboardCounts reads every counter in a single round trip.
func (r *reportingRepository) GetDashboardCounts(ctx context.Context) (*domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL),
			(SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND role = 'GUIDE'),
			(SELECT COUNT(*) FROM guide_posts WHERE is_active),
			(SELECT COUNT(*) FROM bookings WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'CONFIRMED'),
			(SELECT COUNT(*) FROM bookings WHERE status = 'CANCELLED'),
			(SELECT COUNT(*) FROM guide_applications WHERE status = 'PENDING'),
			(SELECT COUNT(*) FROM withdrawals WHERE status = 'PENDING'),
			(SELECT COALESCE(SUM(total_amount), 0) FROM bookings WHERE status = 'CONFIRMED'),
			(SELECT COALESCE(SUM(amount), 0) FROM guide_transactions WHERE type IN ('BOOKING_INCOME', 'BOOKING_REVERSAL')),
			(SELECT COALESCE(SUM(amount), 0) FROM withdrawals WHERE status = 'APPROVED')
	`
	var s domain.DashboardStats
	err := r.Pool.QueryRow(ctx, query).Scan(
		&s.TotalUsers,
		&s.TotalGuides,
		&s.ActiveGuidePosts,
		&s.PendingBookings,
		&s.ConfirmedBookings,
		&s.CancelledBookings,
		&s.PendingApplications,
		&s.PendingWithdrawals,
		&s.GrossRevenue,
		&s.GuideEarnings,
		&s.PaidOut,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying dashboard counts: %w", err)
	}
	s.PlatformRevenue = s.GrossRevenue.Sub(s.GuideEarnings)
	return &s, nil
}

// GetMonthlyRevenue groups confirmed bookings by the UTC month they were confirmed in.
func (r *reportingRepository) GetMonthlyRevenue(ctx context.Context, from time.Time) ([]domain.RevenuePoint, error) {
	query := `
		SELECT date_trunc('month', confirmed_at AT TIME ZONE 'UTC') AS month,
			COUNT(*) AS bookings,
			COALESCE(SUM(total_amount), 0) AS revenue
		FROM bookings
		WHERE status = 'CONFIRMED' AND confirmed_at >= $1
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly revenue: %w", err)
	}
	defer rows.Close()

	points := []domain.RevenuePoint{}
	for rows.Next() {
		var p domain.RevenuePoint
		if err := rows.Scan(&p.Month, &p.Bookings, &p.Revenue); err != nil {
			return nil, fmt.Errorf("error scanning monthly revenue row: %w", err)
		}
		p.Month = p.Month.UTC()
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly revenue rows: %w", err)
	}
	return points, nil
}
