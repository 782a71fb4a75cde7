package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// revenueMonths is how many calendar months, including the current one, the revenue series covers.
const revenueMonths = 12

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the clock, for tests.
func WithReportingClock(clock func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.clock = clock
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{reportingRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// DashboardStats gathers the admin dashboard counters and a gap-free monthly revenue series.
func (s *reportingService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := s.reportingRepo.GetDashboardCounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve dashboard counts")
		return nil, fmt.Errorf("failed to retrieve dashboard counts: %w", err)
	}

	now := s.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(revenueMonths - 1), 0)
	points, err := s.reportingRepo.GetMonthlyRevenue(ctx, first)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve monthly revenue", slog.String("from", first.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve monthly revenue: %w", err)
	}

	byMonth := make(map[string]domain.RevenuePoint, len(points))
	for _, p := range points {
		byMonth[p.Month.Format("2006-01")] = p
	}
	series := make([]domain.RevenuePoint, 0, revenueMonths)
	for i := 0; i < revenueMonths; i++ {
		month := first.AddDate(0, i, 0)
		p, ok := byMonth[month.Format("2006-01")]
		if !ok {
			p = domain.RevenuePoint{Month: month, Revenue: decimal.Zero}
		}
		p.Month = month
		series = append(series, p)
	}
	stats.MonthlyRevenue = series

	s.GetLogger(ctx).Debug("Dashboard stats generated", slog.Int("months", len(series)))
	return stats, nil
}
