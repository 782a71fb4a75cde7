package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats_FillsMissingMonths(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReportingRepository)
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := services.NewReportingService(repo, services.WithReportingClock(func() time.Time { return now }))

	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	repo.On("GetDashboardCounts", ctx).Return(&domain.DashboardStats{TotalUsers: 10, GrossRevenue: decimal.RequireFromString("300")}, nil).Once()
	repo.On("GetMonthlyRevenue", ctx, from).Return([]domain.RevenuePoint{
		{Month: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Bookings: 2, Revenue: decimal.RequireFromString("100")},
		{Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Bookings: 3, Revenue: decimal.RequireFromString("200")},
	}, nil).Once()

	stats, err := svc.DashboardStats(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(10), stats.TotalUsers)
	require.Len(t, stats.MonthlyRevenue, 12)
	assert.Equal(t, from, stats.MonthlyRevenue[0].Month)
	assert.True(t, stats.MonthlyRevenue[0].Revenue.IsZero())
	assert.Equal(t, int64(2), stats.MonthlyRevenue[9].Bookings)
	assert.Equal(t, "200", stats.MonthlyRevenue[11].Revenue.String())
}
