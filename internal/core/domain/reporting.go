package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalUsers          int64           `json:"totalUsers"`
	TotalGuides         int64           `json:"totalGuides"`
	ActiveGuidePosts    int64           `json:"activeGuidePosts"`
	PendingBookings     int64           `json:"pendingBookings"`
	ConfirmedBookings   int64           `json:"confirmedBookings"`
	CancelledBookings   int64           `json:"cancelledBookings"`
	PendingApplications int64           `json:"pendingApplications"`
	PendingWithdrawals  int64           `json:"pendingWithdrawals"`
	GrossRevenue        decimal.Decimal `json:"grossRevenue"`
	GuideEarnings       decimal.Decimal `json:"guideEarnings"`
	PlatformRevenue     decimal.Decimal `json:"platformRevenue"`
	PaidOut             decimal.Decimal `json:"paidOut"`
	MonthlyRevenue      []RevenuePoint  `json:"monthlyRevenue"`
}

// RevenuePoint is the confirmed booking revenue of one calendar month.
type RevenuePoint struct {
	Month    time.Time       `json:"month"`
	Bookings int64           `json:"bookings"`
	Revenue  decimal.Decimal `json:"revenue"`
}
