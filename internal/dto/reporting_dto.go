package dto

import (
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RevenuePointResponse is one month of confirmed revenue.
type RevenuePointResponse struct {
	Month    string          `json:"month"`
	Bookings int64           `json:"bookings"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DashboardStatsResponse represents the admin dashboard summary
type DashboardStatsResponse struct {
	Users struct {
		Total  int64 `json:"total"`
		Guides int64 `json:"guides"`
	} `json:"users"`
	Bookings struct {
		Pending   int64 `json:"pending"`
		Confirmed int64 `json:"confirmed"`
		Cancelled int64 `json:"cancelled"`
	} `json:"bookings"`
	ActiveGuidePosts    int64 `json:"activeGuidePosts"`
	PendingApplications int64 `json:"pendingApplications"`
	PendingWithdrawals  int64 `json:"pendingWithdrawals"`
	Summary             struct {
		GrossRevenue    decimal.Decimal `json:"grossRevenue"`
		GuideEarnings   decimal.Decimal `json:"guideEarnings"`
		PlatformRevenue decimal.Decimal `json:"platformRevenue"`
		PaidOut         decimal.Decimal `json:"paidOut"`
	} `json:"summary"`
	MonthlyRevenue []RevenuePointResponse `json:"monthlyRevenue"`
}

func ToDashboardStatsResponse(s *domain.DashboardStats) DashboardStatsResponse {
	var resp DashboardStatsResponse
	resp.Users.Total = s.TotalUsers
	resp.Users.Guides = s.TotalGuides
	resp.Bookings.Pending = s.PendingBookings
	resp.Bookings.Confirmed = s.ConfirmedBookings
	resp.Bookings.Cancelled = s.CancelledBookings
	resp.ActiveGuidePosts = s.ActiveGuidePosts
	resp.PendingApplications = s.PendingApplications
	resp.PendingWithdrawals = s.PendingWithdrawals
	resp.Summary.GrossRevenue = s.GrossRevenue
	resp.Summary.GuideEarnings = s.GuideEarnings
	resp.Summary.PlatformRevenue = s.PlatformRevenue
	resp.Summary.PaidOut = s.PaidOut
	resp.MonthlyRevenue = make([]RevenuePointResponse, len(s.MonthlyRevenue))
	for i, p := range s.MonthlyRevenue {
		resp.MonthlyRevenue[i] = RevenuePointResponse{Month: p.Month.Format("2006-01"), Bookings: p.Bookings, Revenue: p.Revenue}
	}
	return resp
}
