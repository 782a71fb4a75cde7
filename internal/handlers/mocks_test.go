package handlers_test

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BookingService ---
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) GetBooking(ctx context.Context, userID string, role domain.Role, bookingID string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, role, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) BookingHistory(ctx context.Context, userID string, params dto.BookingHistoryParams) ([]domain.Booking, string, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.String(1), args.Error(2)
}

func (m *MockBookingService) CreateBooking(ctx context.Context, userID string, req dto.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingService) ConfirmBooking(ctx context.Context, userID string, req dto.CapturePaymentRequest) (*portssvc.CaptureOutcome, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.CaptureOutcome), args.Error(1)
}

func (m *MockBookingService) CancelBooking(ctx context.Context, userID string, role domain.Role, bookingID string, reason string) (*domain.Booking, error) {
	args := m.Called(ctx, userID, role, bookingID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.BookingSvcFacade = (*MockBookingService)(nil)

// --- Mock FinanceService ---
type MockFinanceService struct {
	mock.Mock
}

func (m *MockFinanceService) RecordTransaction(ctx context.Context, guideID string, amount decimal.Decimal, txnType domain.GuideTransactionType, description, referenceID string) (*domain.GuideTransaction, error) {
	args := m.Called(ctx, guideID, amount, txnType, description, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuideTransaction), args.Error(1)
}

func (m *MockFinanceService) GetBalance(ctx context.Context, guideID string) (*domain.GuideFinance, error) {
	args := m.Called(ctx, guideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GuideFinance), args.Error(1)
}

func (m *MockFinanceService) ListTransactions(ctx context.Context, guideID string, params dto.FinanceParams) ([]domain.GuideTransaction, string, error) {
	args := m.Called(ctx, guideID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.GuideTransaction), args.String(1), args.Error(2)
}

func (m *MockFinanceService) RequestWithdrawal(ctx context.Context, guideID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	args := m.Called(ctx, guideID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

func (m *MockFinanceService) ListGuideWithdrawals(ctx context.Context, guideID string) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, guideID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockFinanceService) ListWithdrawalsForAdmin(ctx context.Context) ([]domain.Withdrawal, []domain.Withdrawal, error) {
	args := m.Called(ctx)
	var pending, processed []domain.Withdrawal
	if p := args.Get(0); p != nil {
		pending = p.([]domain.Withdrawal)
	}
	if p := args.Get(1); p != nil {
		processed = p.([]domain.Withdrawal)
	}
	return pending, processed, args.Error(2)
}

func (m *MockFinanceService) ProcessWithdrawal(ctx context.Context, adminID, withdrawalID string, req dto.ProcessWithdrawalRequest) (*domain.Withdrawal, error) {
	args := m.Called(ctx, adminID, withdrawalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Withdrawal), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.FinanceSvcFacade = (*MockFinanceService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
