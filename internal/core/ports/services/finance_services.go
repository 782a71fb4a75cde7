package services

import (
	"context"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvc exposes the guide ledger
type LedgerSvc interface {
	// RecordTransaction appends a ledger entry of a positive amount; the sign follows the type.
	RecordTransaction(ctx context.Context, guideID string, amount decimal.Decimal, txnType domain.GuideTransactionType, description, referenceID string) (*domain.GuideTransaction, error)
	GetBalance(ctx context.Context, guideID string) (*domain.GuideFinance, error)
	ListTransactions(ctx context.Context, guideID string, params dto.FinanceParams) ([]domain.GuideTransaction, string, error)
}

// WithdrawalSvc defines payout operations
type WithdrawalSvc interface {
	RequestWithdrawal(ctx context.Context, guideID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error)
	ListGuideWithdrawals(ctx context.Context, guideID string) ([]domain.Withdrawal, error)

	// ListWithdrawalsForAdmin returns pending and processed withdrawals.
	ListWithdrawalsForAdmin(ctx context.Context) (pending []domain.Withdrawal, processed []domain.Withdrawal, err error)
	ProcessWithdrawal(ctx context.Context, adminID, withdrawalID string, req dto.ProcessWithdrawalRequest) (*domain.Withdrawal, error)
}

// FinanceSvcFacade combines all finance service interfaces
type FinanceSvcFacade interface {
	LedgerSvc
	WithdrawalSvc
}
