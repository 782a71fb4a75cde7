package repositories

import (
	"context"
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/utils/pagination"
)

// FinanceReader defines read operations for guide balances and ledgers
type FinanceReader interface {
	// FindFinanceByGuideID returns apperrors.ErrNotFound when the guide has no finance row.
	FindFinanceByGuideID(ctx context.Context, guideID string) (*domain.GuideFinance, error)
	FindTransactions(ctx context.Context, guideID string, limit int, cursor *pagination.Cursor) ([]domain.GuideTransaction, error)
}

// FinanceWriter defines write operations on the guide ledger
type FinanceWriter interface {
	// RecordTransaction appends a signed entry and moves the cached balance in one transaction.
	// A second entry with the same (referenceID, type) yields apperrors.ErrDuplicate.
	RecordTransaction(ctx context.Context, txn domain.GuideTransaction) (*domain.GuideTransaction, error)
}

// WithdrawalReader defines read operations for withdrawals
type WithdrawalReader interface {
	FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error)
	FindWithdrawalsByGuide(ctx context.Context, guideID string, limit int) ([]domain.Withdrawal, error)
	FindWithdrawalsByStatus(ctx context.Context, statuses []domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error)
}

// WithdrawalWriter defines write operations for withdrawals
type WithdrawalWriter interface {
	// CreateWithdrawal locks the guide's balance, checks it covers the amount and stores the
	// PENDING withdrawal together with its WITHDRAWAL debit.
	// Returns apperrors.ErrInsufficientBalance without writing anything when it does not.
	CreateWithdrawal(ctx context.Context, withdrawal domain.Withdrawal) (*domain.Withdrawal, error)

	// ProcessWithdrawal moves a PENDING withdrawal to APPROVED or REJECTED. Rejection refunds
	// the debit. A withdrawal that is no longer PENDING yields apperrors.ErrValidation.
	ProcessWithdrawal(ctx context.Context, withdrawalID string, status domain.WithdrawalStatus, note string, processedBy string, processedAt time.Time) (*domain.Withdrawal, error)
}

// FinanceRepositoryFacade combines all finance repository interfaces
type FinanceRepositoryFacade interface {
	FinanceReader
	FinanceWriter
	WithdrawalReader
	WithdrawalWriter
}
