package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/borport/borport_backend/internal/core/ports/gateways"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/utils"
	"github.com/borport/borport_backend/internal/utils/accounting"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// adminWithdrawalListLimit caps each half of the admin withdrawal listing.
const adminWithdrawalListLimit = 200

// WithdrawalEvent is published when a withdrawal is requested or processed.
type WithdrawalEvent struct {
	WithdrawalID string          `json:"withdrawalId"`
	GuideID      string          `json:"guideId"`
	Amount       decimal.Decimal `json:"amount"`
	Method       string          `json:"method"`
	Status       string          `json:"status"`
	At           time.Time       `json:"at"`
}

type financeService struct {
	BaseService
	financeRepo portsrepo.FinanceRepositoryFacade
	notifier    portssvc.NotificationSvc
	publisher   gateways.EventPublisher
}

// NewFinanceService creates a new finance service. notifier and publisher may be nil.
func NewFinanceService(financeRepo portsrepo.FinanceRepositoryFacade, notifier portssvc.NotificationSvc, publisher gateways.EventPublisher) portssvc.FinanceSvcFacade {
	return &financeService{financeRepo: financeRepo, notifier: notifier, publisher: publisher}
}

var _ portssvc.FinanceSvcFacade = (*financeService)(nil)

func (s *financeService) RecordTransaction(ctx context.Context, guideID string, amount decimal.Decimal, txnType domain.GuideTransactionType, description, referenceID string) (*domain.GuideTransaction, error) {
	signed, err := accounting.SignedAmount(amount, txnType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	txn, err := s.financeRepo.RecordTransaction(ctx, domain.GuideTransaction{
		TransactionID: uuid.NewString(),
		GuideID:       guideID,
		Amount:        signed,
		Type:          txnType,
		Description:   description,
		ReferenceID:   referenceID,
		CreatedAt:     s.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record guide transaction: %w", err)
	}
	return txn, nil
}

func (s *financeService) GetBalance(ctx context.Context, guideID string) (*domain.GuideFinance, error) {
	finance, err := s.financeRepo.FindFinanceByGuideID(ctx, guideID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.GuideFinance{GuideID: guideID, Balance: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return finance, nil
}

func (s *financeService) ListTransactions(ctx context.Context, guideID string, params dto.FinanceParams) ([]domain.GuideTransaction, string, error) {
	cursor, err := pagination.DecodeToken(params.NextToken)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	limit := pagination.NormalizeLimit(params.Limit)

	txns, err := s.financeRepo.FindTransactions(ctx, guideID, limit+1, cursor)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list guide transactions: %w", err)
	}
	nextToken := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		nextToken = pagination.EncodeToken(last.CreatedAt, last.TransactionID)
	}
	return txns, nextToken, nil
}

func (s *financeService) RequestWithdrawal(ctx context.Context, guideID string, req dto.CreateWithdrawalRequest) (*domain.Withdrawal, error) {
	logger := s.GetLogger(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}
	if !utils.HasValidMoneyPrecision(req.Amount) {
		return nil, fmt.Errorf("%w: amount has too many decimal places", apperrors.ErrValidation)
	}
	method := domain.WithdrawalMethod(strings.ToUpper(strings.TrimSpace(req.Method)))
	if !method.Valid() {
		return nil, fmt.Errorf("%w: method must be BANK_TRANSFER or PAYPAL", apperrors.ErrValidation)
	}

	withdrawal := domain.Withdrawal{
		WithdrawalID:  uuid.NewString(),
		GuideID:       guideID,
		Amount:        req.Amount,
		Method:        method,
		MethodDetails: req.MethodDetails,
		Status:        domain.WithdrawalPending,
		CreatedAt:     s.Now(),
	}
	created, err := s.financeRepo.CreateWithdrawal(ctx, withdrawal)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			logger.Warn("Withdrawal exceeds balance", slog.String("amount", req.Amount.String()))
			return nil, err
		}
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}

	logger.Info("Withdrawal requested", slog.String("withdrawal_id", created.WithdrawalID), slog.String("amount", created.Amount.String()))
	s.publish(ctx, gateways.EventWithdrawalRequested, created)
	return created, nil
}

func (s *financeService) ListGuideWithdrawals(ctx context.Context, guideID string) ([]domain.Withdrawal, error) {
	ws, err := s.financeRepo.FindWithdrawalsByGuide(ctx, guideID, pagination.MaxLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return ws, nil
}

func (s *financeService) ListWithdrawalsForAdmin(ctx context.Context) ([]domain.Withdrawal, []domain.Withdrawal, error) {
	pending, err := s.financeRepo.FindWithdrawalsByStatus(ctx, []domain.WithdrawalStatus{domain.WithdrawalPending}, adminWithdrawalListLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list pending withdrawals: %w", err)
	}
	processed, err := s.financeRepo.FindWithdrawalsByStatus(ctx, []domain.WithdrawalStatus{domain.WithdrawalApproved, domain.WithdrawalRejected}, adminWithdrawalListLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list processed withdrawals: %w", err)
	}
	return pending, processed, nil
}

func (s *financeService) ProcessWithdrawal(ctx context.Context, adminID, withdrawalID string, req dto.ProcessWithdrawalRequest) (*domain.Withdrawal, error) {
	status := domain.WithdrawalStatus(req.Status)
	if status != domain.WithdrawalApproved && status != domain.WithdrawalRejected {
		return nil, fmt.Errorf("%w: status must be APPROVED or REJECTED", apperrors.ErrValidation)
	}

	processed, err := s.financeRepo.ProcessWithdrawal(ctx, withdrawalID, status, req.Note, adminID, s.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to process withdrawal: %w", err)
	}
	s.GetLogger(ctx).Info("Withdrawal processed", slog.String("withdrawal_id", withdrawalID), slog.String("status", string(status)))

	if s.notifier != nil {
		msg := fmt.Sprintf("Your withdrawal of %s was approved.", utils.FormatMoney(processed.Amount))
		if status == domain.WithdrawalRejected {
			msg = fmt.Sprintf("Your withdrawal of %s was rejected and the amount returned to your balance.", utils.FormatMoney(processed.Amount))
		}
		if req.Note != "" {
			msg += " Note: " + req.Note
		}
		s.notifier.Notify(ctx, domain.Notification{
			UserID:  processed.GuideID,
			Type:    domain.NotifyWithdrawalProcessed,
			Title:   "Withdrawal " + strings.ToLower(string(status)),
			Message: msg,
			Link:    "/guide-dashboard",
		})
	}
	s.publish(ctx, gateways.EventWithdrawalProcessed, processed)
	return processed, nil
}

func (s *financeService) publish(ctx context.Context, key string, w *domain.Withdrawal) {
	if s.publisher == nil {
		return
	}
	event := WithdrawalEvent{
		WithdrawalID: w.WithdrawalID,
		GuideID:      w.GuideID,
		Amount:       w.Amount,
		Method:       string(w.Method),
		Status:       string(w.Status),
		At:           s.Now(),
	}
	if err := s.publisher.Publish(ctx, key, event); err != nil {
		s.LogError(ctx, err, "Failed to publish withdrawal event", slog.String("routing_key", key))
	}
}
