package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	portsrepo "github.com/borport/borport_backend/internal/core/ports/repositories"
	"github.com/borport/borport_backend/internal/models"
	"github.com/borport/borport_backend/internal/utils/mapping"
	"github.com/borport/borport_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PgxFinanceRepository struct {
	BaseRepository
}

func newPgxFinanceRepository(db DB) portsrepo.FinanceRepositoryFacade {
	return &PgxFinanceRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.FinanceRepositoryFacade = (*PgxFinanceRepository)(nil)

const withdrawalSelect = `
	SELECT w.withdrawal_id, w.guide_id, w.amount, w.method, w.method_details, w.status, w.admin_note,
		w.created_at, w.processed_at, w.processed_by, u.name
	FROM withdrawals w
	LEFT JOIN users u ON u.user_id = w.guide_id`

func scanWithdrawal(row pgx.Row) (models.Withdrawal, error) {
	var m models.Withdrawal
	err := row.Scan(
		&m.WithdrawalID,
		&m.GuideID,
		&m.Amount,
		&m.Method,
		&m.MethodDetails,
		&m.Status,
		&m.AdminNote,
		&m.CreatedAt,
		&m.ProcessedAt,
		&m.ProcessedBy,
		&m.GuideName,
	)
	return m, err
}

func (r *PgxFinanceRepository) FindFinanceByGuideID(ctx context.Context, guideID string) (*domain.GuideFinance, error) {
	f := domain.GuideFinance{GuideID: guideID}
	err := r.Pool.QueryRow(ctx, `SELECT balance, updated_at FROM guide_finances WHERE guide_id = $1;`, guideID).
		Scan(&f.Balance, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find finance of guide %s: %w", guideID, err)
	}
	return &f, nil
}

func (r *PgxFinanceRepository) FindTransactions(ctx context.Context, guideID string, limit int, cursor *pagination.Cursor) ([]domain.GuideTransaction, error) {
	args := []any{guideID}
	query := `
		SELECT transaction_id, guide_id, amount, type, description, reference_id, running_balance, created_at
		FROM guide_transactions
		WHERE guide_id = $1`
	if cursor != nil {
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guide transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.GuideTransaction{}
	for rows.Next() {
		var m models.GuideTransaction
		if err := rows.Scan(&m.TransactionID, &m.GuideID, &m.Amount, &m.Type, &m.Description,
			&m.ReferenceID, &m.RunningBalance, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guide transaction: %w", err)
		}
		txns = append(txns, mapping.ToDomainGuideTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating guide transactions: %w", err)
	}
	return txns, nil
}

func (r *PgxFinanceRepository) RecordTransaction(ctx context.Context, txn domain.GuideTransaction) (*domain.GuideTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	recorded, err := appendLedgerEntry(ctx, tx, txn)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return recorded, nil
}

func (r *PgxFinanceRepository) FindWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	return r.findWithdrawal(ctx, r.Pool, withdrawalID)
}

func (r *PgxFinanceRepository) findWithdrawal(ctx context.Context, q queryRower, withdrawalID string) (*domain.Withdrawal, error) {
	m, err := scanWithdrawal(q.QueryRow(ctx, withdrawalSelect+` WHERE w.withdrawal_id = $1;`, withdrawalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find withdrawal %s: %w", withdrawalID, err)
	}
	w := mapping.ToDomainWithdrawal(m)
	return &w, nil
}

func (r *PgxFinanceRepository) FindWithdrawalsByGuide(ctx context.Context, guideID string, limit int) ([]domain.Withdrawal, error) {
	return r.queryWithdrawals(ctx, withdrawalSelect+` WHERE w.guide_id = $1 ORDER BY w.created_at DESC LIMIT $2;`, guideID, limit)
}

func (r *PgxFinanceRepository) FindWithdrawalsByStatus(ctx context.Context, statuses []domain.WithdrawalStatus, limit int) ([]domain.Withdrawal, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return r.queryWithdrawals(ctx, withdrawalSelect+` WHERE w.status = ANY($1) ORDER BY w.created_at DESC LIMIT $2;`, names, limit)
}

func (r *PgxFinanceRepository) queryWithdrawals(ctx context.Context, query string, args ...any) ([]domain.Withdrawal, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query withdrawals: %w", err)
	}
	defer rows.Close()

	out := []domain.Withdrawal{}
	for rows.Next() {
		m, err := scanWithdrawal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %w", err)
		}
		out = append(out, mapping.ToDomainWithdrawal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating withdrawals: %w", err)
	}
	return out, nil
}

func (r *PgxFinanceRepository) CreateWithdrawal(ctx context.Context, w domain.Withdrawal) (*domain.Withdrawal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// The finance row stays locked until commit, so concurrent requests cannot overdraw.
	balance, err := lockFinance(ctx, tx, w.GuideID)
	if err != nil {
		return nil, err
	}
	if balance.LessThan(w.Amount) {
		return nil, apperrors.ErrInsufficientBalance
	}

	if w.WithdrawalID == "" {
		w.WithdrawalID = uuid.NewString()
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO withdrawals (withdrawal_id, guide_id, amount, method, method_details, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, w.WithdrawalID, w.GuideID, w.Amount, string(w.Method), w.MethodDetails, string(domain.WithdrawalPending), w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert withdrawal: %w", err)
	}

	_, err = appendLedgerEntry(ctx, tx, domain.GuideTransaction{
		GuideID:     w.GuideID,
		Amount:      w.Amount.Neg(),
		Type:        domain.TxnWithdrawal,
		Description: fmt.Sprintf("Withdrawal via %s", w.Method),
		ReferenceID: w.WithdrawalID,
		CreatedAt:   w.CreatedAt,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to debit withdrawal: %w", err)
	}

	created, err := r.findWithdrawal(ctx, tx, w.WithdrawalID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *PgxFinanceRepository) ProcessWithdrawal(ctx context.Context, withdrawalID string, status domain.WithdrawalStatus, note string, processedBy string, processedAt time.Time) (*domain.Withdrawal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var current string
	var guideID string
	err = tx.QueryRow(ctx, `SELECT status, guide_id FROM withdrawals WHERE withdrawal_id = $1 FOR UPDATE;`, withdrawalID).
		Scan(&current, &guideID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock withdrawal: %w", err)
	}
	if domain.WithdrawalStatus(current) != domain.WithdrawalPending {
		return nil, fmt.Errorf("%w: withdrawal is already %s", apperrors.ErrValidation, current)
	}

	_, err = tx.Exec(ctx, `
		UPDATE withdrawals SET status = $2, admin_note = NULLIF($3, ''), processed_at = $4, processed_by = $5
		WHERE withdrawal_id = $1;
	`, withdrawalID, string(status), note, processedAt, processedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to update withdrawal: %w", err)
	}

	if status == domain.WithdrawalRejected {
		debit, err := ledgerAmount(ctx, tx, withdrawalID, domain.TxnWithdrawal)
		if err != nil {
			return nil, fmt.Errorf("failed to find withdrawal debit: %w", err)
		}
		if _, err := appendLedgerEntry(ctx, tx, domain.GuideTransaction{
			GuideID:     guideID,
			Amount:      debit.Neg(),
			Type:        domain.TxnWithdrawalRefund,
			Description: "Refund of rejected withdrawal",
			ReferenceID: withdrawalID,
			CreatedAt:   processedAt,
		}); err != nil {
			return nil, fmt.Errorf("failed to refund withdrawal: %w", err)
		}
	}

	processed, err := r.findWithdrawal(ctx, tx, withdrawalID)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return processed, nil
}
