package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const constraintLedgerReference = "guide_transactions_reference_id_type_key"

// lockFinance opens the guide's finance row if needed and locks it for the rest of tx.
func lockFinance(ctx context.Context, tx pgx.Tx, guideID string) (decimal.Decimal, error) {
	if _, err := tx.Exec(ctx, `
		INSERT INTO guide_finances (guide_id, balance, updated_at)
		VALUES ($1, 0, NOW())
		ON CONFLICT (guide_id) DO NOTHING;
	`, guideID); err != nil {
		return decimal.Zero, fmt.Errorf("failed to open finance row: %w", err)
	}

	var balance decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT balance FROM guide_finances WHERE guide_id = $1 FOR UPDATE;`, guideID).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to lock finance row: %w", err)
	}
	return balance, nil
}

// appendLedgerEntry locks the guide's balance, appends a signed entry and moves the balance by
// the same amount. The balance never goes below zero.
func appendLedgerEntry(ctx context.Context, tx pgx.Tx, entry domain.GuideTransaction) (*domain.GuideTransaction, error) {
	balance, err := lockFinance(ctx, tx, entry.GuideID)
	if err != nil {
		return nil, err
	}

	next := balance.Add(entry.Amount)
	if next.IsNegative() {
		return nil, apperrors.ErrInsufficientBalance
	}

	if entry.TransactionID == "" {
		entry.TransactionID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.RunningBalance = next

	_, err = tx.Exec(ctx, `
		INSERT INTO guide_transactions (transaction_id, guide_id, amount, type, description, reference_id, running_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, entry.TransactionID, entry.GuideID, entry.Amount, string(entry.Type), entry.Description, entry.ReferenceID, next, entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, constraintLedgerReference) {
			return nil, fmt.Errorf("%w: %s entry for %s already recorded", apperrors.ErrDuplicate, entry.Type, entry.ReferenceID)
		}
		return nil, fmt.Errorf("failed to insert ledger entry: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE guide_finances SET balance = $2, updated_at = $3 WHERE guide_id = $1;`,
		entry.GuideID, next, entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}
	return &entry, nil
}

// ledgerAmount returns the amount of the entry recorded for (referenceID, type), or ErrNotFound.
func ledgerAmount(ctx context.Context, tx pgx.Tx, referenceID string, typ domain.GuideTransactionType) (decimal.Decimal, error) {
	var amount decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT amount FROM guide_transactions WHERE reference_id = $1 AND type = $2;`,
		referenceID, string(typ)).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to look up ledger entry: %w", err)
	}
	return amount, nil
}
