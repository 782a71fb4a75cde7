package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// GuideTransaction is a row of the guide_transactions ledger.
type GuideTransaction struct {
	TransactionID  string          `db:"transaction_id"`
	GuideID        string          `db:"guide_id"`
	Amount         decimal.Decimal `db:"amount"`
	Type           string          `db:"type"`
	Description    string          `db:"description"`
	ReferenceID    string          `db:"reference_id"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	CreatedAt      time.Time       `db:"created_at"`
}

// Withdrawal is a row of the withdrawals table, joined with the guide's name.
type Withdrawal struct {
	WithdrawalID  string          `db:"withdrawal_id"`
	GuideID       string          `db:"guide_id"`
	Amount        decimal.Decimal `db:"amount"`
	Method        string          `db:"method"`
	MethodDetails string          `db:"method_details"`
	Status        string          `db:"status"`
	AdminNote     sql.NullString  `db:"admin_note"`
	CreatedAt     time.Time       `db:"created_at"`
	ProcessedAt   sql.NullTime    `db:"processed_at"`
	ProcessedBy   sql.NullString  `db:"processed_by"`
	GuideName     sql.NullString  `db:"name"`
}
