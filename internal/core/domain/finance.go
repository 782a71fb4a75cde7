package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuideTransactionType classifies ledger entries.
type GuideTransactionType string

const (
	TxnBookingIncome    GuideTransactionType = "BOOKING_INCOME"
	TxnBookingReversal  GuideTransactionType = "BOOKING_REVERSAL"
	TxnWithdrawal       GuideTransactionType = "WITHDRAWAL"
	TxnWithdrawalRefund GuideTransactionType = "WITHDRAWAL_REFUND"
)

// GuideFinance is the cached running balance of a guide.
// Balance always equals the sum of the guide's GuideTransaction amounts.
type GuideFinance struct {
	GuideID   string          `json:"guideID"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// GuideTransaction is one append-only, signed ledger entry.
type GuideTransaction struct {
	TransactionID  string               `json:"transactionID"`
	GuideID        string               `json:"guideID"`
	Amount         decimal.Decimal      `json:"amount"`
	Type           GuideTransactionType `json:"type"`
	Description    string               `json:"description"`
	ReferenceID    string               `json:"referenceID"`
	RunningBalance decimal.Decimal      `json:"runningBalance"`
	CreatedAt      time.Time            `json:"createdAt"`
}
