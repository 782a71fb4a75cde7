package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalMethod is how a guide wants to be paid out.
type WithdrawalMethod string

const (
	MethodBankTransfer WithdrawalMethod = "BANK_TRANSFER"
	MethodPayPal       WithdrawalMethod = "PAYPAL"
)

// Valid reports whether m is a supported payout method.
func (m WithdrawalMethod) Valid() bool {
	return m == MethodBankTransfer || m == MethodPayPal
}

// WithdrawalStatus is the review state of a withdrawal request.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "PENDING"
	WithdrawalApproved WithdrawalStatus = "APPROVED"
	WithdrawalRejected WithdrawalStatus = "REJECTED"
)

// Withdrawal is a guide's payout request.
type Withdrawal struct {
	WithdrawalID  string           `json:"withdrawalID"`
	GuideID       string           `json:"guideID"`
	Amount        decimal.Decimal  `json:"amount"`
	Method        WithdrawalMethod `json:"method"`
	MethodDetails string           `json:"methodDetails"`
	Status        WithdrawalStatus `json:"status"`
	AdminNote     string           `json:"adminNote,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	ProcessedAt   *time.Time       `json:"processedAt,omitempty"`
	ProcessedBy   *string          `json:"processedBy,omitempty"`

	GuideName string `json:"guideName,omitempty"`
}
