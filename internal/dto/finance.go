package dto

import (
	"time"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWithdrawalRequest is the body of POST /api/guide/withdraw.
// Amount and method are validated by the service so both failures answer 400 with a clear message.
type CreateWithdrawalRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method" binding:"required,withdrawal_method"`
	MethodDetails string          `json:"methodDetails" binding:"max=1000"`
}

// ProcessWithdrawalRequest is the admin decision on a withdrawal.
type ProcessWithdrawalRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	Note   string `json:"note" binding:"max=1000"`
}

type WithdrawalResponse struct {
	WithdrawalID  string          `json:"withdrawalId"`
	GuideID       string          `json:"guideId"`
	GuideName     string          `json:"guideName,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	MethodDetails string          `json:"methodDetails"`
	Status        string          `json:"status"`
	AdminNote     string          `json:"adminNote,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	ProcessedAt   *time.Time      `json:"processedAt,omitempty"`
}

func ToWithdrawalResponse(w *domain.Withdrawal) WithdrawalResponse {
	return WithdrawalResponse{
		WithdrawalID:  w.WithdrawalID,
		GuideID:       w.GuideID,
		GuideName:     w.GuideName,
		Amount:        w.Amount,
		Method:        string(w.Method),
		MethodDetails: w.MethodDetails,
		Status:        string(w.Status),
		AdminNote:     w.AdminNote,
		CreatedAt:     w.CreatedAt,
		ProcessedAt:   w.ProcessedAt,
	}
}

func ToWithdrawalListResponse(ws []domain.Withdrawal) []WithdrawalResponse {
	out := make([]WithdrawalResponse, len(ws))
	for i := range ws {
		out[i] = ToWithdrawalResponse(&ws[i])
	}
	return out
}

// AdminWithdrawalsResponse splits withdrawals by review state.
type AdminWithdrawalsResponse struct {
	Pending   []WithdrawalResponse `json:"pending"`
	Processed []WithdrawalResponse `json:"processed"`
}

type GuideTransactionResponse struct {
	TransactionID  string          `json:"transactionId"`
	Amount         decimal.Decimal `json:"amount"`
	Type           string          `json:"type"`
	Description    string          `json:"description"`
	ReferenceID    string          `json:"referenceId"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// FinanceSummaryResponse is the guide's balance with the latest ledger page.
type FinanceSummaryResponse struct {
	Balance      decimal.Decimal            `json:"balance"`
	Transactions []GuideTransactionResponse `json:"transactions"`
	NextToken    string                     `json:"nextToken,omitempty"`
}

func ToFinanceSummaryResponse(f *domain.GuideFinance, txns []domain.GuideTransaction, nextToken string) FinanceSummaryResponse {
	out := make([]GuideTransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = GuideTransactionResponse{
			TransactionID:  t.TransactionID,
			Amount:         t.Amount,
			Type:           string(t.Type),
			Description:    t.Description,
			ReferenceID:    t.ReferenceID,
			RunningBalance: t.RunningBalance,
			CreatedAt:      t.CreatedAt,
		}
	}
	return FinanceSummaryResponse{Balance: f.Balance, Transactions: out, NextToken: nextToken}
}

// FinanceParams pages the guide ledger.
type FinanceParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken string `form:"nextToken"`
}
