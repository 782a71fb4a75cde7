package domain

import "github.com/shopspring/decimal"

// CaptureStatusCompleted is the only provider status that counts as a successful capture.
const CaptureStatusCompleted = "COMPLETED"

// CaptureResult is what the payment provider reports for a capture attempt.
type CaptureResult struct {
	OrderID   string          `json:"orderID"`
	Status    string          `json:"status"`
	CaptureID string          `json:"captureID,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency,omitempty"`
}

// Completed reports whether the provider finalized the payment.
func (r *CaptureResult) Completed() bool {
	return r != nil && r.Status == CaptureStatusCompleted
}
