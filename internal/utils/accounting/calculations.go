// Package accounting holds the sign and balance rules of the guide ledger.
package accounting

import (
	"fmt"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IsCredit reports whether entries of type t add to the guide balance.
func IsCredit(t domain.GuideTransactionType) (bool, error) {
	switch t {
	case domain.TxnBookingIncome, domain.TxnWithdrawalRefund:
		return true, nil
	case domain.TxnBookingReversal, domain.TxnWithdrawal:
		return false, nil
	default:
		return false, fmt.Errorf("unknown guide transaction type '%s'", t)
	}
}

// SignedAmount applies the ledger sign convention to a positive amount:
// credits are positive, debits are negative.
func SignedAmount(amount decimal.Decimal, t domain.GuideTransactionType) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("ledger amount must be positive, got %s", amount.String())
	}
	credit, err := IsCredit(t)
	if err != nil {
		return decimal.Zero, err
	}
	if credit {
		return amount, nil
	}
	return amount.Neg(), nil
}

// GuideShare returns what the guide earns from a booking total after the platform commission.
// rate is a fraction in [0, 1).
func GuideShare(total decimal.Decimal, rate decimal.Decimal) decimal.Decimal {
	if rate.LessThanOrEqual(decimal.Zero) {
		return total
	}
	commission := total.Mul(rate).Round(2)
	return total.Sub(commission)
}

// SumLedger returns the balance implied by a list of signed entries.
func SumLedger(entries []domain.GuideTransaction) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// ValidateBalance checks that a cached balance equals the sum of its ledger.
func ValidateBalance(balance decimal.Decimal, entries []domain.GuideTransaction) error {
	if sum := SumLedger(entries); !sum.Equal(balance) {
		return fmt.Errorf("ledger out of balance: cached %s, ledger sum %s", balance.String(), sum.String())
	}
	return nil
}
