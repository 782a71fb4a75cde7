package accounting

import (
	"testing"

	"github.com/borport/borport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	tests := []struct {
		typ  domain.GuideTransactionType
		want string
	}{
		{domain.TxnBookingIncome, "100"},
		{domain.TxnWithdrawalRefund, "100"},
		{domain.TxnWithdrawal, "-100"},
		{domain.TxnBookingReversal, "-100"},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			got, err := SignedAmount(hundred, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSignedAmount_Rejects(t *testing.T) {
	_, err := SignedAmount(decimal.Zero, domain.TxnBookingIncome)
	assert.Error(t, err)
	_, err = SignedAmount(decimal.NewFromInt(1), domain.GuideTransactionType("BONUS"))
	assert.Error(t, err)
}

func TestGuideShare(t *testing.T) {
	total := decimal.RequireFromString("200.00")
	assert.True(t, GuideShare(total, decimal.Zero).Equal(total))
	assert.Equal(t, "180", GuideShare(total, decimal.RequireFromString("0.1")).String())
}

func TestValidateBalance(t *testing.T) {
	entries := []domain.GuideTransaction{
		{Amount: decimal.NewFromInt(100)},
		{Amount: decimal.NewFromInt(-30)},
		{Amount: decimal.NewFromInt(30)},
	}
	assert.NoError(t, ValidateBalance(decimal.NewFromInt(100), entries))
	assert.Error(t, ValidateBalance(decimal.NewFromInt(70), entries))
}
