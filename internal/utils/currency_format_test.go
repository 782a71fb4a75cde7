package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "12.35", FormatMoney(decimal.RequireFromString("12.3456")))
	assert.Equal(t, "100.00", FormatMoney(decimal.NewFromInt(100)))
}

func TestHasValidMoneyPrecision(t *testing.T) {
	assert.True(t, HasValidMoneyPrecision(decimal.RequireFromString("10.5")))
	assert.True(t, HasValidMoneyPrecision(decimal.RequireFromString("10.55")))
	assert.False(t, HasValidMoneyPrecision(decimal.RequireFromString("10.555")))
}
