package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of fraction digits used for every amount on the platform (USD).
const MoneyPrecision = 2

// FormatMoney formats an amount with the platform precision.
// Example: 12.3456 returns "12.35".
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}

// HasValidMoneyPrecision reports whether amount has at most MoneyPrecision fraction digits.
func HasValidMoneyPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Truncate(MoneyPrecision))
}
