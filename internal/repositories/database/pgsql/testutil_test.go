package pgsql

import (
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sqlLike(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

// decimalArg matches a decimal argument by value rather than by representation.
type decimalArg struct {
	want decimal.Decimal
}

func (a decimalArg) Match(v any) bool {
	d, ok := v.(decimal.Decimal)
	return ok && d.Equal(a.want)
}

func decimalEq(s string) decimalArg {
	return decimalArg{want: decimal.RequireFromString(s)}
}

func expectLockFinance(mock pgxmock.PgxPoolIface, guideID, balance string) {
	mock.ExpectExec(sqlLike(`INSERT INTO guide_finances (guide_id, balance, updated_at)`)).
		WithArgs(guideID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery(sqlLike(`SELECT balance FROM guide_finances WHERE guide_id = $1 FOR UPDATE`)).
		WithArgs(guideID).
		WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(decimal.RequireFromString(balance)))
}
