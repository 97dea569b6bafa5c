package finance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	*settlementFixture
	ledger *LedgerService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	f := newSettlementFixture(t)
	return &ledgerFixture{
		settlementFixture: f,
		ledger:            NewLedgerService(f.receivables, f.payments, f.customers),
	}
}

func TestLedgerService_GetReceivables(t *testing.T) {
	base := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	t.Run("returns rows with summary totals", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.addReceivable(t, "SO-001", 100, base)
		r2 := f.addReceivable(t, "SO-002", 80, base.Add(time.Hour))
		_, err := f.service.ApplyPayment(context.Background(), f.customerID, specificRequest(30, r2.SalesOrderID))
		require.NoError(t, err)

		resp, err := f.ledger.GetReceivables(context.Background(), f.customerID, "", shared.DefaultFilter())

		require.NoError(t, err)
		assert.Len(t, resp.Items, 2)
		assert.True(t, resp.Summary.TotalOriginal.Equal(decimal.NewFromInt(180)))
		assert.True(t, resp.Summary.TotalPaid.Equal(decimal.NewFromInt(30)))
		assert.True(t, resp.Summary.TotalOutstanding.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, 2, resp.Summary.OpenCount)
	})

	t.Run("filters by status", func(t *testing.T) {
		f := newLedgerFixture(t)
		r1 := f.addReceivable(t, "SO-001", 100, base)
		f.addReceivable(t, "SO-002", 80, base.Add(time.Hour))
		_, err := f.service.ApplyPayment(context.Background(), f.customerID, specificRequest(100, r1.SalesOrderID))
		require.NoError(t, err)

		paid, err := f.ledger.GetReceivables(context.Background(), f.customerID, "PAID", shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, paid.Items, 1)
		assert.Equal(t, "SO-001", paid.Items[0].OrderNumber)

		unpaid, err := f.ledger.GetReceivables(context.Background(), f.customerID, "UNPAID", shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, unpaid.Items, 1)
		assert.Equal(t, "SO-002", unpaid.Items[0].OrderNumber)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.ledger.GetReceivables(context.Background(), f.customerID, "OVERDUE", shared.DefaultFilter())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATUS", domainErr.Code)
	})

	t.Run("unknown customer", func(t *testing.T) {
		f := newLedgerFixture(t)

		_, err := f.ledger.GetReceivables(context.Background(), uuid.New(), "", shared.DefaultFilter())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("summary covers the whole ledger, not the page", func(t *testing.T) {
		f := newLedgerFixture(t)
		for i := 0; i < 25; i++ {
			f.addReceivable(t, fmt.Sprintf("SO-%03d", i+1), 10, base.Add(time.Duration(i)*time.Minute))
		}

		filter := shared.DefaultFilter()
		first, err := f.ledger.GetReceivables(context.Background(), f.customerID, "", filter)
		require.NoError(t, err)
		require.Len(t, first.Items, 20)
		assert.Equal(t, int64(25), first.Total)
		assert.True(t, first.Summary.TotalOriginal.Equal(decimal.NewFromInt(250)))
		assert.True(t, first.Summary.TotalOutstanding.Equal(decimal.NewFromInt(250)))
		assert.Equal(t, 25, first.Summary.OpenCount)

		filter.Page = 2
		second, err := f.ledger.GetReceivables(context.Background(), f.customerID, "", filter)
		require.NoError(t, err)
		require.Len(t, second.Items, 5)
		assert.Equal(t, first.Summary, second.Summary)
	})

	t.Run("read is idempotent", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.addReceivable(t, "SO-001", 100, base)

		first, err := f.ledger.GetReceivables(context.Background(), f.customerID, "", shared.DefaultFilter())
		require.NoError(t, err)
		second, err := f.ledger.GetReceivables(context.Background(), f.customerID, "", shared.DefaultFilter())
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestLedgerService_ListPayments(t *testing.T) {
	base := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	t.Run("returns one record per allocation", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.addReceivable(t, "SO-001", 100, base)
		f.addReceivable(t, "SO-002", 50, base.Add(time.Hour))
		_, err := f.service.ApplyPayment(context.Background(), f.customerID, onAccountRequest(120))
		require.NoError(t, err)

		resp, err := f.ledger.ListPayments(context.Background(), f.customerID, shared.DefaultFilter())

		require.NoError(t, err)
		assert.Len(t, resp.Items, 2)
		sum := decimal.Zero
		for _, p := range resp.Items {
			sum = sum.Add(p.Amount)
		}
		assert.True(t, sum.Equal(decimal.NewFromInt(120)))
	})

	t.Run("empty history", func(t *testing.T) {
		f := newLedgerFixture(t)

		resp, err := f.ledger.ListPayments(context.Background(), f.customerID, shared.DefaultFilter())

		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})
}

func TestLedgerService_GetOutstandingBalance(t *testing.T) {
	base := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	f := newLedgerFixture(t)
	f.addReceivable(t, "SO-001", 100, base)
	f.addReceivable(t, "SO-002", 50, base.Add(time.Hour))

	balance, err := f.ledger.GetOutstandingBalance(context.Background(), f.customerID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(150)))
}
