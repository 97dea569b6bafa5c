package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createDraftOrder(t *testing.T) *SalesOrder {
	t.Helper()
	order, err := NewSalesOrder("SO-2026-001", uuid.New(), "Nguyen Van An")
	require.NoError(t, err)
	return order
}

func TestNewSalesOrder(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		order := createDraftOrder(t)
		assert.Equal(t, OrderStatusDraft, order.Status)
		assert.True(t, order.PayableAmount.IsZero())
		assert.Len(t, order.GetDomainEvents(), 1)
	})

	t.Run("empty order number", func(t *testing.T) {
		_, err := NewSalesOrder("", uuid.New(), "Nguyen Van An")
		assert.Error(t, err)
	})

	t.Run("nil customer", func(t *testing.T) {
		_, err := NewSalesOrder("SO-2026-002", uuid.Nil, "Nguyen Van An")
		assert.Error(t, err)
	})
}

func TestSalesOrder_Items(t *testing.T) {
	t.Run("items accumulate into totals", func(t *testing.T) {
		order := createDraftOrder(t)

		_, err := order.AddItem(ItemKindPart, "Brake pads front", decimal.NewFromInt(2), valueobject.NewMoneyVNDFromInt(150000))
		require.NoError(t, err)
		_, err = order.AddItem(ItemKindLabor, "Brake service", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(80000))
		require.NoError(t, err)

		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(380000)))
		assert.True(t, order.PayableAmount.Equal(decimal.NewFromInt(380000)))
		assert.Equal(t, 2, order.ItemCount())
	})

	t.Run("rejects invalid item", func(t *testing.T) {
		order := createDraftOrder(t)

		_, err := order.AddItem(ItemKindPart, "", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(1000))
		assert.Error(t, err)

		_, err = order.AddItem(ItemKindPart, "Oil filter", decimal.Zero, valueobject.NewMoneyVNDFromInt(1000))
		assert.Error(t, err)

		_, err = order.AddItem(ItemKind("CONSUMABLE"), "Oil filter", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(1000))
		assert.Error(t, err)
	})

	t.Run("update and remove recalculate totals", func(t *testing.T) {
		order := createDraftOrder(t)
		item, err := order.AddItem(ItemKindPart, "Chain kit", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(450000))
		require.NoError(t, err)

		require.NoError(t, order.UpdateItemQuantity(item.ID, decimal.NewFromInt(2)))
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(900000)))

		require.NoError(t, order.RemoveItem(item.ID))
		assert.True(t, order.TotalAmount.IsZero())
	})

	t.Run("unknown item id", func(t *testing.T) {
		order := createDraftOrder(t)
		err := order.UpdateItemQuantity(uuid.New(), decimal.NewFromInt(1))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ITEM_NOT_FOUND", domainErr.Code)
	})
}

func TestSalesOrder_ApplyDiscount(t *testing.T) {
	order := createDraftOrder(t)
	_, err := order.AddItem(ItemKindLabor, "Full service", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(500000))
	require.NoError(t, err)

	require.NoError(t, order.ApplyDiscount(valueobject.NewMoneyVNDFromInt(50000)))
	assert.True(t, order.PayableAmount.Equal(decimal.NewFromInt(450000)))

	assert.Error(t, order.ApplyDiscount(valueobject.NewMoneyVNDFromInt(600000)))
	assert.Error(t, order.ApplyDiscount(valueobject.NewMoneyVNDFromInt(-1)))
}

func TestSalesOrder_Confirm(t *testing.T) {
	t.Run("confirms order with items", func(t *testing.T) {
		order := createDraftOrder(t)
		_, err := order.AddItem(ItemKindPart, "Spark plug", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(60000))
		require.NoError(t, err)
		order.ClearDomainEvents()

		require.NoError(t, order.Confirm())

		assert.Equal(t, OrderStatusConfirmed, order.Status)
		assert.NotNil(t, order.ConfirmedAt)
		require.Len(t, order.GetDomainEvents(), 1)
		assert.Equal(t, "SalesOrderConfirmed", order.GetDomainEvents()[0].EventType())
	})

	t.Run("rejects empty order", func(t *testing.T) {
		order := createDraftOrder(t)
		var domainErr *shared.DomainError
		require.ErrorAs(t, order.Confirm(), &domainErr)
		assert.Equal(t, "NO_ITEMS", domainErr.Code)
	})

	t.Run("rejects double confirm", func(t *testing.T) {
		order := createDraftOrder(t)
		_, err := order.AddItem(ItemKindPart, "Spark plug", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(60000))
		require.NoError(t, err)
		require.NoError(t, order.Confirm())

		assert.Error(t, order.Confirm())
	})

	t.Run("rejects fully discounted order", func(t *testing.T) {
		order := createDraftOrder(t)
		_, err := order.AddItem(ItemKindLabor, "Goodwill check", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(50000))
		require.NoError(t, err)
		require.NoError(t, order.ApplyDiscount(valueobject.NewMoneyVNDFromInt(50000)))

		assert.Error(t, order.Confirm())
	})
}

func TestSalesOrder_Lifecycle(t *testing.T) {
	t.Run("confirmed order completes", func(t *testing.T) {
		order := createDraftOrder(t)
		_, err := order.AddItem(ItemKindPart, "Tire rear", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(700000))
		require.NoError(t, err)
		require.NoError(t, order.Confirm())

		require.NoError(t, order.Complete())
		assert.Equal(t, OrderStatusCompleted, order.Status)
		assert.Error(t, order.Complete())
	})

	t.Run("draft order cancels with reason", func(t *testing.T) {
		order := createDraftOrder(t)

		assert.Error(t, order.Cancel(""))
		require.NoError(t, order.Cancel("customer changed mind"))
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})

	t.Run("confirmed order cannot cancel", func(t *testing.T) {
		order := createDraftOrder(t)
		_, err := order.AddItem(ItemKindPart, "Mirror", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(90000))
		require.NoError(t, err)
		require.NoError(t, order.Confirm())

		assert.Error(t, order.Cancel("late change"))
	})

	t.Run("items frozen after confirm", func(t *testing.T) {
		order := createDraftOrder(t)
		item, err := order.AddItem(ItemKindPart, "Battery", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(400000))
		require.NoError(t, err)
		require.NoError(t, order.Confirm())

		_, err = order.AddItem(ItemKindPart, "Horn", decimal.NewFromInt(1), valueobject.NewMoneyVNDFromInt(50000))
		assert.Error(t, err)
		assert.Error(t, order.UpdateItemQuantity(item.ID, decimal.NewFromInt(2)))
		assert.Error(t, order.RemoveItem(item.ID))
	})
}
