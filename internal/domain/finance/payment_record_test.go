package finance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/motogarage/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaymentRecord(t *testing.T) {
	receivableID := uuid.New()
	customerID := uuid.New()

	t.Run("valid record", func(t *testing.T) {
		record, err := NewPaymentRecord(receivableID, customerID, valueobject.NewMoneyVNDFromInt(50000), PaymentMethodCash, "TXN-001", "deposit for SO-001")

		require.NoError(t, err)
		assert.Equal(t, receivableID, record.ReceivableID)
		assert.Equal(t, customerID, record.CustomerID)
		assert.Equal(t, PaymentMethodCash, record.PaymentMethod)
		assert.False(t, record.PaidAt.IsZero())
		assert.NotEqual(t, uuid.Nil, record.ID)
	})

	t.Run("rejects nil receivable", func(t *testing.T) {
		_, err := NewPaymentRecord(uuid.Nil, customerID, valueobject.NewMoneyVNDFromInt(100), PaymentMethodCash, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects nil customer", func(t *testing.T) {
		_, err := NewPaymentRecord(receivableID, uuid.Nil, valueobject.NewMoneyVNDFromInt(100), PaymentMethodCash, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPaymentRecord(receivableID, customerID, valueobject.ZeroVND(), PaymentMethodCash, "", "")
		assertDomainErrCode(t, err, "INVALID_AMOUNT")
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPaymentRecord(receivableID, customerID, valueobject.NewMoneyVNDFromInt(100), PaymentMethod("CRYPTO"), "", "")
		assert.Error(t, err)
	})
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethodBankTransfer.IsValid())
	assert.True(t, PaymentMethodCard.IsValid())
	assert.True(t, PaymentMethodEWallet.IsValid())
	assert.False(t, PaymentMethod("CHECK").IsValid())
}
