package partner

import (
	"testing"

	"github.com/motogarage/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		custName     string
		customerType CustomerType
		wantErr      bool
	}{
		{"valid individual", "KH-001", "Nguyen Van An", CustomerTypeIndividual, false},
		{"valid organization", "KH-002", "GrabBike Fleet District 1", CustomerTypeOrganization, false},
		{"lowercase code is normalized", "kh-003", "Tran Thi Binh", CustomerTypeIndividual, false},
		{"empty code", "", "Nguyen Van An", CustomerTypeIndividual, true},
		{"code with spaces", "KH 001", "Nguyen Van An", CustomerTypeIndividual, true},
		{"empty name", "KH-004", "", CustomerTypeIndividual, true},
		{"invalid type", "KH-005", "Nguyen Van An", CustomerType("wholesale"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCustomer(tt.code, tt.custName, tt.customerType)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.custName, c.Name)
			assert.Equal(t, CustomerStatusActive, c.Status)
			assert.True(t, c.CreditLimit.IsZero())
			assert.Len(t, c.GetDomainEvents(), 1)
		})
	}

	t.Run("code is uppercased", func(t *testing.T) {
		c, err := NewIndividualCustomer("kh-010", "Le Van Cuong")
		require.NoError(t, err)
		assert.Equal(t, "KH-010", c.Code)
	})
}

func TestCustomer_SetContact(t *testing.T) {
	c, err := NewIndividualCustomer("KH-001", "Nguyen Van An")
	require.NoError(t, err)

	t.Run("valid contact", func(t *testing.T) {
		err := c.SetContact("+84 90 123 4567", "an.nguyen@example.vn")
		require.NoError(t, err)
		assert.Equal(t, "+84 90 123 4567", c.Phone)
	})

	t.Run("invalid phone", func(t *testing.T) {
		err := c.SetContact("abc", "")
		assert.Error(t, err)
	})

	t.Run("invalid email", func(t *testing.T) {
		err := c.SetContact("", "not-an-email")
		assert.Error(t, err)
	})
}

func TestCustomer_SetCreditLimit(t *testing.T) {
	c, err := NewOrganizationCustomer("KH-002", "GrabBike Fleet District 1")
	require.NoError(t, err)

	require.NoError(t, c.SetCreditLimit(decimal.NewFromInt(5000000)))
	assert.True(t, c.CreditLimit.Equal(decimal.NewFromInt(5000000)))

	err = c.SetCreditLimit(decimal.NewFromInt(-1))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDIT_LIMIT", domainErr.Code)
}

func TestCustomer_StatusTransitions(t *testing.T) {
	c, err := NewIndividualCustomer("KH-001", "Nguyen Van An")
	require.NoError(t, err)

	assert.True(t, c.IsActive())
	assert.Error(t, c.Activate())

	require.NoError(t, c.Deactivate())
	assert.False(t, c.IsActive())
	assert.Error(t, c.Deactivate())

	require.NoError(t, c.Activate())
	assert.True(t, c.IsActive())
}
