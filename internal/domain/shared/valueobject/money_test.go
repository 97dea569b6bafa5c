package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(150000), VND)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(150000)))
		assert.Equal(t, VND, m.Currency())
	})

	t.Run("empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyFromString(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"integer amount", "500000", false},
		{"decimal amount", "1234.56", false},
		{"negative amount", "-100", false},
		{"invalid amount", "abc", true},
		{"empty amount", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMoneyFromString(tt.amount, VND)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyVNDFromInt(100000)
	b := NewMoneyVNDFromInt(30000)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(130000)))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Amount().Equal(decimal.NewFromInt(70000)))
	})

	t.Run("min", func(t *testing.T) {
		m, err := a.Min(b)
		require.NoError(t, err)
		assert.True(t, m.Equals(b))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		usd, err := NewMoney(decimal.NewFromInt(100), USD)
		require.NoError(t, err)
		_, err = a.Add(usd)
		assert.Error(t, err)
		_, err = a.Subtract(usd)
		assert.Error(t, err)
		_, err = a.Min(usd)
		assert.Error(t, err)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	a := NewMoneyVNDFromInt(100)
	b := NewMoneyVNDFromInt(200)

	lt, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, lt)

	gt, err := b.GreaterThan(a)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, a.Equals(NewMoneyVNDFromInt(100)))
	assert.False(t, a.Equals(b))
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroVND().IsZero())
	assert.True(t, NewMoneyVNDFromInt(1).IsPositive())
	assert.True(t, NewMoneyVNDFromInt(1).Negate().IsNegative())
}

func TestMoney_String(t *testing.T) {
	m := NewMoneyVNDFromInt(150000)
	assert.Equal(t, "150000 VND", m.String())
	assert.Equal(t, "150000.00", m.StringFixed(2))
}

func TestMoney_JSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		m := NewMoneyVNDFromInt(50000)
		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"50000","currency":"VND"}`, string(data))
	})

	t.Run("unmarshal", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"75000","currency":"VND"}`), &m)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(75000)))
		assert.Equal(t, VND, m.Currency())
	})

	t.Run("unmarshal defaults currency", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"1000"}`), &m)
		require.NoError(t, err)
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("unmarshal invalid amount", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"nope","currency":"VND"}`), &m)
		assert.Error(t, err)
	})
}

func TestMoney_Scan(t *testing.T) {
	t.Run("scan string", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan("120000"))
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(120000)))
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("scan bytes", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan([]byte("99")))
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(99)))
	})

	t.Run("scan nil", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
	})

	t.Run("scan unsupported type", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(12.5))
	})
}

func TestMoney_Value(t *testing.T) {
	m := NewMoneyVNDFromInt(42000)
	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, "42000", v)
}
