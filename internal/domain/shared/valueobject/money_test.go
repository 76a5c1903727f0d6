package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), SAR)
		require.NoError(t, err)
		assert.Equal(t, SAR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(100.50)))
	})

	t.Run("returns error for empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromFloat(100), "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "currency cannot be empty")
	})
}

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"zero", "0", "SAR 0.00"},
		{"small", "12.5", "SAR 12.50"},
		{"thousands", "1234.5", "SAR 1,234.50"},
		{"millions", "1234567.891", "SAR 1,234,567.89"},
		{"negative", "-2500", "SAR -2,500.00"},
		{"negative fraction", "-0.5", "SAR -0.50"},
		{"rounds to zero", "-0.001", "SAR 0.00"},
		{"largest stored amount", "9999999999999999.99", "SAR 9,999,999,999,999,999.99"},
		{"rounding carries into the whole part", "999999999999999.995", "SAR 1,000,000,000,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Format())
		})
	}
}

func TestFormatSAR_KeepsEveryDigit(t *testing.T) {
	amount, err := decimal.NewFromString("9999999999999999.99")
	require.NoError(t, err)
	assert.Equal(t, "SAR 9,999,999,999,999,999.99", FormatSAR(amount))
	assert.Equal(t, "USD 0.10", FormatAmount(decimal.RequireFromString("0.1"), USD))
}

func TestMoney_Add(t *testing.T) {
	a := SARFrom(decimal.NewFromInt(1000))
	b := SARFrom(decimal.NewFromInt(500))

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.True(t, sum.Amount().Equal(decimal.NewFromInt(1500)))

	usd, err := NewMoney(decimal.NewFromInt(1), USD)
	require.NoError(t, err)
	_, err = a.Add(usd)
	assert.Error(t, err)
}

func TestMoney_JSON(t *testing.T) {
	m := SARFrom(decimal.RequireFromString("99.9"))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.90","currency":"SAR"}`, string(data))

	var back Money
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equals(m))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("250.75")))
	assert.Equal(t, SAR, m.Currency())
	assert.Equal(t, "250.75 SAR", m.String())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
