package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoneyFromFloat(5000, LKR)
	require.NoError(t, err)
	assert.Equal(t, LKR, m.Currency())
	assert.Equal(t, "5000.00", m.StringFixed(2))

	_, err = NewMoney(decimal.NewFromInt(10), "")
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyLKRFromFloat(15000)
	b := NewMoneyLKRFromFloat(1200)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "16200.00", sum.StringFixed(2))

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "13800.00", diff.StringFixed(2))

	prod := b.MultiplyByInt(3)
	assert.Equal(t, "3600.00", prod.StringFixed(2))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	a := NewMoneyLKRFromFloat(100)
	b, _ := NewMoneyFromFloat(100, USD)

	_, err := a.Add(b)
	assert.Error(t, err)

	_, err = a.Subtract(b)
	assert.Error(t, err)

	_, err = a.LessThan(b)
	assert.Error(t, err)
}

func TestMoneyComparison(t *testing.T) {
	a := NewMoneyLKRFromFloat(100)
	b := NewMoneyLKRFromFloat(200)

	less, err := a.LessThan(b)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := b.GreaterThanOrEqual(a)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, a.Equals(NewMoneyLKRFromFloat(100)))
	assert.False(t, a.Equals(b))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyLKRFromFloat(1234.56)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"1234.56","currency":"LKR"}`, string(data))

	var out Money
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, m.Equals(out))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("750.50"))
	assert.Equal(t, "750.50", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}

func TestMoneySigns(t *testing.T) {
	pos := NewMoneyLKRFromFloat(10)
	neg := pos.Negate()

	assert.True(t, pos.IsPositive())
	assert.True(t, neg.IsNegative())
	assert.True(t, neg.Abs().Equals(pos))
	assert.True(t, ZeroLKR().IsZero())
}
