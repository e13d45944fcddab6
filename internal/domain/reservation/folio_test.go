package reservation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceCharge(t *testing.T) {
	propertyID := uuid.New()
	reservationID := uuid.New()
	postedAt := date(2026, 3, 10)

	t.Run("computes amount from quantity and rate", func(t *testing.T) {
		row, err := NewServiceCharge(propertyID, reservationID, "Laundry", decimal.NewFromInt(3), decimal.NewFromInt(800), postedAt)

		require.NoError(t, err)
		assert.True(t, row.Amount.Equal(decimal.NewFromInt(2400)))
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewServiceCharge(propertyID, reservationID, "  ", decimal.NewFromInt(1), decimal.NewFromInt(800), postedAt)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewServiceCharge(propertyID, reservationID, "Laundry", decimal.Zero, decimal.NewFromInt(800), postedAt)
		assert.Error(t, err)
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, err := NewServiceCharge(propertyID, reservationID, "Laundry", decimal.NewFromInt(1), decimal.NewFromInt(-1), postedAt)
		assert.Error(t, err)
	})

	t.Run("rejects zero-rate row", func(t *testing.T) {
		_, err := NewServiceCharge(propertyID, reservationID, "Laundry", decimal.NewFromInt(2), decimal.Zero, postedAt)

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})
}

func TestServiceChargeUpdate_RejectsZeroAmount(t *testing.T) {
	row, _ := NewServiceCharge(uuid.New(), uuid.New(), "Laundry", decimal.NewFromInt(1), decimal.NewFromInt(800), date(2026, 3, 10))

	err := row.Update("Laundry", decimal.NewFromInt(1), decimal.Zero)

	require.Error(t, err)
	assert.True(t, row.Amount.Equal(decimal.NewFromInt(800)))
}

func TestServiceChargeUpdate(t *testing.T) {
	row, _ := NewServiceCharge(uuid.New(), uuid.New(), "Laundry", decimal.NewFromInt(1), decimal.NewFromInt(800), date(2026, 3, 10))

	err := row.Update("Express Laundry", decimal.NewFromInt(2), decimal.NewFromInt(1200))

	require.NoError(t, err)
	assert.Equal(t, "Express Laundry", row.Title)
	assert.True(t, row.Amount.Equal(decimal.NewFromInt(2400)))
}

func TestNewFoodCharge(t *testing.T) {
	row, err := NewFoodCharge(uuid.New(), uuid.New(), "Dinner", decimal.NewFromInt(2), decimal.NewFromInt(1200), date(2026, 3, 10))

	require.NoError(t, err)
	assert.True(t, row.Amount.Equal(decimal.NewFromInt(2400)))

	err = row.Update("Dinner buffet", decimal.NewFromInt(2), decimal.NewFromInt(1500))
	require.NoError(t, err)
	assert.True(t, row.Amount.Equal(decimal.NewFromInt(3000)))
}

func TestNewPayment(t *testing.T) {
	propertyID := uuid.New()
	reservationID := uuid.New()
	paidAt := date(2026, 3, 10)

	t.Run("creates payment", func(t *testing.T) {
		p, err := NewPayment(propertyID, reservationID, PaymentTypeAdvance, PaymentMethodCash, decimal.NewFromInt(10000), paidAt)

		require.NoError(t, err)
		assert.Equal(t, PaymentTypeAdvance, p.Type)
		assert.Equal(t, PaymentMethodCash, p.Method)
	})

	t.Run("rejects zero amount", func(t *testing.T) {
		_, err := NewPayment(propertyID, reservationID, PaymentTypeAdvance, PaymentMethodCash, decimal.Zero, paidAt)
		assert.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := NewPayment(propertyID, reservationID, PaymentTypeSettlement, PaymentMethodCard, decimal.NewFromInt(-100), paidAt)
		assert.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewPayment(propertyID, reservationID, PaymentType("deposit"), PaymentMethodCash, decimal.NewFromInt(100), paidAt)
		assert.Error(t, err)
	})

	t.Run("rejects unknown method", func(t *testing.T) {
		_, err := NewPayment(propertyID, reservationID, PaymentTypeAdvance, PaymentMethod("cheque"), decimal.NewFromInt(100), paidAt)
		assert.Error(t, err)
	})
}

func TestNewDiscount(t *testing.T) {
	propertyID := uuid.New()
	reservationID := uuid.New()
	grantedAt := date(2026, 3, 10)

	t.Run("creates discount", func(t *testing.T) {
		d, err := NewDiscount(propertyID, reservationID, "Repeat guest", decimal.NewFromInt(2000), grantedAt)

		require.NoError(t, err)
		assert.Equal(t, "Repeat guest", d.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewDiscount(propertyID, reservationID, " ", decimal.NewFromInt(2000), grantedAt)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewDiscount(propertyID, reservationID, "Repeat guest", decimal.Zero, grantedAt)
		assert.Error(t, err)
	})
}
