package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseRecord(t *testing.T) {
	propertyID := uuid.New()
	incurredAt := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("creates expense record", func(t *testing.T) {
		e, err := NewExpenseRecord(propertyID, "EXP-202603-00001", ExpenseCategoryUtilities,
			valueobject.NewMoneyLKRFromFloat(18500), "Electricity bill March", incurredAt, PaymentMethodBankTransfer)

		require.NoError(t, err)
		assert.Equal(t, "EXP-202603-00001", e.ExpenseNumber)
		assert.Equal(t, ExpenseCategoryUtilities, e.Category)
		assert.Equal(t, propertyID, e.PropertyID)
		assert.Len(t, e.GetDomainEvents(), 1)
	})

	t.Run("fails with empty number", func(t *testing.T) {
		e, err := NewExpenseRecord(propertyID, "", ExpenseCategoryUtilities,
			valueobject.NewMoneyLKRFromFloat(1000), "Electricity", incurredAt, PaymentMethodCash)

		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("fails with invalid category", func(t *testing.T) {
		e, err := NewExpenseRecord(propertyID, "EXP-202603-00002", ExpenseCategory("FUEL"),
			valueobject.NewMoneyLKRFromFloat(1000), "Generator fuel", incurredAt, PaymentMethodCash)

		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("fails with non-positive amount", func(t *testing.T) {
		e, err := NewExpenseRecord(propertyID, "EXP-202603-00003", ExpenseCategoryOther,
			valueobject.ZeroLKR(), "Misc", incurredAt, PaymentMethodCash)

		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("fails with empty description", func(t *testing.T) {
		e, err := NewExpenseRecord(propertyID, "EXP-202603-00004", ExpenseCategoryOther,
			valueobject.NewMoneyLKRFromFloat(1000), "", incurredAt, PaymentMethodCash)

		assert.Error(t, err)
		assert.Nil(t, e)
	})

	t.Run("fails with invalid payment method", func(t *testing.T) {
		e, err := NewExpenseRecord(propertyID, "EXP-202603-00005", ExpenseCategoryOther,
			valueobject.NewMoneyLKRFromFloat(1000), "Misc", incurredAt, PaymentMethod("cheque"))

		assert.Error(t, err)
		assert.Nil(t, e)
	})
}

func TestExpenseRecordUpdate(t *testing.T) {
	propertyID := uuid.New()
	incurredAt := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	e, _ := NewExpenseRecord(propertyID, "EXP-202603-00001", ExpenseCategoryUtilities,
		valueobject.NewMoneyLKRFromFloat(18500), "Electricity bill March", incurredAt, PaymentMethodBankTransfer)
	e.ClearDomainEvents()

	t.Run("updates all editable fields", func(t *testing.T) {
		err := e.Update(ExpenseCategoryMaintenance, valueobject.NewMoneyLKRFromFloat(22000),
			"AC repair room 204", incurredAt.AddDate(0, 0, 2), PaymentMethodCash)

		require.NoError(t, err)
		assert.Equal(t, ExpenseCategoryMaintenance, e.Category)
		assert.Equal(t, "AC repair room 204", e.Description)
		assert.Len(t, e.GetDomainEvents(), 1)
	})

	t.Run("rejects invalid update", func(t *testing.T) {
		err := e.Update(ExpenseCategoryMaintenance, valueobject.NewMoneyLKRFromFloat(-1),
			"AC repair", incurredAt, PaymentMethodCash)

		assert.Error(t, err)
	})
}
