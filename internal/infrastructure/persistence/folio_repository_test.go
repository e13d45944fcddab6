package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormFolioRepository_ServiceCharges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFolioRepository(db)
	ctx := context.Background()

	reservationID := uuid.New()

	row, err := reservation.NewServiceCharge(testPropertyID, reservationID, "Laundry", decimal.NewFromInt(2), decimal.NewFromInt(600), time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.SaveServiceCharge(ctx, row))

	t.Run("lists postings for reservation", func(t *testing.T) {
		rows, err := repo.FindServiceCharges(ctx, reservationID)

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Laundry", rows[0].Title)
		assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(1200)))
	})

	t.Run("finds single posting", func(t *testing.T) {
		found, err := repo.FindServiceChargeByID(ctx, reservationID, row.ID)

		require.NoError(t, err)
		assert.Equal(t, row.ID, found.ID)
	})

	t.Run("other reservation sees nothing", func(t *testing.T) {
		rows, err := repo.FindServiceCharges(ctx, uuid.New())

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("deletes posting", func(t *testing.T) {
		require.NoError(t, repo.DeleteServiceCharge(ctx, reservationID, row.ID))

		_, err := repo.FindServiceChargeByID(ctx, reservationID, row.ID)
		assert.Equal(t, shared.ErrNotFound, err)

		err = repo.DeleteServiceCharge(ctx, reservationID, row.ID)
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormFolioRepository_FoodCharges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFolioRepository(db)
	ctx := context.Background()

	reservationID := uuid.New()

	row, err := reservation.NewFoodCharge(testPropertyID, reservationID, "Rice and Curry", decimal.NewFromInt(3), decimal.NewFromInt(850), time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.SaveFoodCharge(ctx, row))

	rows, err := repo.FindFoodCharges(ctx, reservationID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(2550)))
}

func TestGormFolioRepository_Payments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFolioRepository(db)
	ctx := context.Background()

	reservationID := uuid.New()
	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	advance, err := reservation.NewPayment(testPropertyID, reservationID, reservation.PaymentTypeAdvance, reservation.PaymentMethodCash, decimal.NewFromInt(10000), base)
	require.NoError(t, err)
	require.NoError(t, repo.SavePayment(ctx, advance))

	settlement, err := reservation.NewPayment(testPropertyID, reservationID, reservation.PaymentTypeSettlement, reservation.PaymentMethodCard, decimal.NewFromInt(6200), base.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.NoError(t, repo.SavePayment(ctx, settlement))

	t.Run("lists payments in order", func(t *testing.T) {
		rows, err := repo.FindPayments(ctx, reservationID)

		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, reservation.PaymentTypeAdvance, rows[0].Type)
		assert.Equal(t, reservation.PaymentTypeSettlement, rows[1].Type)
	})

	t.Run("range query is half open", func(t *testing.T) {
		rows, err := repo.FindPaymentsInRange(ctx, testPropertyID, base, base.AddDate(0, 0, 3))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, advance.ID, rows[0].ID)
	})

	t.Run("deletes payment", func(t *testing.T) {
		require.NoError(t, repo.DeletePayment(ctx, reservationID, settlement.ID))

		rows, err := repo.FindPayments(ctx, reservationID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestGormFolioRepository_Discounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormFolioRepository(db)
	ctx := context.Background()

	reservationID := uuid.New()

	row, err := reservation.NewDiscount(testPropertyID, reservationID, "Repeat guest", decimal.NewFromInt(1500), time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.SaveDiscount(ctx, row))

	rows, err := repo.FindDiscounts(ctx, reservationID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Repeat guest", rows[0].Name)

	found, err := repo.FindDiscountByID(ctx, reservationID, row.ID)
	require.NoError(t, err)
	assert.True(t, found.Amount.Equal(decimal.NewFromInt(1500)))

	require.NoError(t, repo.DeleteDiscount(ctx, reservationID, row.ID))
	_, err = repo.FindDiscountByID(ctx, reservationID, row.ID)
	assert.Equal(t, shared.ErrNotFound, err)
}
