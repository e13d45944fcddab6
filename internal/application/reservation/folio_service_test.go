package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newFolioService(reservationRepo *MockReservationRepository, folioRepo *MockFolioRepository) *FolioService {
	return NewFolioService(reservationRepo, folioRepo)
}

func TestFolioService_GetFolio_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	food, _ := reservation.NewFoodCharge(propertyID, r.ID, "Dinner buffet", decimal.NewFromInt(2), decimal.NewFromInt(600), time.Now())
	advance, _ := reservation.NewPayment(propertyID, r.ID, reservation.PaymentTypeAdvance, reservation.PaymentMethodCash, decimal.NewFromInt(10000), time.Now())

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	folioRepo.On("FindServiceCharges", ctx, r.ID).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", ctx, r.ID).Return([]reservation.FoodCharge{*food}, nil)
	folioRepo.On("FindPayments", ctx, r.ID).Return([]reservation.Payment{*advance}, nil)
	folioRepo.On("FindDiscounts", ctx, r.ID).Return([]reservation.Discount{}, nil)

	result, err := service.GetFolio(ctx, propertyID, r.ID)

	assert.NoError(t, err)
	assert.Len(t, result.Foods, 1)
	assert.Len(t, result.Payments, 1)
	assert.True(t, result.Foods[0].Amount.Equal(decimal.NewFromInt(1200)))
	// 3 nights x 5000 + 1200 food, 10000 advance paid
	assert.True(t, result.Totals.GrossTotal.Equal(decimal.NewFromInt(16200)))
	assert.True(t, result.Totals.Balance.Equal(decimal.NewFromInt(6200)))
}

func TestFolioService_GetFolio_ReservationNotFound(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	id := uuid.New()

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, id).Return(nil, nil)

	result, err := service.GetFolio(ctx, propertyID, id)

	assert.Error(t, err)
	assert.Nil(t, result)
	domainErr, ok := err.(*shared.DomainError)
	assert.True(t, ok)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestFolioService_AddServiceCharge_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	req := SaveChargeRequest{
		Title:    "Laundry",
		Quantity: decimal.NewFromInt(3),
		Rate:     decimal.NewFromInt(250),
	}

	saved, _ := reservation.NewServiceCharge(propertyID, r.ID, req.Title, req.Quantity, req.Rate, time.Now())

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	folioRepo.On("SaveServiceCharge", ctx, mock.AnythingOfType("*reservation.ServiceCharge")).Return(nil)
	folioRepo.On("FindServiceCharges", ctx, r.ID).Return([]reservation.ServiceCharge{*saved}, nil)
	folioRepo.On("FindFoodCharges", ctx, r.ID).Return([]reservation.FoodCharge{}, nil)
	folioRepo.On("FindPayments", ctx, r.ID).Return([]reservation.Payment{}, nil)
	folioRepo.On("FindDiscounts", ctx, r.ID).Return([]reservation.Discount{}, nil)

	result, err := service.AddServiceCharge(ctx, propertyID, r.ID, req)

	assert.NoError(t, err)
	assert.Len(t, result.Services, 1)
	assert.True(t, result.Services[0].Amount.Equal(decimal.NewFromInt(750)))
	assert.True(t, result.Totals.OtherCharges.Equal(decimal.NewFromInt(750)))
	folioRepo.AssertExpectations(t)
}

func TestFolioService_AddServiceCharge_CancelledReservation(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)
	_ = r.Cancel("No show")

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)

	result, err := service.AddServiceCharge(ctx, propertyID, r.ID, SaveChargeRequest{
		Title:    "Laundry",
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.NewFromInt(250),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	domainErr, ok := err.(*shared.DomainError)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	folioRepo.AssertNotCalled(t, "SaveServiceCharge", mock.Anything, mock.Anything)
}

func TestFolioService_AddPayment_CheckedOutReservation(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)
	_ = r.Complete()

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)

	result, err := service.AddPayment(ctx, propertyID, r.ID, SavePaymentRequest{
		Type:   "settlement",
		Method: "cash",
		Amount: decimal.NewFromInt(5000),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	folioRepo.AssertNotCalled(t, "SavePayment", mock.Anything, mock.Anything)
}

func TestFolioService_AddPayment_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	paidAt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	req := SavePaymentRequest{
		Type:   "advance",
		Method: "bank_transfer",
		Amount: decimal.NewFromInt(10000),
		PaidAt: &paidAt,
		Remark: "Booking deposit",
	}

	saved, _ := reservation.NewPayment(propertyID, r.ID, reservation.PaymentTypeAdvance, reservation.PaymentMethodBankTransfer, req.Amount, paidAt)
	saved.Remark = req.Remark

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	folioRepo.On("SavePayment", ctx, mock.AnythingOfType("*reservation.Payment")).Return(nil)
	folioRepo.On("FindServiceCharges", ctx, r.ID).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", ctx, r.ID).Return([]reservation.FoodCharge{}, nil)
	folioRepo.On("FindPayments", ctx, r.ID).Return([]reservation.Payment{*saved}, nil)
	folioRepo.On("FindDiscounts", ctx, r.ID).Return([]reservation.Discount{}, nil)

	result, err := service.AddPayment(ctx, propertyID, r.ID, req)

	assert.NoError(t, err)
	assert.Len(t, result.Payments, 1)
	assert.Equal(t, "Booking deposit", result.Payments[0].Remark)
	assert.True(t, result.Totals.Paid.Equal(decimal.NewFromInt(10000)))
	assert.True(t, result.Totals.Balance.Equal(decimal.NewFromInt(5000)))
}

func TestFolioService_AddPayment_InvalidMethod(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)

	result, err := service.AddPayment(ctx, propertyID, r.ID, SavePaymentRequest{
		Type:   "advance",
		Method: "cheque",
		Amount: decimal.NewFromInt(5000),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	folioRepo.AssertNotCalled(t, "SavePayment", mock.Anything, mock.Anything)
}

func TestFolioService_UpdateFoodCharge_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)
	row, _ := reservation.NewFoodCharge(propertyID, r.ID, "Lunch", decimal.NewFromInt(1), decimal.NewFromInt(400), time.Now())

	req := SaveChargeRequest{
		Title:    "Lunch set",
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(450),
	}

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	folioRepo.On("FindFoodChargeByID", ctx, r.ID, row.ID).Return(row, nil)
	folioRepo.On("SaveFoodCharge", ctx, row).Return(nil)
	folioRepo.On("FindServiceCharges", ctx, r.ID).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", ctx, r.ID).Return([]reservation.FoodCharge{*row}, nil)
	folioRepo.On("FindPayments", ctx, r.ID).Return([]reservation.Payment{}, nil)
	folioRepo.On("FindDiscounts", ctx, r.ID).Return([]reservation.Discount{}, nil)

	result, err := service.UpdateFoodCharge(ctx, propertyID, r.ID, row.ID, req)

	assert.NoError(t, err)
	assert.Equal(t, "Lunch set", result.Foods[0].Title)
	assert.True(t, result.Foods[0].Amount.Equal(decimal.NewFromInt(900)))
}

func TestFolioService_UpdatePayment_NotFound(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)
	rowID := uuid.New()

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	folioRepo.On("FindPaymentByID", ctx, r.ID, rowID).Return(nil, nil)

	result, err := service.UpdatePayment(ctx, propertyID, r.ID, rowID, SavePaymentRequest{
		Type:   "advance",
		Method: "cash",
		Amount: decimal.NewFromInt(100),
	})

	assert.Error(t, err)
	assert.Nil(t, result)
	domainErr, ok := err.(*shared.DomainError)
	assert.True(t, ok)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestFolioService_DeleteDiscount_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)
	rowID := uuid.New()

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	folioRepo.On("DeleteDiscount", ctx, r.ID, rowID).Return(nil)
	expectEmptyFolio(folioRepo, r.ID)

	result, err := service.DeleteDiscount(ctx, propertyID, r.ID, rowID)

	assert.NoError(t, err)
	assert.Empty(t, result.Discounts)
	folioRepo.AssertExpectations(t)
}

func TestFolioService_AddDiscount_CapsTotal(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	discount, _ := reservation.NewDiscount(propertyID, r.ID, "Long stay promo", decimal.NewFromInt(99000), time.Now())

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	folioRepo.On("SaveDiscount", ctx, mock.AnythingOfType("*reservation.Discount")).Return(nil)
	folioRepo.On("FindServiceCharges", ctx, r.ID).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", ctx, r.ID).Return([]reservation.FoodCharge{}, nil)
	folioRepo.On("FindPayments", ctx, r.ID).Return([]reservation.Payment{}, nil)
	folioRepo.On("FindDiscounts", ctx, r.ID).Return([]reservation.Discount{*discount}, nil)

	result, err := service.AddDiscount(ctx, propertyID, r.ID, SaveDiscountRequest{
		Name:   "Long stay promo",
		Amount: decimal.NewFromInt(99000),
	})

	assert.NoError(t, err)
	// discount exceeds the gross, total floors at zero
	assert.True(t, result.Totals.Total.IsZero())
	assert.True(t, result.Totals.Balance.IsZero())
}

func TestFolioService_SettlementPrefill_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	service := newFolioService(reservationRepo, folioRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	advance, _ := reservation.NewPayment(propertyID, r.ID, reservation.PaymentTypeAdvance, reservation.PaymentMethodCash, decimal.NewFromInt(10000), time.Now())

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	folioRepo.On("FindServiceCharges", ctx, r.ID).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", ctx, r.ID).Return([]reservation.FoodCharge{}, nil)
	folioRepo.On("FindPayments", ctx, r.ID).Return([]reservation.Payment{*advance}, nil)
	folioRepo.On("FindDiscounts", ctx, r.ID).Return([]reservation.Discount{}, nil)

	result, err := service.SettlementPrefill(ctx, propertyID, r.ID)

	assert.NoError(t, err)
	assert.Equal(t, r.ID, result.ReservationID)
	assert.True(t, result.Balance.Equal(decimal.NewFromInt(5000)))
}
