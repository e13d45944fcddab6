// Package integration provides end-to-end tests for the front desk flow:
// book a stay, post charges and payments to the folio, settle and check out.
package integration

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	financeapp "github.com/hoteldesk/backend/internal/application/finance"
	reportapp "github.com/hoteldesk/backend/internal/application/report"
	reservationapp "github.com/hoteldesk/backend/internal/application/reservation"
	roomapp "github.com/hoteldesk/backend/internal/application/room"
	"github.com/hoteldesk/backend/internal/infrastructure/persistence"
)

func TestBookingFlow_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	propertyID := testDB.CreateTestProperty("Lagoon View Hotel")

	reservationRepo := persistence.NewGormReservationRepository(testDB.DB)
	folioRepo := persistence.NewGormFolioRepository(testDB.DB)
	guestRepo := persistence.NewGormGuestRepository(testDB.DB)
	roomRepo := persistence.NewGormRoomRepository(testDB.DB)
	expenseRepo := persistence.NewGormExpenseRecordRepository(testDB.DB)

	roomService := roomapp.NewRoomService(roomRepo)
	bookingService := reservationapp.NewBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)
	folioService := reservationapp.NewFolioService(reservationRepo, folioRepo)
	reportService := reportapp.NewReportService(reservationRepo, folioRepo, expenseRepo)
	expenseService := financeapp.NewExpenseService(expenseRepo)

	ctx := context.Background()

	checkIn := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 7)
	checkOut := checkIn.AddDate(0, 0, 2)

	// Add a bookable room
	room, err := roomService.CreateRoom(ctx, propertyID, roomapp.CreateRoomRequest{
		Number:      "101",
		Type:        "double",
		Floor:       1,
		Capacity:    2,
		NightlyRate: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	// Book a two-night stay, registering the guest inline
	res, err := bookingService.CreateReservation(ctx, propertyID, reservationapp.CreateReservationRequest{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Rooms:    []reservationapp.RoomSelection{{RoomID: room.ID}},
		Guest: reservationapp.BookingGuestInfo{
			FullName: "Nimal Perera",
			Phone:    "+94771234567",
			Documents: []reservationapp.GuestDocumentInput{
				{Type: "nic", Value: "853421234V"},
				{Type: "passport", Value: "N7788990"},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)
	assert.NotEmpty(t, res.Code)
	require.Len(t, res.Rooms, 1)
	assert.Equal(t, "101", res.Rooms[0].RoomNumber)
	assert.True(t, res.Rooms[0].NightlyRate.Equal(decimal.NewFromInt(5000)))

	// The guest was created in the directory, findable by either document
	g, err := guestRepo.FindByDocument(ctx, propertyID, "853421234V")
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, res.GuestID, g.ID)
	byPassport, err := guestRepo.FindByDocument(ctx, propertyID, "N7788990")
	require.NoError(t, err)
	assert.Equal(t, g.ID, byPassport.ID)

	// The booked room no longer shows as available for the stay dates
	available, err := bookingService.AvailableRooms(ctx, propertyID, reservationapp.AvailableRoomsQuery{
		From: checkIn,
		To:   checkOut,
	})
	require.NoError(t, err)
	assert.Empty(t, available)

	// But it is free again right after check-out
	available, err = bookingService.AvailableRooms(ctx, propertyID, reservationapp.AvailableRoomsQuery{
		From: checkOut,
		To:   checkOut.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	assert.Len(t, available, 1)

	// Post a service charge, a food charge and an advance payment
	_, err = folioService.AddServiceCharge(ctx, propertyID, res.ID, reservationapp.SaveChargeRequest{
		Title:    "Laundry",
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	_, err = folioService.AddFoodCharge(ctx, propertyID, res.ID, reservationapp.SaveChargeRequest{
		Title:    "Dinner buffet",
		Quantity: decimal.NewFromInt(2),
		Rate:     decimal.NewFromInt(1500),
	})
	require.NoError(t, err)

	folio, err := folioService.AddPayment(ctx, propertyID, res.ID, reservationapp.SavePaymentRequest{
		Type:   "advance",
		Method: "cash",
		Amount: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	// 2 nights x 5000 room + 500 laundry + 3000 food = 13500, 5000 paid
	assert.Equal(t, 2, folio.Totals.Nights)
	assert.True(t, folio.Totals.RoomCharges.Equal(decimal.NewFromInt(10000)))
	assert.True(t, folio.Totals.OtherCharges.Equal(decimal.NewFromInt(3500)))
	assert.True(t, folio.Totals.GrossTotal.Equal(decimal.NewFromInt(13500)))
	assert.True(t, folio.Totals.Balance.Equal(decimal.NewFromInt(8500)))

	// A discount reduces the balance
	folio, err = folioService.AddDiscount(ctx, propertyID, res.ID, reservationapp.SaveDiscountRequest{
		Name:   "Repeat guest",
		Amount: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.True(t, folio.Totals.Balance.Equal(decimal.NewFromInt(8000)))

	// The settlement prefill matches the outstanding balance
	prefill, err := folioService.SettlementPrefill(ctx, propertyID, res.ID)
	require.NoError(t, err)
	assert.True(t, prefill.Balance.Equal(decimal.NewFromInt(8000)))

	// Settle in full and check out
	folio, err = folioService.AddPayment(ctx, propertyID, res.ID, reservationapp.SavePaymentRequest{
		Type:   "settlement",
		Method: "card",
		Amount: decimal.NewFromInt(8000),
	})
	require.NoError(t, err)
	assert.True(t, folio.Totals.Balance.IsZero())

	checkedOut, err := bookingService.CheckOutReservation(ctx, propertyID, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "checked_out", checkedOut.Status)
	assert.NotNil(t, checkedOut.CheckedOutAt)

	// No further postings after check-out
	_, err = folioService.AddServiceCharge(ctx, propertyID, res.ID, reservationapp.SaveChargeRequest{
		Title:    "Minibar",
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.NewFromInt(800),
	})
	assert.Error(t, err)

	// Record a running cost and pull the period reports
	_, err = expenseService.CreateExpense(ctx, propertyID, financeapp.CreateExpenseRequest{
		Category:      "UTILITIES",
		Description:   "Electricity",
		Amount:        decimal.NewFromInt(4000),
		PaymentMethod: "bank_transfer",
	})
	require.NoError(t, err)

	rangeFrom := time.Now().UTC().AddDate(0, 0, -1)
	rangeTo := time.Now().UTC().AddDate(0, 0, 1)

	payments, err := reportService.PaymentsReport(ctx, propertyID, reportapp.DateRange{From: rangeFrom, To: rangeTo})
	require.NoError(t, err)
	assert.Len(t, payments.Rows, 2)
	assert.True(t, payments.Total.Equal(decimal.NewFromInt(13000)))
	assert.Equal(t, res.Code, payments.Rows[0].ReservationCode)

	ledger, err := reportService.Ledger(ctx, propertyID, reportapp.DateRange{From: rangeFrom, To: rangeTo})
	require.NoError(t, err)
	assert.Len(t, ledger.Rows, 3)
	assert.True(t, ledger.TotalIn.Equal(decimal.NewFromInt(13000)))
	assert.True(t, ledger.TotalOut.Equal(decimal.NewFromInt(4000)))
	assert.True(t, ledger.ClosingTotal.Equal(decimal.NewFromInt(9000)))
}

func TestBookingFlow_DoubleBookingRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	propertyID := testDB.CreateTestProperty("Lagoon View Hotel")

	reservationRepo := persistence.NewGormReservationRepository(testDB.DB)
	folioRepo := persistence.NewGormFolioRepository(testDB.DB)
	guestRepo := persistence.NewGormGuestRepository(testDB.DB)
	roomRepo := persistence.NewGormRoomRepository(testDB.DB)

	roomService := roomapp.NewRoomService(roomRepo)
	bookingService := reservationapp.NewBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()

	room, err := roomService.CreateRoom(ctx, propertyID, roomapp.CreateRoomRequest{
		Number:      "201",
		Type:        "single",
		Capacity:    1,
		NightlyRate: decimal.NewFromInt(4000),
	})
	require.NoError(t, err)

	checkIn := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 3)
	checkOut := checkIn.AddDate(0, 0, 3)

	guest := reservationapp.BookingGuestInfo{
		FullName:  "First Guest",
		Documents: []reservationapp.GuestDocumentInput{{Type: "nic", Value: "801234567V"}},
	}

	_, err = bookingService.CreateReservation(ctx, propertyID, reservationapp.CreateReservationRequest{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Rooms:    []reservationapp.RoomSelection{{RoomID: room.ID}},
		Guest:    guest,
	})
	require.NoError(t, err)

	// An overlapping stay for the same room must be rejected
	_, err = bookingService.CreateReservation(ctx, propertyID, reservationapp.CreateReservationRequest{
		CheckIn:  checkIn.AddDate(0, 0, 1),
		CheckOut: checkOut.AddDate(0, 0, 1),
		Rooms:    []reservationapp.RoomSelection{{RoomID: room.ID}},
		Guest: reservationapp.BookingGuestInfo{
			FullName:  "Second Guest",
			Documents: []reservationapp.GuestDocumentInput{{Type: "nic", Value: "811234567V"}},
		},
	})
	assert.Error(t, err)

	// Back-to-back stays are fine: check-in on the prior check-out day
	_, err = bookingService.CreateReservation(ctx, propertyID, reservationapp.CreateReservationRequest{
		CheckIn:  checkOut,
		CheckOut: checkOut.AddDate(0, 0, 2),
		Rooms:    []reservationapp.RoomSelection{{RoomID: room.ID}},
		Guest: reservationapp.BookingGuestInfo{
			FullName:  "Third Guest",
			Documents: []reservationapp.GuestDocumentInput{{Type: "nic", Value: "821234567V"}},
		},
	})
	assert.NoError(t, err)
}
