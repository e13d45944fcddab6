package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/guest"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/room"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockReservationRepository is a mock implementation of ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*reservation.Reservation, error) {
	args := m.Called(ctx, propertyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByCode(ctx context.Context, propertyID uuid.UUID, code string) (*reservation.Reservation, error) {
	args := m.Called(ctx, propertyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]reservation.Reservation, error) {
	args := m.Called(ctx, propertyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByGuest(ctx context.Context, propertyID, guestID uuid.UUID, filter shared.Filter) ([]reservation.Reservation, error) {
	args := m.Called(ctx, propertyID, guestID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindByStatus(ctx context.Context, propertyID uuid.UUID, status reservation.ReservationStatus, filter shared.Filter) ([]reservation.Reservation, error) {
	args := m.Called(ctx, propertyID, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindOverlapping(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]reservation.Reservation, error) {
	args := m.Called(ctx, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]reservation.Reservation, error) {
	args := m.Called(ctx, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Save(ctx context.Context, r *reservation.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) SaveWithLock(ctx context.Context, r *reservation.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationRepository) GenerateReservationCode(ctx context.Context, propertyID uuid.UUID) (string, error) {
	args := m.Called(ctx, propertyID)
	return args.String(0), args.Error(1)
}

// Verify interface compliance
var _ reservation.ReservationRepository = (*MockReservationRepository)(nil)

// MockFolioRepository is a mock implementation of FolioRepository
type MockFolioRepository struct {
	mock.Mock
}

func (m *MockFolioRepository) FindServiceCharges(ctx context.Context, reservationID uuid.UUID) ([]reservation.ServiceCharge, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.ServiceCharge), args.Error(1)
}

func (m *MockFolioRepository) FindServiceChargeByID(ctx context.Context, reservationID, id uuid.UUID) (*reservation.ServiceCharge, error) {
	args := m.Called(ctx, reservationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.ServiceCharge), args.Error(1)
}

func (m *MockFolioRepository) SaveServiceCharge(ctx context.Context, row *reservation.ServiceCharge) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockFolioRepository) DeleteServiceCharge(ctx context.Context, reservationID, id uuid.UUID) error {
	args := m.Called(ctx, reservationID, id)
	return args.Error(0)
}

func (m *MockFolioRepository) FindFoodCharges(ctx context.Context, reservationID uuid.UUID) ([]reservation.FoodCharge, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.FoodCharge), args.Error(1)
}

func (m *MockFolioRepository) FindFoodChargeByID(ctx context.Context, reservationID, id uuid.UUID) (*reservation.FoodCharge, error) {
	args := m.Called(ctx, reservationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.FoodCharge), args.Error(1)
}

func (m *MockFolioRepository) SaveFoodCharge(ctx context.Context, row *reservation.FoodCharge) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockFolioRepository) DeleteFoodCharge(ctx context.Context, reservationID, id uuid.UUID) error {
	args := m.Called(ctx, reservationID, id)
	return args.Error(0)
}

func (m *MockFolioRepository) FindPayments(ctx context.Context, reservationID uuid.UUID) ([]reservation.Payment, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Payment), args.Error(1)
}

func (m *MockFolioRepository) FindPaymentByID(ctx context.Context, reservationID, id uuid.UUID) (*reservation.Payment, error) {
	args := m.Called(ctx, reservationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Payment), args.Error(1)
}

func (m *MockFolioRepository) FindPaymentsInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]reservation.Payment, error) {
	args := m.Called(ctx, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Payment), args.Error(1)
}

func (m *MockFolioRepository) SavePayment(ctx context.Context, row *reservation.Payment) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockFolioRepository) DeletePayment(ctx context.Context, reservationID, id uuid.UUID) error {
	args := m.Called(ctx, reservationID, id)
	return args.Error(0)
}

func (m *MockFolioRepository) FindDiscounts(ctx context.Context, reservationID uuid.UUID) ([]reservation.Discount, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.Discount), args.Error(1)
}

func (m *MockFolioRepository) FindDiscountByID(ctx context.Context, reservationID, id uuid.UUID) (*reservation.Discount, error) {
	args := m.Called(ctx, reservationID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Discount), args.Error(1)
}

func (m *MockFolioRepository) SaveDiscount(ctx context.Context, row *reservation.Discount) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockFolioRepository) DeleteDiscount(ctx context.Context, reservationID, id uuid.UUID) error {
	args := m.Called(ctx, reservationID, id)
	return args.Error(0)
}

// Verify interface compliance
var _ reservation.FolioRepository = (*MockFolioRepository)(nil)

// MockGuestRepository is a mock implementation of GuestRepository
type MockGuestRepository struct {
	mock.Mock
}

func (m *MockGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guest.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*guest.Guest, error) {
	args := m.Called(ctx, propertyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guest.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (*guest.Guest, error) {
	args := m.Called(ctx, propertyID, docValue)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guest.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindByPhone(ctx context.Context, propertyID uuid.UUID, phone string) (*guest.Guest, error) {
	args := m.Called(ctx, propertyID, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*guest.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]guest.Guest, error) {
	args := m.Called(ctx, propertyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]guest.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindByIDs(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) ([]guest.Guest, error) {
	args := m.Called(ctx, propertyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]guest.Guest), args.Error(1)
}

func (m *MockGuestRepository) Save(ctx context.Context, g *guest.Guest) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestRepository) SaveWithLock(ctx context.Context, g *guest.Guest) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGuestRepository) DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error {
	args := m.Called(ctx, propertyID, id)
	return args.Error(0)
}

func (m *MockGuestRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGuestRepository) ExistsByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (bool, error) {
	args := m.Called(ctx, propertyID, docValue)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ guest.GuestRepository = (*MockGuestRepository)(nil)

// MockRoomRepository is a mock implementation of RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*room.Room, error) {
	args := m.Called(ctx, propertyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByNumber(ctx context.Context, propertyID uuid.UUID, number string) (*room.Room, error) {
	args := m.Called(ctx, propertyID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]room.Room, error) {
	args := m.Called(ctx, propertyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindActive(ctx context.Context, propertyID uuid.UUID) ([]room.Room, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByIDs(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) ([]room.Room, error) {
	args := m.Called(ctx, propertyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindOccupiedRoomIDs(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRoomRepository) Save(ctx context.Context, r *room.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoomRepository) SaveWithLock(ctx context.Context, r *room.Room) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRoomRepository) DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error {
	args := m.Called(ctx, propertyID, id)
	return args.Error(0)
}

func (m *MockRoomRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, propertyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) ExistsByNumber(ctx context.Context, propertyID uuid.UUID, number string) (bool, error) {
	args := m.Called(ctx, propertyID, number)
	return args.Bool(0), args.Error(1)
}

// Verify interface compliance
var _ room.RoomRepository = (*MockRoomRepository)(nil)

// =============================================================================
// Test Helper Functions
// =============================================================================

func newTestPropertyID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newBookingService(
	reservationRepo *MockReservationRepository,
	folioRepo *MockFolioRepository,
	guestRepo *MockGuestRepository,
	roomRepo *MockRoomRepository,
) *BookingService {
	return NewBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)
}

func createTestRoom(propertyID uuid.UUID, number string) *room.Room {
	rm, _ := room.NewRoom(propertyID, number, room.RoomTypeDouble, 2, decimal.NewFromInt(5000))
	return rm
}

func createTestGuest(propertyID uuid.UUID) *guest.Guest {
	g, _ := guest.NewGuest(propertyID, "Nimal Perera", []guest.Document{
		{Type: guest.DocumentTypeNIC, Value: "882530417V"},
	})
	return g
}

func createTestReservation(propertyID uuid.UUID) *reservation.Reservation {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)
	r, _ := reservation.NewReservation(propertyID, "RSV-202603-00001", uuid.New(), "Nimal Perera", checkIn, checkOut)
	_, _ = r.AddRoom(uuid.New(), "204", "double", decimal.NewFromInt(5000))
	return r
}

func expectEmptyFolio(folioRepo *MockFolioRepository, reservationID uuid.UUID) {
	folioRepo.On("FindServiceCharges", mock.Anything, reservationID).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", mock.Anything, reservationID).Return([]reservation.FoodCharge{}, nil)
	folioRepo.On("FindPayments", mock.Anything, reservationID).Return([]reservation.Payment{}, nil)
	folioRepo.On("FindDiscounts", mock.Anything, reservationID).Return([]reservation.Discount{}, nil)
}

// =============================================================================
// BookingService Tests
// =============================================================================

func TestBookingService_CreateReservation_NewGuest(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	rm := createTestRoom(propertyID, "204")

	req := CreateReservationRequest{
		CheckIn:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Rooms:    []RoomSelection{{RoomID: rm.ID}},
		Guest: BookingGuestInfo{
			FullName:  "Nimal Perera",
			Phone:     "+94 77 123 4567",
			Documents: []GuestDocumentInput{{Type: "nic", Value: "882530417V"}},
		},
	}

	guestRepo.On("FindByDocument", ctx, propertyID, "882530417V").Return(nil, nil)
	guestRepo.On("Save", ctx, mock.AnythingOfType("*guest.Guest")).Return(nil)
	reservationRepo.On("GenerateReservationCode", ctx, propertyID).Return("RSV-202603-00001", nil)
	roomRepo.On("FindOccupiedRoomIDs", ctx, propertyID, req.CheckIn, req.CheckOut).Return([]uuid.UUID{}, nil)
	roomRepo.On("FindByIDForProperty", ctx, propertyID, rm.ID).Return(rm, nil)
	reservationRepo.On("Save", ctx, mock.AnythingOfType("*reservation.Reservation")).Return(nil)
	folioRepo.On("FindServiceCharges", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.FoodCharge{}, nil)
	folioRepo.On("FindPayments", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.Payment{}, nil)
	folioRepo.On("FindDiscounts", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.Discount{}, nil)

	result, err := service.CreateReservation(ctx, propertyID, req)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "RSV-202603-00001", result.Code)
	assert.Equal(t, "confirmed", result.Status)
	assert.Len(t, result.Rooms, 1)
	assert.Equal(t, "204", result.Rooms[0].RoomNumber)
	assert.True(t, result.Rooms[0].NightlyRate.Equal(decimal.NewFromInt(5000)))
	assert.NotNil(t, result.Totals)
	assert.Equal(t, 3, result.Totals.Nights)
	assert.True(t, result.Totals.Total.Equal(decimal.NewFromInt(15000)))
	guestRepo.AssertExpectations(t)
	reservationRepo.AssertExpectations(t)
}

func TestBookingService_CreateReservation_ExistingGuestReused(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	rm := createTestRoom(propertyID, "101")
	existing := createTestGuest(propertyID)

	req := CreateReservationRequest{
		CheckIn:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		Rooms:    []RoomSelection{{RoomID: rm.ID}},
		Guest: BookingGuestInfo{
			FullName:  "Nimal Perera",
			Documents: []GuestDocumentInput{{Type: "nic", Value: "882530417V"}},
		},
	}

	guestRepo.On("FindByDocument", ctx, propertyID, "882530417V").Return(existing, nil)
	reservationRepo.On("GenerateReservationCode", ctx, propertyID).Return("RSV-202604-00007", nil)
	roomRepo.On("FindOccupiedRoomIDs", ctx, propertyID, req.CheckIn, req.CheckOut).Return([]uuid.UUID{}, nil)
	roomRepo.On("FindByIDForProperty", ctx, propertyID, rm.ID).Return(rm, nil)
	reservationRepo.On("Save", ctx, mock.AnythingOfType("*reservation.Reservation")).Return(nil)
	folioRepo.On("FindServiceCharges", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.FoodCharge{}, nil)
	folioRepo.On("FindPayments", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.Payment{}, nil)
	folioRepo.On("FindDiscounts", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.Discount{}, nil)

	result, err := service.CreateReservation(ctx, propertyID, req)

	assert.NoError(t, err)
	assert.Equal(t, existing.ID, result.GuestID)
	guestRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	guestRepo.AssertExpectations(t)
}

func TestBookingService_CreateReservation_RateOverride(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	rm := createTestRoom(propertyID, "305")
	offer := decimal.NewFromInt(4200)

	req := CreateReservationRequest{
		CheckIn:  time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
		Rooms:    []RoomSelection{{RoomID: rm.ID, NightlyRate: &offer}},
		Guest: BookingGuestInfo{
			FullName:  "Kamala Silva",
			Documents: []GuestDocumentInput{{Type: "passport", Value: "N1234567"}},
		},
	}

	guestRepo.On("FindByDocument", ctx, propertyID, "N1234567").Return(nil, nil)
	guestRepo.On("Save", ctx, mock.AnythingOfType("*guest.Guest")).Return(nil)
	reservationRepo.On("GenerateReservationCode", ctx, propertyID).Return("RSV-202605-00001", nil)
	roomRepo.On("FindOccupiedRoomIDs", ctx, propertyID, req.CheckIn, req.CheckOut).Return([]uuid.UUID{}, nil)
	roomRepo.On("FindByIDForProperty", ctx, propertyID, rm.ID).Return(rm, nil)
	reservationRepo.On("Save", ctx, mock.AnythingOfType("*reservation.Reservation")).Return(nil)
	folioRepo.On("FindServiceCharges", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.ServiceCharge{}, nil)
	folioRepo.On("FindFoodCharges", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.FoodCharge{}, nil)
	folioRepo.On("FindPayments", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.Payment{}, nil)
	folioRepo.On("FindDiscounts", ctx, mock.AnythingOfType("uuid.UUID")).Return([]reservation.Discount{}, nil)

	result, err := service.CreateReservation(ctx, propertyID, req)

	assert.NoError(t, err)
	assert.True(t, result.Rooms[0].NightlyRate.Equal(offer))
	assert.True(t, result.Totals.RoomCharges.Equal(decimal.NewFromInt(8400)))
}

func TestBookingService_CreateReservation_RoomOccupied(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	rm := createTestRoom(propertyID, "204")

	req := CreateReservationRequest{
		CheckIn:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
		Rooms:    []RoomSelection{{RoomID: rm.ID}},
		Guest: BookingGuestInfo{
			FullName:  "Nimal Perera",
			Documents: []GuestDocumentInput{{Type: "nic", Value: "882530417V"}},
		},
	}

	guestRepo.On("FindByDocument", ctx, propertyID, "882530417V").Return(createTestGuest(propertyID), nil)
	reservationRepo.On("GenerateReservationCode", ctx, propertyID).Return("RSV-202603-00002", nil)
	roomRepo.On("FindOccupiedRoomIDs", ctx, propertyID, req.CheckIn, req.CheckOut).Return([]uuid.UUID{rm.ID}, nil)
	roomRepo.On("FindByIDForProperty", ctx, propertyID, rm.ID).Return(rm, nil)

	result, err := service.CreateReservation(ctx, propertyID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	domainErr, ok := err.(*shared.DomainError)
	assert.True(t, ok)
	assert.Equal(t, "ROOM_UNAVAILABLE", domainErr.Code)
	reservationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBookingService_CreateReservation_RoomOutOfService(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	rm := createTestRoom(propertyID, "110")
	_ = rm.TakeOutOfService()

	req := CreateReservationRequest{
		CheckIn:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		Rooms:    []RoomSelection{{RoomID: rm.ID}},
		Guest: BookingGuestInfo{
			FullName:  "Nimal Perera",
			Documents: []GuestDocumentInput{{Type: "nic", Value: "882530417V"}},
		},
	}

	guestRepo.On("FindByDocument", ctx, propertyID, "882530417V").Return(createTestGuest(propertyID), nil)
	reservationRepo.On("GenerateReservationCode", ctx, propertyID).Return("RSV-202603-00003", nil)
	roomRepo.On("FindOccupiedRoomIDs", ctx, propertyID, req.CheckIn, req.CheckOut).Return([]uuid.UUID{}, nil)
	roomRepo.On("FindByIDForProperty", ctx, propertyID, rm.ID).Return(rm, nil)

	result, err := service.CreateReservation(ctx, propertyID, req)

	assert.Error(t, err)
	assert.Nil(t, result)
	domainErr, ok := err.(*shared.DomainError)
	assert.True(t, ok)
	assert.Equal(t, "ROOM_UNAVAILABLE", domainErr.Code)
}

func TestBookingService_GetReservationByID_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	expectEmptyFolio(folioRepo, r.ID)

	result, err := service.GetReservationByID(ctx, propertyID, r.ID)

	assert.NoError(t, err)
	assert.Equal(t, r.Code, result.Code)
	assert.NotNil(t, result.Totals)
	assert.Equal(t, 3, result.Totals.Nights)
	assert.True(t, result.Totals.Balance.Equal(decimal.NewFromInt(15000)))
}

func TestBookingService_GetReservationByID_NotFound(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	id := uuid.New()

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, id).Return(nil, nil)

	result, err := service.GetReservationByID(ctx, propertyID, id)

	assert.Error(t, err)
	assert.Nil(t, result)
	domainErr, ok := err.(*shared.DomainError)
	assert.True(t, ok)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestBookingService_ListReservations_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	reservationRepo.On("FindAllForProperty", ctx, propertyID, mock.AnythingOfType("shared.Filter")).Return([]reservation.Reservation{*r}, nil)
	reservationRepo.On("CountForProperty", ctx, propertyID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	results, total, err := service.ListReservations(ctx, propertyID, ReservationListFilter{Status: "confirmed"})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, results, 1)
	assert.Nil(t, results[0].Totals)
}

func TestBookingService_UpdateStay_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	req := UpdateStayRequest{
		CheckIn:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	reservationRepo.On("SaveWithLock", ctx, r).Return(nil)
	expectEmptyFolio(folioRepo, r.ID)

	result, err := service.UpdateStay(ctx, propertyID, r.ID, req)

	assert.NoError(t, err)
	assert.Equal(t, 5, result.Totals.Nights)
	assert.True(t, result.Totals.RoomCharges.Equal(decimal.NewFromInt(25000)))
	reservationRepo.AssertExpectations(t)
}

func TestBookingService_CancelReservation_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	reservationRepo.On("SaveWithLock", ctx, r).Return(nil)
	expectEmptyFolio(folioRepo, r.ID)

	result, err := service.CancelReservation(ctx, propertyID, r.ID, CancelReservationRequest{Reason: "Guest called to cancel"})

	assert.NoError(t, err)
	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, "Guest called to cancel", result.CancelReason)
	assert.NotNil(t, result.CancelledAt)
}

func TestBookingService_CancelReservation_AlreadyCheckedOut(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)
	_ = r.Complete()

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)

	result, err := service.CancelReservation(ctx, propertyID, r.ID, CancelReservationRequest{Reason: "too late"})

	assert.Error(t, err)
	assert.Nil(t, result)
	reservationRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestBookingService_CheckOutReservation_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	r := createTestReservation(propertyID)

	reservationRepo.On("FindByIDForProperty", ctx, propertyID, r.ID).Return(r, nil)
	reservationRepo.On("SaveWithLock", ctx, r).Return(nil)
	expectEmptyFolio(folioRepo, r.ID)

	result, err := service.CheckOutReservation(ctx, propertyID, r.ID)

	assert.NoError(t, err)
	assert.Equal(t, "checked_out", result.Status)
	assert.NotNil(t, result.CheckedOutAt)
}

func TestBookingService_AvailableRooms_Success(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	free := createTestRoom(propertyID, "101")
	busy := createTestRoom(propertyID, "102")

	query := AvailableRoomsQuery{
		From: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
	}

	roomRepo.On("FindOccupiedRoomIDs", ctx, propertyID, query.From, query.To).Return([]uuid.UUID{busy.ID}, nil)
	roomRepo.On("FindActive", ctx, propertyID).Return([]room.Room{*free, *busy}, nil)

	results, err := service.AvailableRooms(ctx, propertyID, query)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "101", results[0].Number)
}

func TestBookingService_AvailableRooms_EmptyRange(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	results, err := service.AvailableRooms(ctx, propertyID, AvailableRoomsQuery{From: day, To: day})

	assert.NoError(t, err)
	assert.Empty(t, results)
	roomRepo.AssertNotCalled(t, "FindOccupiedRoomIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	roomRepo.AssertNotCalled(t, "FindActive", mock.Anything, mock.Anything)
}

func TestBookingService_AvailableRooms_CapacityFilter(t *testing.T) {
	reservationRepo := new(MockReservationRepository)
	folioRepo := new(MockFolioRepository)
	guestRepo := new(MockGuestRepository)
	roomRepo := new(MockRoomRepository)
	service := newBookingService(reservationRepo, folioRepo, guestRepo, roomRepo)

	ctx := context.Background()
	propertyID := newTestPropertyID()
	double := createTestRoom(propertyID, "201")
	family, _ := room.NewRoom(propertyID, "202", room.RoomTypeFamily, 4, decimal.NewFromInt(9000))

	query := AvailableRoomsQuery{
		From:        time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		To:          time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		MinCapacity: 3,
	}

	roomRepo.On("FindOccupiedRoomIDs", ctx, propertyID, query.From, query.To).Return([]uuid.UUID{}, nil)
	roomRepo.On("FindActive", ctx, propertyID).Return([]room.Room{*double, *family}, nil)

	results, err := service.AvailableRooms(ctx, propertyID, query)

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "202", results[0].Number)
}
