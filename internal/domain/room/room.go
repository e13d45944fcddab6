package room

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RoomStatus represents whether a room can take bookings
type RoomStatus string

const (
	RoomStatusActive       RoomStatus = "active"
	RoomStatusOutOfService RoomStatus = "out_of_service"
)

// RoomType represents the bed/occupancy class of a room
type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeTwin   RoomType = "twin"
	RoomTypeTriple RoomType = "triple"
	RoomTypeFamily RoomType = "family"
	RoomTypeSuite  RoomType = "suite"
)

// Room represents a physical hotel room in the inventory
// It is the aggregate root for room-related operations
type Room struct {
	shared.PropertyAggregateRoot
	Number      string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_room_property_number,priority:2"`
	Type        RoomType        `gorm:"type:varchar(20);not null"`
	Floor       int             `gorm:"not null;default:0"`
	Capacity    int             `gorm:"not null;default:2"`
	NightlyRate decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      RoomStatus      `gorm:"type:varchar(20);not null;default:'active'"`
	Description string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Room) TableName() string {
	return "rooms"
}

// NewRoom creates a new room with required fields
func NewRoom(propertyID uuid.UUID, number string, roomType RoomType, capacity int, nightlyRate decimal.Decimal) (*Room, error) {
	if err := validateRoomNumber(number); err != nil {
		return nil, err
	}
	if err := validateRoomType(roomType); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Room capacity must be positive")
	}
	if nightlyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Nightly rate cannot be negative")
	}

	room := &Room{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Number:                strings.TrimSpace(number),
		Type:                  roomType,
		Capacity:              capacity,
		NightlyRate:           nightlyRate,
		Status:                RoomStatusActive,
	}

	room.AddDomainEvent(NewRoomCreatedEvent(room))

	return room, nil
}

// Update updates the room's descriptive attributes
func (r *Room) Update(roomType RoomType, floor, capacity int, description string) error {
	if err := validateRoomType(roomType); err != nil {
		return err
	}
	if capacity <= 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Room capacity must be positive")
	}

	r.Type = roomType
	r.Floor = floor
	r.Capacity = capacity
	r.Description = description
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomUpdatedEvent(r))

	return nil
}

// UpdateNumber changes the room number
func (r *Room) UpdateNumber(number string) error {
	if err := validateRoomNumber(number); err != nil {
		return err
	}

	r.Number = strings.TrimSpace(number)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomUpdatedEvent(r))

	return nil
}

// SetNightlyRate changes the room's list rate. Existing reservations keep the
// rate snapshotted at booking time.
func (r *Room) SetNightlyRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Nightly rate cannot be negative")
	}

	oldRate := r.NightlyRate
	r.NightlyRate = rate
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomRateChangedEvent(r, oldRate, rate))

	return nil
}

// Activate returns the room to bookable inventory
func (r *Room) Activate() error {
	if r.Status == RoomStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Room is already active")
	}

	r.Status = RoomStatusActive
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomStatusChangedEvent(r, RoomStatusOutOfService, RoomStatusActive))

	return nil
}

// TakeOutOfService removes the room from bookable inventory
func (r *Room) TakeOutOfService() error {
	if r.Status == RoomStatusOutOfService {
		return shared.NewDomainError("ALREADY_OUT_OF_SERVICE", "Room is already out of service")
	}

	r.Status = RoomStatusOutOfService
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoomStatusChangedEvent(r, RoomStatusActive, RoomStatusOutOfService))

	return nil
}

// IsActive returns true if the room can take bookings
func (r *Room) IsActive() bool {
	return r.Status == RoomStatusActive
}

// Validation functions

func validateRoomNumber(number string) error {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NUMBER", "Room number cannot be empty")
	}
	if len(trimmed) > 20 {
		return shared.NewDomainError("INVALID_NUMBER", "Room number cannot exceed 20 characters")
	}
	return nil
}

func validateRoomType(t RoomType) error {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTwin, RoomTypeTriple, RoomTypeFamily, RoomTypeSuite:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROOM_TYPE", "Invalid room type")
	}
}
