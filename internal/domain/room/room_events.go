package room

import (
	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeRoom = "Room"

// Event type constants
const (
	EventTypeRoomCreated       = "RoomCreated"
	EventTypeRoomUpdated       = "RoomUpdated"
	EventTypeRoomRateChanged   = "RoomRateChanged"
	EventTypeRoomStatusChanged = "RoomStatusChanged"
	EventTypeRoomDeleted       = "RoomDeleted"
)

// RoomCreatedEvent is published when a new room is added to inventory
type RoomCreatedEvent struct {
	shared.BaseDomainEvent
	RoomID      uuid.UUID       `json:"room_id"`
	Number      string          `json:"number"`
	Type        RoomType        `json:"type"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
}

// NewRoomCreatedEvent creates a new RoomCreatedEvent
func NewRoomCreatedEvent(r *Room) *RoomCreatedEvent {
	return &RoomCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomCreated, AggregateTypeRoom, r.ID, r.PropertyID),
		RoomID:          r.ID,
		Number:          r.Number,
		Type:            r.Type,
		NightlyRate:     r.NightlyRate,
	}
}

// RoomUpdatedEvent is published when a room's details change
type RoomUpdatedEvent struct {
	shared.BaseDomainEvent
	RoomID uuid.UUID `json:"room_id"`
	Number string    `json:"number"`
	Type   RoomType  `json:"type"`
}

// NewRoomUpdatedEvent creates a new RoomUpdatedEvent
func NewRoomUpdatedEvent(r *Room) *RoomUpdatedEvent {
	return &RoomUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomUpdated, AggregateTypeRoom, r.ID, r.PropertyID),
		RoomID:          r.ID,
		Number:          r.Number,
		Type:            r.Type,
	}
}

// RoomRateChangedEvent is published when a room's list rate changes
type RoomRateChangedEvent struct {
	shared.BaseDomainEvent
	RoomID  uuid.UUID       `json:"room_id"`
	Number  string          `json:"number"`
	OldRate decimal.Decimal `json:"old_rate"`
	NewRate decimal.Decimal `json:"new_rate"`
}

// NewRoomRateChangedEvent creates a new RoomRateChangedEvent
func NewRoomRateChangedEvent(r *Room, oldRate, newRate decimal.Decimal) *RoomRateChangedEvent {
	return &RoomRateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomRateChanged, AggregateTypeRoom, r.ID, r.PropertyID),
		RoomID:          r.ID,
		Number:          r.Number,
		OldRate:         oldRate,
		NewRate:         newRate,
	}
}

// RoomStatusChangedEvent is published when a room enters or leaves service
type RoomStatusChangedEvent struct {
	shared.BaseDomainEvent
	RoomID    uuid.UUID  `json:"room_id"`
	Number    string     `json:"number"`
	OldStatus RoomStatus `json:"old_status"`
	NewStatus RoomStatus `json:"new_status"`
}

// NewRoomStatusChangedEvent creates a new RoomStatusChangedEvent
func NewRoomStatusChangedEvent(r *Room, oldStatus, newStatus RoomStatus) *RoomStatusChangedEvent {
	return &RoomStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomStatusChanged, AggregateTypeRoom, r.ID, r.PropertyID),
		RoomID:          r.ID,
		Number:          r.Number,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// RoomDeletedEvent is published when a room is removed from inventory
type RoomDeletedEvent struct {
	shared.BaseDomainEvent
	RoomID uuid.UUID `json:"room_id"`
	Number string    `json:"number"`
}

// NewRoomDeletedEvent creates a new RoomDeletedEvent
func NewRoomDeletedEvent(r *Room) *RoomDeletedEvent {
	return &RoomDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoomDeleted, AggregateTypeRoom, r.ID, r.PropertyID),
		RoomID:          r.ID,
		Number:          r.Number,
	}
}
