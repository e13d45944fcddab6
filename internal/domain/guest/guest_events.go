package guest

import (
	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeGuest = "Guest"

// Event type constants
const (
	EventTypeGuestRegistered = "GuestRegistered"
	EventTypeGuestUpdated    = "GuestUpdated"
	EventTypeGuestDeleted    = "GuestDeleted"
)

// GuestRegisteredEvent is published when a new guest is registered
type GuestRegisteredEvent struct {
	shared.BaseDomainEvent
	GuestID   uuid.UUID  `json:"guest_id"`
	FullName  string     `json:"full_name"`
	Documents []Document `json:"documents"`
}

// NewGuestRegisteredEvent creates a new GuestRegisteredEvent
func NewGuestRegisteredEvent(g *Guest) *GuestRegisteredEvent {
	return &GuestRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGuestRegistered, AggregateTypeGuest, g.ID, g.PropertyID),
		GuestID:         g.ID,
		FullName:        g.FullName,
		Documents:       g.Documents,
	}
}

// GuestUpdatedEvent is published when a guest's details change
type GuestUpdatedEvent struct {
	shared.BaseDomainEvent
	GuestID  uuid.UUID `json:"guest_id"`
	FullName string    `json:"full_name"`
	Phone    string    `json:"phone,omitempty"`
	Email    string    `json:"email,omitempty"`
}

// NewGuestUpdatedEvent creates a new GuestUpdatedEvent
func NewGuestUpdatedEvent(g *Guest) *GuestUpdatedEvent {
	return &GuestUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGuestUpdated, AggregateTypeGuest, g.ID, g.PropertyID),
		GuestID:         g.ID,
		FullName:        g.FullName,
		Phone:           g.Phone,
		Email:           g.Email,
	}
}

// GuestDeletedEvent is published when a guest is deleted
type GuestDeletedEvent struct {
	shared.BaseDomainEvent
	GuestID  uuid.UUID `json:"guest_id"`
	FullName string    `json:"full_name"`
}

// NewGuestDeletedEvent creates a new GuestDeletedEvent
func NewGuestDeletedEvent(g *Guest) *GuestDeletedEvent {
	return &GuestDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGuestDeleted, AggregateTypeGuest, g.ID, g.PropertyID),
		GuestID:         g.ID,
		FullName:        g.FullName,
	}
}
