package reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeReservation = "Reservation"

// Event type constants
const (
	EventTypeReservationCreated    = "ReservationCreated"
	EventTypeReservationUpdated    = "ReservationUpdated"
	EventTypeReservationCancelled  = "ReservationCancelled"
	EventTypeReservationCheckedOut = "ReservationCheckedOut"
)

// ReservationCreatedEvent is published when a reservation is booked
type ReservationCreatedEvent struct {
	shared.BaseDomainEvent
	ReservationID uuid.UUID `json:"reservation_id"`
	Code          string    `json:"code"`
	GuestID       uuid.UUID `json:"guest_id"`
	GuestName     string    `json:"guest_name"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
}

// NewReservationCreatedEvent creates a new ReservationCreatedEvent
func NewReservationCreatedEvent(r *Reservation) *ReservationCreatedEvent {
	return &ReservationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationCreated, AggregateTypeReservation, r.ID, r.PropertyID),
		ReservationID:   r.ID,
		Code:            r.Code,
		GuestID:         r.GuestID,
		GuestName:       r.GuestName,
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
	}
}

// ReservationUpdatedEvent is published when stay details change
type ReservationUpdatedEvent struct {
	shared.BaseDomainEvent
	ReservationID uuid.UUID `json:"reservation_id"`
	Code          string    `json:"code"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
}

// NewReservationUpdatedEvent creates a new ReservationUpdatedEvent
func NewReservationUpdatedEvent(r *Reservation) *ReservationUpdatedEvent {
	return &ReservationUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationUpdated, AggregateTypeReservation, r.ID, r.PropertyID),
		ReservationID:   r.ID,
		Code:            r.Code,
		CheckIn:         r.CheckIn,
		CheckOut:        r.CheckOut,
	}
}

// ReservationCancelledEvent is published when a reservation is cancelled
type ReservationCancelledEvent struct {
	shared.BaseDomainEvent
	ReservationID uuid.UUID `json:"reservation_id"`
	Code          string    `json:"code"`
	Reason        string    `json:"reason"`
}

// NewReservationCancelledEvent creates a new ReservationCancelledEvent
func NewReservationCancelledEvent(r *Reservation, reason string) *ReservationCancelledEvent {
	return &ReservationCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationCancelled, AggregateTypeReservation, r.ID, r.PropertyID),
		ReservationID:   r.ID,
		Code:            r.Code,
		Reason:          reason,
	}
}

// ReservationCheckedOutEvent is published when a guest checks out
type ReservationCheckedOutEvent struct {
	shared.BaseDomainEvent
	ReservationID uuid.UUID `json:"reservation_id"`
	Code          string    `json:"code"`
	GuestID       uuid.UUID `json:"guest_id"`
}

// NewReservationCheckedOutEvent creates a new ReservationCheckedOutEvent
func NewReservationCheckedOutEvent(r *Reservation) *ReservationCheckedOutEvent {
	return &ReservationCheckedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReservationCheckedOut, AggregateTypeReservation, r.ID, r.PropertyID),
		ReservationID:   r.ID,
		Code:            r.Code,
		GuestID:         r.GuestID,
	}
}
