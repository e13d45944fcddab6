package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
)

// IsValid checks if the status is a valid ReservationStatus
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusConfirmed, ReservationStatusCancelled, ReservationStatusCheckedOut:
		return true
	}
	return false
}

// String returns the string representation of ReservationStatus
func (s ReservationStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case ReservationStatusConfirmed:
		return target == ReservationStatusCancelled || target == ReservationStatusCheckedOut
	case ReservationStatusCancelled, ReservationStatusCheckedOut:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for states that refuse further folio postings
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCancelled || s == ReservationStatusCheckedOut
}

// ReservationRoom is a room line on a reservation. The number, type and
// nightly rate are snapshots taken at booking time; later changes to the room
// record never touch existing stays.
type ReservationRoom struct {
	ID            uuid.UUID
	ReservationID uuid.UUID
	RoomID        uuid.UUID
	RoomNumber    string
	RoomType      string
	NightlyRate   decimal.Decimal
	CreatedAt     time.Time
}

// NewReservationRoom creates a room line with booking-time snapshots
func NewReservationRoom(reservationID, roomID uuid.UUID, roomNumber, roomType string, nightlyRate decimal.Decimal) (*ReservationRoom, error) {
	if roomID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room ID cannot be empty")
	}
	if roomNumber == "" {
		return nil, shared.NewDomainError("INVALID_ROOM", "Room number cannot be empty")
	}
	if nightlyRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Nightly rate cannot be negative")
	}

	return &ReservationRoom{
		ID:            uuid.New(),
		ReservationID: reservationID,
		RoomID:        roomID,
		RoomNumber:    roomNumber,
		RoomType:      roomType,
		NightlyRate:   nightlyRate,
		CreatedAt:     time.Now(),
	}, nil
}

// Reservation represents a stay booked for a guest
// It is the aggregate root owning the room lines and the folio rows
type Reservation struct {
	shared.PropertyAggregateRoot
	Code         string
	GuestID      uuid.UUID
	GuestName    string
	CheckIn      time.Time
	CheckOut     time.Time
	Status       ReservationStatus
	Rooms        []ReservationRoom
	Notes        string
	CancelReason string
	CancelledAt  *time.Time
	CheckedOutAt *time.Time
}

// NewReservation creates a new confirmed reservation
func NewReservation(propertyID uuid.UUID, code string, guestID uuid.UUID, guestName string, checkIn, checkOut time.Time) (*Reservation, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Reservation code cannot be empty")
	}
	if guestID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_GUEST", "Guest ID cannot be empty")
	}
	if guestName == "" {
		return nil, shared.NewDomainError("INVALID_GUEST_NAME", "Guest name cannot be empty")
	}
	if err := validateStay(checkIn, checkOut); err != nil {
		return nil, err
	}

	r := &Reservation{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Code:                  code,
		GuestID:               guestID,
		GuestName:             guestName,
		CheckIn:               checkIn,
		CheckOut:              checkOut,
		Status:                ReservationStatusConfirmed,
		Rooms:                 make([]ReservationRoom, 0),
	}

	r.AddDomainEvent(NewReservationCreatedEvent(r))

	return r, nil
}

// AddRoom adds a room line with booking-time snapshots
func (r *Reservation) AddRoom(roomID uuid.UUID, roomNumber, roomType string, nightlyRate decimal.Decimal) (*ReservationRoom, error) {
	if r.Status.IsTerminal() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add rooms to a closed reservation")
	}
	for _, line := range r.Rooms {
		if line.RoomID == roomID {
			return nil, shared.NewDomainError("DUPLICATE_ROOM", "Room is already on this reservation")
		}
	}

	line, err := NewReservationRoom(r.ID, roomID, roomNumber, roomType, nightlyRate)
	if err != nil {
		return nil, err
	}

	r.Rooms = append(r.Rooms, *line)
	r.UpdatedAt = time.Now()

	return line, nil
}

// UpdateStay changes the check-in/check-out dates
func (r *Reservation) UpdateStay(checkIn, checkOut time.Time) error {
	if r.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change dates on a closed reservation")
	}
	if err := validateStay(checkIn, checkOut); err != nil {
		return err
	}

	r.CheckIn = checkIn
	r.CheckOut = checkOut
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReservationUpdatedEvent(r))

	return nil
}

// SetNotes sets the reservation notes
func (r *Reservation) SetNotes(notes string) {
	r.Notes = notes
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}

// Cancel cancels the reservation with a reason. Historical folio rows are
// kept intact; only new postings are refused afterwards.
func (r *Reservation) Cancel(reason string) error {
	if !r.Status.CanTransitionTo(ReservationStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed reservations can be cancelled")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancellation reason cannot be empty")
	}

	now := time.Now()
	r.Status = ReservationStatusCancelled
	r.CancelReason = reason
	r.CancelledAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReservationCancelledEvent(r, reason))

	return nil
}

// Complete closes the reservation after the guest departs
func (r *Reservation) Complete() error {
	if !r.Status.CanTransitionTo(ReservationStatusCheckedOut) {
		return shared.NewDomainError("INVALID_STATE", "Only confirmed reservations can be checked out")
	}

	now := time.Now()
	r.Status = ReservationStatusCheckedOut
	r.CheckedOutAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReservationCheckedOutEvent(r))

	return nil
}

// AcceptsPostings returns true if folio rows may still be added or changed
func (r *Reservation) AcceptsPostings() bool {
	return !r.Status.IsTerminal()
}

// Nights returns the number of nights for the stay. A same-day span is a
// valid zero-night stay (day use).
func (r *Reservation) Nights() int {
	return NightsBetween(r.CheckIn, r.CheckOut)
}

// NightsBetween returns the calendar nights between two dates, never
// negative. The clock components are ignored: a 14:00 check-in and an 11:00
// check-out three days later is still a three-night stay.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := truncateToDate(checkIn)
	out := truncateToDate(checkOut.In(checkIn.Location()))
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 0 {
		return 0
	}
	return nights
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func validateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return shared.NewDomainError("INVALID_DATES", "Check-in and check-out dates are required")
	}
	if checkOut.Before(checkIn) {
		return shared.NewDomainError("INVALID_DATES", "Check-out cannot be before check-in")
	}
	return nil
}
