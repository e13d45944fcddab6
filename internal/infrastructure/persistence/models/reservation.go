package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/shopspring/decimal"
)

// ReservationModel is the persistence model for the Reservation aggregate.
// Room lines live in their own table and are loaded with the aggregate.
type ReservationModel struct {
	PropertyAggregateModel
	Code         string                        `gorm:"type:varchar(50);not null;uniqueIndex:idx_reservation_property_code,priority:2"`
	GuestID      uuid.UUID                     `gorm:"type:uuid;not null;index"`
	GuestName    string                        `gorm:"type:varchar(200);not null"`
	CheckIn      time.Time                     `gorm:"not null;index"`
	CheckOut     time.Time                     `gorm:"not null;index"`
	Status       reservation.ReservationStatus `gorm:"type:varchar(20);not null;default:'confirmed';index"`
	Notes        string                        `gorm:"type:text"`
	CancelReason string                        `gorm:"type:text"`
	CancelledAt  *time.Time
	CheckedOutAt *time.Time
	Rooms        []ReservationRoomModel `gorm:"foreignKey:ReservationID"`
}

// TableName returns the table name for GORM
func (ReservationModel) TableName() string {
	return "reservations"
}

// ToDomain converts the persistence model to a domain Reservation aggregate.
func (m *ReservationModel) ToDomain() *reservation.Reservation {
	rooms := make([]reservation.ReservationRoom, len(m.Rooms))
	for i, line := range m.Rooms {
		rooms[i] = *line.ToDomain()
	}
	return &reservation.Reservation{
		PropertyAggregateRoot: m.ToPropertyAggregateRoot(),
		Code:                  m.Code,
		GuestID:               m.GuestID,
		GuestName:             m.GuestName,
		CheckIn:               m.CheckIn,
		CheckOut:              m.CheckOut,
		Status:                m.Status,
		Rooms:                 rooms,
		Notes:                 m.Notes,
		CancelReason:          m.CancelReason,
		CancelledAt:           m.CancelledAt,
		CheckedOutAt:          m.CheckedOutAt,
	}
}

// FromDomain populates the persistence model from a domain Reservation aggregate.
func (m *ReservationModel) FromDomain(r *reservation.Reservation) {
	m.FromDomainPropertyAggregateRoot(r.PropertyAggregateRoot)
	m.Code = r.Code
	m.GuestID = r.GuestID
	m.GuestName = r.GuestName
	m.CheckIn = r.CheckIn
	m.CheckOut = r.CheckOut
	m.Status = r.Status
	m.Notes = r.Notes
	m.CancelReason = r.CancelReason
	m.CancelledAt = r.CancelledAt
	m.CheckedOutAt = r.CheckedOutAt

	m.Rooms = make([]ReservationRoomModel, len(r.Rooms))
	for i, line := range r.Rooms {
		m.Rooms[i].FromDomain(&line)
	}
}

// ReservationModelFromDomain creates a new persistence model from a domain Reservation aggregate.
func ReservationModelFromDomain(r *reservation.Reservation) *ReservationModel {
	m := &ReservationModel{}
	m.FromDomain(r)
	return m
}

// ReservationRoomModel is the persistence model for a reservation room line.
// Room number, type and rate are booking-time snapshots.
type ReservationRoomModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReservationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RoomID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	RoomNumber    string          `gorm:"type:varchar(20);not null"`
	RoomType      string          `gorm:"type:varchar(20);not null"`
	NightlyRate   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReservationRoomModel) TableName() string {
	return "reservation_rooms"
}

// ToDomain converts the persistence model to a domain room line.
func (m *ReservationRoomModel) ToDomain() *reservation.ReservationRoom {
	return &reservation.ReservationRoom{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		RoomID:        m.RoomID,
		RoomNumber:    m.RoomNumber,
		RoomType:      m.RoomType,
		NightlyRate:   m.NightlyRate,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain room line.
func (m *ReservationRoomModel) FromDomain(line *reservation.ReservationRoom) {
	m.ID = line.ID
	m.ReservationID = line.ReservationID
	m.RoomID = line.RoomID
	m.RoomNumber = line.RoomNumber
	m.RoomType = line.RoomType
	m.NightlyRate = line.NightlyRate
	m.CreatedAt = line.CreatedAt
}
