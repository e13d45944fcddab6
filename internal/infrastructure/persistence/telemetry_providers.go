package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoteldesk/backend/internal/domain/reservation"
)

// GormOccupancyProvider reports how many rooms are occupied right now by a
// non-cancelled reservation whose stay window covers the current time.
type GormOccupancyProvider struct {
	db *gorm.DB
}

// NewGormOccupancyProvider creates a new GormOccupancyProvider
func NewGormOccupancyProvider(db *gorm.DB) *GormOccupancyProvider {
	return &GormOccupancyProvider{db: db}
}

// OccupiedRoomCount counts distinct rooms with an in-house reservation
func (p *GormOccupancyProvider) OccupiedRoomCount(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	now := time.Now()
	var count int64
	err := p.db.WithContext(ctx).
		Table("reservation_rooms").
		Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
		Where("reservations.property_id = ? AND reservations.status = ?", propertyID, reservation.ReservationStatusConfirmed).
		Where("reservations.check_in <= ? AND reservations.check_out > ?", now, now).
		Distinct("reservation_rooms.room_id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GormPropertyProvider lists the property ids to collect gauges for
type GormPropertyProvider struct {
	db *gorm.DB
}

// NewGormPropertyProvider creates a new GormPropertyProvider
func NewGormPropertyProvider(db *gorm.DB) *GormPropertyProvider {
	return &GormPropertyProvider{db: db}
}

// ActivePropertyIDs returns all property ids
func (p *GormPropertyProvider) ActivePropertyIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := p.db.WithContext(ctx).
		Table("properties").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
