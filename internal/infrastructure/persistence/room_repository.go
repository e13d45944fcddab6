package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/room"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRoomRepository implements RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID finds a room by its ID
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var rm room.Room
	if err := r.db.WithContext(ctx).First(&rm, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// FindByIDForProperty finds a room by ID within a property
func (r *GormRoomRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*room.Room, error) {
	var rm room.Room
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND id = ?", propertyID, id).
		First(&rm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// FindByNumber finds a room by its number within a property
func (r *GormRoomRepository) FindByNumber(ctx context.Context, propertyID uuid.UUID, number string) (*room.Room, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Room number cannot be empty")
	}
	var rm room.Room
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND number = ?", propertyID, strings.TrimSpace(number)).
		First(&rm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// FindAllForProperty finds all rooms for a property
func (r *GormRoomRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]room.Room, error) {
	var rooms []room.Room
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&room.Room{}).Where("property_id = ?", propertyID),
		filter,
	)

	if err := query.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindActive finds all active rooms for a property, ordered by number
func (r *GormRoomRepository) FindActive(ctx context.Context, propertyID uuid.UUID) ([]room.Room, error) {
	var rooms []room.Room
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND status = ?", propertyID, room.RoomStatusActive).
		Order("number ASC").
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindByIDs finds multiple rooms by their IDs
func (r *GormRoomRepository) FindByIDs(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) ([]room.Room, error) {
	if len(ids) == 0 {
		return []room.Room{}, nil
	}

	var rooms []room.Room
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND id IN ?", propertyID, ids).
		Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// FindOccupiedRoomIDs returns ids of rooms with a non-cancelled reservation
// overlapping [from, to). Overlap means check_in < to AND check_out > from.
func (r *GormRoomRepository) FindOccupiedRoomIDs(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Table("reservation_rooms").
		Joins("JOIN reservations ON reservations.id = reservation_rooms.reservation_id").
		Where("reservations.property_id = ? AND reservations.status <> ?", propertyID, reservation.ReservationStatusCancelled).
		Where("reservations.check_in < ? AND reservations.check_out > ?", to, from).
		Distinct("reservation_rooms.room_id").
		Pluck("reservation_rooms.room_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Save creates or updates a room
func (r *GormRoomRepository) Save(ctx context.Context, rm *room.Room) error {
	return r.db.WithContext(ctx).Save(rm).Error
}

// SaveWithLock saves a room with optimistic locking (version check).
// Returns error if the version has changed (concurrent modification).
func (r *GormRoomRepository) SaveWithLock(ctx context.Context, rm *room.Room) error {
	result := r.db.WithContext(ctx).
		Model(rm).
		Where("id = ? AND version = ?", rm.ID, rm.Version-1).
		Updates(rm)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The room record has been modified by another transaction")
	}
	return nil
}

// DeleteForProperty deletes a room within a property
func (r *GormRoomRepository) DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&room.Room{}, "property_id = ? AND id = ?", propertyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForProperty counts rooms for a property
func (r *GormRoomRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&room.Room{}).Where("property_id = ?", propertyID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a room with the given number exists in the property
func (r *GormRoomRepository) ExistsByNumber(ctx context.Context, propertyID uuid.UUID, number string) (bool, error) {
	if number == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&room.Room{}).
		Where("property_id = ? AND number = ?", propertyID, strings.TrimSpace(number)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormRoomRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, RoomSortFields, "number")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRoomRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR description LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "floor":
			query = query.Where("floor = ?", value)
		}
	}

	return query
}

// Ensure GormRoomRepository implements RoomRepository
var _ room.RoomRepository = (*GormRoomRepository)(nil)
