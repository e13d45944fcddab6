package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/hoteldesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReservationRepository implements ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID finds a reservation by its ID, room lines included
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var model models.ReservationModel
	if err := r.db.WithContext(ctx).
		Preload("Rooms", roomLineOrder).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForProperty finds a reservation by ID within a property
func (r *GormReservationRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*reservation.Reservation, error) {
	var model models.ReservationModel
	if err := r.db.WithContext(ctx).
		Preload("Rooms", roomLineOrder).
		Where("property_id = ? AND id = ?", propertyID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a reservation by its code within a property
func (r *GormReservationRepository) FindByCode(ctx context.Context, propertyID uuid.UUID, code string) (*reservation.Reservation, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Reservation code cannot be empty")
	}
	var model models.ReservationModel
	if err := r.db.WithContext(ctx).
		Preload("Rooms", roomLineOrder).
		Where("property_id = ? AND code = ?", propertyID, code).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForProperty finds all reservations for a property
func (r *GormReservationRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]reservation.Reservation, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ReservationModel{}).Where("property_id = ?", propertyID),
		filter,
	)
	return r.findReservations(query)
}

// FindByGuest finds reservations for a guest within a property
func (r *GormReservationRepository) FindByGuest(ctx context.Context, propertyID, guestID uuid.UUID, filter shared.Filter) ([]reservation.Reservation, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ReservationModel{}).
			Where("property_id = ? AND guest_id = ?", propertyID, guestID),
		filter,
	)
	return r.findReservations(query)
}

// FindByStatus finds reservations by status within a property
func (r *GormReservationRepository) FindByStatus(ctx context.Context, propertyID uuid.UUID, status reservation.ReservationStatus, filter shared.Filter) ([]reservation.Reservation, error) {
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ReservationModel{}).
			Where("property_id = ? AND status = ?", propertyID, status),
		filter,
	)
	return r.findReservations(query)
}

// FindOverlapping finds non-cancelled reservations overlapping [from, to).
// Overlap means check_in < to AND check_out > from.
func (r *GormReservationRepository) FindOverlapping(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]reservation.Reservation, error) {
	query := r.db.WithContext(ctx).Model(&models.ReservationModel{}).
		Where("property_id = ? AND status <> ?", propertyID, reservation.ReservationStatusCancelled).
		Where("check_in < ? AND check_out > ?", to, from).
		Order("check_in ASC")
	return r.findReservations(query)
}

// FindInRange finds reservations whose stay intersects [from, to)
func (r *GormReservationRepository) FindInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]reservation.Reservation, error) {
	query := r.db.WithContext(ctx).Model(&models.ReservationModel{}).
		Where("property_id = ?", propertyID).
		Where("check_in < ? AND check_out > ?", to, from).
		Order("check_in ASC")
	return r.findReservations(query)
}

// Save creates or updates a reservation and its room lines.
// Room lines are replaced wholesale so line removals take effect.
func (r *GormReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	model := models.ReservationModelFromDomain(res)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Rooms").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("reservation_id = ?", model.ID).
			Delete(&models.ReservationRoomModel{}).Error; err != nil {
			return err
		}
		if len(model.Rooms) == 0 {
			return nil
		}
		return tx.Create(&model.Rooms).Error
	})
}

// SaveWithLock saves a reservation with optimistic locking (version check).
// Returns error if the version has changed (concurrent modification).
func (r *GormReservationRepository) SaveWithLock(ctx context.Context, res *reservation.Reservation) error {
	model := models.ReservationModelFromDomain(res)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ReservationModel{}).
			Where("id = ? AND version = ?", model.ID, res.Version-1).
			Omit("Rooms").
			Updates(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The reservation has been modified by another transaction")
		}
		if err := tx.Where("reservation_id = ?", model.ID).
			Delete(&models.ReservationRoomModel{}).Error; err != nil {
			return err
		}
		if len(model.Rooms) == 0 {
			return nil
		}
		return tx.Create(&model.Rooms).Error
	})
}

// CountForProperty counts reservations for a property
func (r *GormReservationRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ReservationModel{}).Where("property_id = ?", propertyID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateReservationCode generates the next RSV-YYYYMM-NNNNN code for the property
func (r *GormReservationRepository) GenerateReservationCode(ctx context.Context, propertyID uuid.UUID) (string, error) {
	var count int64
	yearMonth := time.Now().Format("200601")

	if err := r.db.WithContext(ctx).Model(&models.ReservationModel{}).
		Where("property_id = ? AND code LIKE ?", propertyID, fmt.Sprintf("RSV-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("RSV-%s-%05d", yearMonth, count+1), nil
}

// findReservations runs the prepared query with room lines preloaded
func (r *GormReservationRepository) findReservations(query *gorm.DB) ([]reservation.Reservation, error) {
	var reservationModels []models.ReservationModel
	if err := query.Preload("Rooms", roomLineOrder).Find(&reservationModels).Error; err != nil {
		return nil, err
	}

	reservations := make([]reservation.Reservation, len(reservationModels))
	for i, model := range reservationModels {
		reservations[i] = *model.ToDomain()
	}
	return reservations, nil
}

// roomLineOrder keeps preloaded room lines in a stable order
func roomLineOrder(db *gorm.DB) *gorm.DB {
	return db.Order("room_number ASC")
}

// applyFilter applies filter options to the query
func (r *GormReservationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ReservationSortFields, "check_in")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReservationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR guest_name LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "guest_id":
			query = query.Where("guest_id = ?", value)
		case "check_in_from":
			query = query.Where("check_in >= ?", value)
		case "check_in_to":
			query = query.Where("check_in < ?", value)
		}
	}

	return query
}

// Ensure GormReservationRepository implements ReservationRepository
var _ reservation.ReservationRepository = (*GormReservationRepository)(nil)
