package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/reservation"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFolioRepository implements FolioRepository using GORM.
// Each folio row kind lives in its own table keyed by reservation ID.
type GormFolioRepository struct {
	db *gorm.DB
}

// NewGormFolioRepository creates a new GormFolioRepository
func NewGormFolioRepository(db *gorm.DB) *GormFolioRepository {
	return &GormFolioRepository{db: db}
}

// FindServiceCharges lists service postings for a reservation
func (r *GormFolioRepository) FindServiceCharges(ctx context.Context, reservationID uuid.UUID) ([]reservation.ServiceCharge, error) {
	var rows []reservation.ServiceCharge
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("posted_at ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindServiceChargeByID finds a single service posting
func (r *GormFolioRepository) FindServiceChargeByID(ctx context.Context, reservationID, id uuid.UUID) (*reservation.ServiceCharge, error) {
	var row reservation.ServiceCharge
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ? AND id = ?", reservationID, id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// SaveServiceCharge creates or updates a service posting
func (r *GormFolioRepository) SaveServiceCharge(ctx context.Context, row *reservation.ServiceCharge) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// DeleteServiceCharge deletes a service posting
func (r *GormFolioRepository) DeleteServiceCharge(ctx context.Context, reservationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&reservation.ServiceCharge{}, "reservation_id = ? AND id = ?", reservationID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindFoodCharges lists food postings for a reservation
func (r *GormFolioRepository) FindFoodCharges(ctx context.Context, reservationID uuid.UUID) ([]reservation.FoodCharge, error) {
	var rows []reservation.FoodCharge
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("posted_at ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindFoodChargeByID finds a single food posting
func (r *GormFolioRepository) FindFoodChargeByID(ctx context.Context, reservationID, id uuid.UUID) (*reservation.FoodCharge, error) {
	var row reservation.FoodCharge
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ? AND id = ?", reservationID, id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// SaveFoodCharge creates or updates a food posting
func (r *GormFolioRepository) SaveFoodCharge(ctx context.Context, row *reservation.FoodCharge) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// DeleteFoodCharge deletes a food posting
func (r *GormFolioRepository) DeleteFoodCharge(ctx context.Context, reservationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&reservation.FoodCharge{}, "reservation_id = ? AND id = ?", reservationID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindPayments lists payments for a reservation
func (r *GormFolioRepository) FindPayments(ctx context.Context, reservationID uuid.UUID) ([]reservation.Payment, error) {
	var rows []reservation.Payment
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("paid_at ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindPaymentByID finds a single payment
func (r *GormFolioRepository) FindPaymentByID(ctx context.Context, reservationID, id uuid.UUID) (*reservation.Payment, error) {
	var row reservation.Payment
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ? AND id = ?", reservationID, id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// FindPaymentsInRange lists payments for a property with paid_at in [from, to)
func (r *GormFolioRepository) FindPaymentsInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]reservation.Payment, error) {
	var rows []reservation.Payment
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND paid_at >= ? AND paid_at < ?", propertyID, from, to).
		Order("paid_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SavePayment creates or updates a payment
func (r *GormFolioRepository) SavePayment(ctx context.Context, row *reservation.Payment) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// DeletePayment deletes a payment
func (r *GormFolioRepository) DeletePayment(ctx context.Context, reservationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&reservation.Payment{}, "reservation_id = ? AND id = ?", reservationID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindDiscounts lists discounts for a reservation
func (r *GormFolioRepository) FindDiscounts(ctx context.Context, reservationID uuid.UUID) ([]reservation.Discount, error) {
	var rows []reservation.Discount
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("granted_at ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindDiscountByID finds a single discount
func (r *GormFolioRepository) FindDiscountByID(ctx context.Context, reservationID, id uuid.UUID) (*reservation.Discount, error) {
	var row reservation.Discount
	if err := r.db.WithContext(ctx).
		Where("reservation_id = ? AND id = ?", reservationID, id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// SaveDiscount creates or updates a discount
func (r *GormFolioRepository) SaveDiscount(ctx context.Context, row *reservation.Discount) error {
	return r.db.WithContext(ctx).Save(row).Error
}

// DeleteDiscount deletes a discount
func (r *GormFolioRepository) DeleteDiscount(ctx context.Context, reservationID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&reservation.Discount{}, "reservation_id = ? AND id = ?", reservationID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormFolioRepository implements FolioRepository
var _ reservation.FolioRepository = (*GormFolioRepository)(nil)
