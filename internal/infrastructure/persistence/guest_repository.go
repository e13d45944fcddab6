package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/guest"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormGuestRepository implements GuestRepository using GORM
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGormGuestRepository creates a new GormGuestRepository
func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// FindByID finds a guest by its ID
func (r *GormGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guest.Guest, error) {
	var g guest.Guest
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// FindByIDForProperty finds a guest by ID within a property
func (r *GormGuestRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*guest.Guest, error) {
	var g guest.Guest
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("property_id = ? AND id = ?", propertyID, id).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// FindByDocument finds the guest holding an identity document with the given
// value within a property. Any of the guest's documents matches.
func (r *GormGuestRepository) FindByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (*guest.Guest, error) {
	if docValue == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT", "Document value cannot be empty")
	}
	var g guest.Guest
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("guests.property_id = ? AND guests.id IN (?)",
			propertyID,
			r.db.Model(&guest.Document{}).Select("guest_id").
				Where("property_id = ? AND value = ?", propertyID, strings.TrimSpace(docValue)),
		).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// FindByPhone finds a guest by phone number within a property
func (r *GormGuestRepository) FindByPhone(ctx context.Context, propertyID uuid.UUID, phone string) (*guest.Guest, error) {
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone cannot be empty")
	}
	var g guest.Guest
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("property_id = ? AND phone = ?", propertyID, phone).
		First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// FindAllForProperty finds all guests for a property
func (r *GormGuestRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]guest.Guest, error) {
	var guests []guest.Guest
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&guest.Guest{}).Where("property_id = ?", propertyID),
		filter,
	)

	if err := query.Preload("Documents").Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// FindByIDs finds multiple guests by their IDs
func (r *GormGuestRepository) FindByIDs(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) ([]guest.Guest, error) {
	if len(ids) == 0 {
		return []guest.Guest{}, nil
	}

	var guests []guest.Guest
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		Where("property_id = ? AND id IN ?", propertyID, ids).
		Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// Save creates or updates a guest and its document rows.
// Documents are replaced wholesale so removals take effect.
func (r *GormGuestRepository) Save(ctx context.Context, g *guest.Guest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Documents").Save(g).Error; err != nil {
			return err
		}
		if err := tx.Where("guest_id = ?", g.ID).
			Delete(&guest.Document{}).Error; err != nil {
			return err
		}
		if len(g.Documents) == 0 {
			return nil
		}
		return tx.Create(&g.Documents).Error
	})
}

// SaveWithLock saves a guest with optimistic locking (version check).
// Returns error if the version has changed (concurrent modification).
func (r *GormGuestRepository) SaveWithLock(ctx context.Context, g *guest.Guest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&guest.Guest{}).
			Where("id = ? AND version = ?", g.ID, g.Version-1).
			Omit("Documents").
			Updates(g)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The guest record has been modified by another transaction")
		}
		if err := tx.Where("guest_id = ?", g.ID).
			Delete(&guest.Document{}).Error; err != nil {
			return err
		}
		if len(g.Documents) == 0 {
			return nil
		}
		return tx.Create(&g.Documents).Error
	})
}

// DeleteForProperty deletes a guest within a property
func (r *GormGuestRepository) DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ? AND guest_id = ?", propertyID, id).
			Delete(&guest.Document{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&guest.Guest{}, "property_id = ? AND id = ?", propertyID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountForProperty counts guests for a property
func (r *GormGuestRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&guest.Guest{}).Where("property_id = ?", propertyID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByDocument checks if any guest already carries the document value in
// the property
func (r *GormGuestRepository) ExistsByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (bool, error) {
	if docValue == "" {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&guest.Document{}).
		Where("property_id = ? AND value = ?", propertyID, strings.TrimSpace(docValue)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormGuestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, GuestSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormGuestRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where(
			"full_name LIKE ? OR phone LIKE ? OR email LIKE ? OR id IN (?)",
			searchPattern, searchPattern, searchPattern,
			r.db.Model(&guest.Document{}).Select("guest_id").Where("value LIKE ?", searchPattern),
		)
	}

	for key, value := range filter.Filters {
		switch key {
		case "document_type":
			query = query.Where("id IN (?)",
				r.db.Model(&guest.Document{}).Select("guest_id").Where("type = ?", value))
		case "nationality":
			query = query.Where("nationality = ?", value)
		}
	}

	return query
}

// Ensure GormGuestRepository implements GuestRepository
var _ guest.GuestRepository = (*GormGuestRepository)(nil)
