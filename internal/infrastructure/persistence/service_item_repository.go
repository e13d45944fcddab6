package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/catalog"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormServiceItemRepository implements ServiceItemRepository using GORM
type GormServiceItemRepository struct {
	db *gorm.DB
}

// NewGormServiceItemRepository creates a new GormServiceItemRepository
func NewGormServiceItemRepository(db *gorm.DB) *GormServiceItemRepository {
	return &GormServiceItemRepository{db: db}
}

// FindByIDForProperty finds a service item by ID within a property
func (r *GormServiceItemRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*catalog.ServiceItem, error) {
	var item catalog.ServiceItem
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND id = ?", propertyID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAllForProperty finds all service items for a property
func (r *GormServiceItemRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]catalog.ServiceItem, error) {
	var items []catalog.ServiceItem
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.ServiceItem{}).Where("property_id = ?", propertyID),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindActive finds all active service items for a property, ordered by title
func (r *GormServiceItemRepository) FindActive(ctx context.Context, propertyID uuid.UUID) ([]catalog.ServiceItem, error) {
	var items []catalog.ServiceItem
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND active = ?", propertyID, true).
		Order("title ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a service item
func (r *GormServiceItemRepository) Save(ctx context.Context, item *catalog.ServiceItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteForProperty deletes a service item within a property
func (r *GormServiceItemRepository) DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ServiceItem{}, "property_id = ? AND id = ?", propertyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForProperty counts service items for a property
func (r *GormServiceItemRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.ServiceItem{}).Where("property_id = ?", propertyID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormServiceItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ServiceItemSortFields, "title")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormServiceItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

// Ensure GormServiceItemRepository implements ServiceItemRepository
var _ catalog.ServiceItemRepository = (*GormServiceItemRepository)(nil)
