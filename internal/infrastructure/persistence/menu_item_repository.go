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

// GormMenuItemRepository implements MenuItemRepository using GORM
type GormMenuItemRepository struct {
	db *gorm.DB
}

// NewGormMenuItemRepository creates a new GormMenuItemRepository
func NewGormMenuItemRepository(db *gorm.DB) *GormMenuItemRepository {
	return &GormMenuItemRepository{db: db}
}

// FindByIDForProperty finds a menu item by ID within a property
func (r *GormMenuItemRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*catalog.MenuItem, error) {
	var item catalog.MenuItem
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

// FindAllForProperty finds all menu items for a property
func (r *GormMenuItemRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]catalog.MenuItem, error) {
	var items []catalog.MenuItem
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.MenuItem{}).Where("property_id = ?", propertyID),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByCategory finds menu items by category for a property
func (r *GormMenuItemRepository) FindByCategory(ctx context.Context, propertyID uuid.UUID, category string, filter shared.Filter) ([]catalog.MenuItem, error) {
	var items []catalog.MenuItem
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.MenuItem{}).
			Where("property_id = ? AND category = ?", propertyID, category),
		filter,
	)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindActive finds all active menu items for a property, ordered by category and title
func (r *GormMenuItemRepository) FindActive(ctx context.Context, propertyID uuid.UUID) ([]catalog.MenuItem, error) {
	var items []catalog.MenuItem
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND active = ?", propertyID, true).
		Order("category ASC, title ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a menu item
func (r *GormMenuItemRepository) Save(ctx context.Context, item *catalog.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteForProperty deletes a menu item within a property
func (r *GormMenuItemRepository) DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.MenuItem{}, "property_id = ? AND id = ?", propertyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForProperty counts menu items for a property
func (r *GormMenuItemRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.MenuItem{}).Where("property_id = ?", propertyID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormMenuItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, MenuItemSortFields, "title")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMenuItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR category LIKE ? OR description LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		}
	}

	return query
}

// Ensure GormMenuItemRepository implements MenuItemRepository
var _ catalog.MenuItemRepository = (*GormMenuItemRepository)(nil)
