package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/finance"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormExpenseRecordRepository implements ExpenseRecordRepository using GORM
type GormExpenseRecordRepository struct {
	db *gorm.DB
}

// NewGormExpenseRecordRepository creates a new GormExpenseRecordRepository
func NewGormExpenseRecordRepository(db *gorm.DB) *GormExpenseRecordRepository {
	return &GormExpenseRecordRepository{db: db}
}

// FindByIDForProperty finds an expense by ID within a property
func (r *GormExpenseRecordRepository) FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*finance.ExpenseRecord, error) {
	var expense finance.ExpenseRecord
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND id = ?", propertyID, id).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindByNumber finds an expense by its number within a property
func (r *GormExpenseRecordRepository) FindByNumber(ctx context.Context, propertyID uuid.UUID, number string) (*finance.ExpenseRecord, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Expense number cannot be empty")
	}
	var expense finance.ExpenseRecord
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND expense_number = ?", propertyID, number).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAllForProperty finds all expenses for a property
func (r *GormExpenseRecordRepository) FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]finance.ExpenseRecord, error) {
	var expenses []finance.ExpenseRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.ExpenseRecord{}).Where("property_id = ?", propertyID),
		filter,
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindInRange finds expenses with incurred_at in [from, to)
func (r *GormExpenseRecordRepository) FindInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]finance.ExpenseRecord, error) {
	var expenses []finance.ExpenseRecord
	if err := r.db.WithContext(ctx).
		Where("property_id = ? AND incurred_at >= ? AND incurred_at < ?", propertyID, from, to).
		Order("incurred_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// FindByCategory finds expenses by category for a property
func (r *GormExpenseRecordRepository) FindByCategory(ctx context.Context, propertyID uuid.UUID, category finance.ExpenseCategory, filter shared.Filter) ([]finance.ExpenseRecord, error) {
	var expenses []finance.ExpenseRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&finance.ExpenseRecord{}).
			Where("property_id = ? AND category = ?", propertyID, category),
		filter,
	)

	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// SumInRange totals expenses with incurred_at in [from, to)
func (r *GormExpenseRecordRepository) SumInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&finance.ExpenseRecord{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("property_id = ? AND incurred_at >= ? AND incurred_at < ?", propertyID, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumByCategoryInRange totals expenses per category with incurred_at in [from, to)
func (r *GormExpenseRecordRepository) SumByCategoryInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]finance.CategorySum, error) {
	var sums []finance.CategorySum
	if err := r.db.WithContext(ctx).
		Model(&finance.ExpenseRecord{}).
		Select("category, COALESCE(SUM(amount), 0) AS total").
		Where("property_id = ? AND incurred_at >= ? AND incurred_at < ?", propertyID, from, to).
		Group("category").
		Order("category ASC").
		Scan(&sums).Error; err != nil {
		return nil, err
	}
	return sums, nil
}

// Save creates or updates an expense
func (r *GormExpenseRecordRepository) Save(ctx context.Context, expense *finance.ExpenseRecord) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// SaveWithLock saves an expense with optimistic locking (version check).
// Returns error if the version has changed (concurrent modification).
func (r *GormExpenseRecordRepository) SaveWithLock(ctx context.Context, expense *finance.ExpenseRecord) error {
	result := r.db.WithContext(ctx).
		Model(expense).
		Where("id = ? AND version = ?", expense.ID, expense.Version-1).
		Updates(expense)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The expense record has been modified by another transaction")
	}
	return nil
}

// DeleteForProperty deletes an expense within a property
func (r *GormExpenseRecordRepository) DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.ExpenseRecord{}, "property_id = ? AND id = ?", propertyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForProperty counts expenses for a property
func (r *GormExpenseRecordRepository) CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&finance.ExpenseRecord{}).Where("property_id = ?", propertyID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateExpenseNumber generates the next EXP-YYYYMM-NNNNN number for the property
func (r *GormExpenseRecordRepository) GenerateExpenseNumber(ctx context.Context, propertyID uuid.UUID) (string, error) {
	var count int64
	yearMonth := time.Now().Format("200601")

	if err := r.db.WithContext(ctx).Model(&finance.ExpenseRecord{}).
		Where("property_id = ? AND expense_number LIKE ?", propertyID, fmt.Sprintf("EXP-%s-%%", yearMonth)).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("EXP-%s-%05d", yearMonth, count+1), nil
}

// applyFilter applies filter options to the query
func (r *GormExpenseRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ExpenseRecordSortFields, "incurred_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormExpenseRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("expense_number LIKE ? OR description LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "incurred_from":
			query = query.Where("incurred_at >= ?", value)
		case "incurred_to":
			query = query.Where("incurred_at < ?", value)
		}
	}

	return query
}

// Ensure GormExpenseRecordRepository implements ExpenseRecordRepository
var _ finance.ExpenseRecordRepository = (*GormExpenseRecordRepository)(nil)
