package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CategorySum is a per-category total used by the summary report
type CategorySum struct {
	Category ExpenseCategory `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ExpenseRecordRepository defines the interface for expense persistence
type ExpenseRecordRepository interface {
	// FindByIDForProperty finds an expense by ID within a property
	FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*ExpenseRecord, error)

	// FindByNumber finds an expense by its number within a property
	FindByNumber(ctx context.Context, propertyID uuid.UUID, number string) (*ExpenseRecord, error)

	// FindAllForProperty finds all expenses for a property
	FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]ExpenseRecord, error)

	// FindInRange finds expenses with incurred_at in [from, to)
	FindInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]ExpenseRecord, error)

	// FindByCategory finds expenses by category for a property
	FindByCategory(ctx context.Context, propertyID uuid.UUID, category ExpenseCategory, filter shared.Filter) ([]ExpenseRecord, error)

	// SumInRange totals expenses with incurred_at in [from, to)
	SumInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) (decimal.Decimal, error)

	// SumByCategoryInRange totals expenses per category with incurred_at in [from, to)
	SumByCategoryInRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]CategorySum, error)

	// Save creates or updates an expense
	Save(ctx context.Context, expense *ExpenseRecord) error

	// SaveWithLock saves an expense with optimistic locking (version check)
	SaveWithLock(ctx context.Context, expense *ExpenseRecord) error

	// DeleteForProperty deletes an expense within a property
	DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error

	// CountForProperty counts expenses for a property
	CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error)

	// GenerateExpenseNumber generates the next EXP-YYYYMM-NNNNN number
	GenerateExpenseNumber(ctx context.Context, propertyID uuid.UUID) (string, error)
}
