package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeExpenseRecord = "ExpenseRecord"

// Event type constants
const (
	EventTypeExpenseRecordCreated = "ExpenseRecordCreated"
	EventTypeExpenseRecordUpdated = "ExpenseRecordUpdated"
	EventTypeExpenseRecordDeleted = "ExpenseRecordDeleted"
)

// ExpenseRecordCreatedEvent is published when an expense is recorded
type ExpenseRecordCreatedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID       `json:"expense_id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      ExpenseCategory `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	IncurredAt    time.Time       `json:"incurred_at"`
}

// NewExpenseRecordCreatedEvent creates a new ExpenseRecordCreatedEvent
func NewExpenseRecordCreatedEvent(e *ExpenseRecord) *ExpenseRecordCreatedEvent {
	return &ExpenseRecordCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseRecordCreated, AggregateTypeExpenseRecord, e.ID, e.PropertyID),
		ExpenseID:       e.ID,
		ExpenseNumber:   e.ExpenseNumber,
		Category:        e.Category,
		Amount:          e.Amount,
		IncurredAt:      e.IncurredAt,
	}
}

// ExpenseRecordUpdatedEvent is published when an expense is changed
type ExpenseRecordUpdatedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID       `json:"expense_id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      ExpenseCategory `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewExpenseRecordUpdatedEvent creates a new ExpenseRecordUpdatedEvent
func NewExpenseRecordUpdatedEvent(e *ExpenseRecord) *ExpenseRecordUpdatedEvent {
	return &ExpenseRecordUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseRecordUpdated, AggregateTypeExpenseRecord, e.ID, e.PropertyID),
		ExpenseID:       e.ID,
		ExpenseNumber:   e.ExpenseNumber,
		Category:        e.Category,
		Amount:          e.Amount,
	}
}

// ExpenseRecordDeletedEvent is published when an expense is deleted
type ExpenseRecordDeletedEvent struct {
	shared.BaseDomainEvent
	ExpenseID     uuid.UUID `json:"expense_id"`
	ExpenseNumber string    `json:"expense_number"`
}

// NewExpenseRecordDeletedEvent creates a new ExpenseRecordDeletedEvent
func NewExpenseRecordDeletedEvent(e *ExpenseRecord) *ExpenseRecordDeletedEvent {
	return &ExpenseRecordDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseRecordDeleted, AggregateTypeExpenseRecord, e.ID, e.PropertyID),
		ExpenseID:       e.ID,
		ExpenseNumber:   e.ExpenseNumber,
	}
}
