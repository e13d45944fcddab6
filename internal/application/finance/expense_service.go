package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/finance"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/hoteldesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseService provides application-level expense operations
type ExpenseService struct {
	expenseRepo finance.ExpenseRecordRepository
	events      shared.EventPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo finance.ExpenseRecordRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// WithEventPublisher wires a domain event publisher. Without one the service
// runs normally and recorded events are simply discarded.
func (s *ExpenseService) WithEventPublisher(p shared.EventPublisher) *ExpenseService {
	s.events = p
	return s
}

// ExpenseResponse represents an expense record in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	ExpenseNumber string          `json:"expense_number"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	IncurredAt    time.Time       `json:"incurred_at"`
	PaymentMethod string          `json:"payment_method"`
	Remark        string          `json:"remark,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Category      string          `json:"category" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	IncurredAt    *time.Time      `json:"incurred_at"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Remark        string          `json:"remark"`
}

// UpdateExpenseRequest represents a request to update an expense
type UpdateExpenseRequest struct {
	Category      string          `json:"category" binding:"required"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	IncurredAt    time.Time       `json:"incurred_at" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required"`
	Remark        *string         `json:"remark"`
}

// ExpenseListFilter defines filtering options for expense list queries
type ExpenseListFilter struct {
	Search   string     `form:"search"`
	Category string     `form:"category"`
	FromDate *time.Time `form:"from_date"`
	ToDate   *time.Time `form:"to_date"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// CreateExpense records a new expense with a generated EXP number
func (s *ExpenseService) CreateExpense(ctx context.Context, propertyID uuid.UUID, req CreateExpenseRequest) (*ExpenseResponse, error) {
	number, err := s.expenseRepo.GenerateExpenseNumber(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	incurredAt := time.Now()
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	expense, err := finance.NewExpenseRecord(
		propertyID,
		number,
		finance.ExpenseCategory(req.Category),
		valueobject.NewMoneyLKR(req.Amount),
		req.Description,
		incurredAt,
		finance.PaymentMethod(req.PaymentMethod),
	)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		expense.SetRemark(req.Remark)
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, expense)

	return toExpenseResponse(expense), nil
}

// GetExpenseByID gets an expense by ID
func (s *ExpenseService) GetExpenseByID(ctx context.Context, propertyID, id uuid.UUID) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	return toExpenseResponse(expense), nil
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, propertyID uuid.UUID, filter ExpenseListFilter) ([]ExpenseResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Category != "" {
		domainFilter.Filters["category"] = filter.Category
	}
	if filter.FromDate != nil {
		domainFilter.Filters["from_date"] = *filter.FromDate
	}
	if filter.ToDate != nil {
		domainFilter.Filters["to_date"] = *filter.ToDate
	}

	expenses, err := s.expenseRepo.FindAllForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.expenseRepo.CountForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = *toExpenseResponse(&expenses[i])
	}

	return responses, total, nil
}

// UpdateExpense updates an expense record
func (s *ExpenseService) UpdateExpense(ctx context.Context, propertyID, id uuid.UUID, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.findExpense(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}

	if err := expense.Update(
		finance.ExpenseCategory(req.Category),
		valueobject.NewMoneyLKR(req.Amount),
		req.Description,
		req.IncurredAt,
		finance.PaymentMethod(req.PaymentMethod),
	); err != nil {
		return nil, err
	}
	if req.Remark != nil {
		expense.SetRemark(*req.Remark)
	}

	if err := s.expenseRepo.SaveWithLock(ctx, expense); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, expense)

	return toExpenseResponse(expense), nil
}

// DeleteExpense deletes an expense record
func (s *ExpenseService) DeleteExpense(ctx context.Context, propertyID, id uuid.UUID) error {
	if _, err := s.findExpense(ctx, propertyID, id); err != nil {
		return err
	}
	return s.expenseRepo.DeleteForProperty(ctx, propertyID, id)
}

func (s *ExpenseService) findExpense(ctx context.Context, propertyID, id uuid.UUID) (*finance.ExpenseRecord, error) {
	expense, err := s.expenseRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Expense not found")
	}
	return expense, nil
}

func toExpenseResponse(e *finance.ExpenseRecord) *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		PropertyID:    e.PropertyID,
		ExpenseNumber: e.ExpenseNumber,
		Category:      string(e.Category),
		Description:   e.Description,
		Amount:        e.Amount,
		IncurredAt:    e.IncurredAt,
		PaymentMethod: string(e.PaymentMethod),
		Remark:        e.Remark,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
		Version:       e.Version,
	}
}
