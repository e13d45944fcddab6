package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/hoteldesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ExpenseCategory represents the category of a property expense
type ExpenseCategory string

const (
	ExpenseCategoryUtilities   ExpenseCategory = "UTILITIES"
	ExpenseCategorySalary      ExpenseCategory = "SALARY"
	ExpenseCategorySupplies    ExpenseCategory = "SUPPLIES"
	ExpenseCategoryKitchen     ExpenseCategory = "KITCHEN"
	ExpenseCategoryLaundry     ExpenseCategory = "LAUNDRY"
	ExpenseCategoryMaintenance ExpenseCategory = "MAINTENANCE"
	ExpenseCategoryMarketing   ExpenseCategory = "MARKETING"
	ExpenseCategoryCommission  ExpenseCategory = "COMMISSION"
	ExpenseCategoryTax         ExpenseCategory = "TAX"
	ExpenseCategoryOther       ExpenseCategory = "OTHER"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseCategoryUtilities, ExpenseCategorySalary, ExpenseCategorySupplies,
		ExpenseCategoryKitchen, ExpenseCategoryLaundry, ExpenseCategoryMaintenance,
		ExpenseCategoryMarketing, ExpenseCategoryCommission, ExpenseCategoryTax,
		ExpenseCategoryOther:
		return true
	}
	return false
}

// String returns the string representation of ExpenseCategory
func (c ExpenseCategory) String() string {
	return string(c)
}

// PaymentMethod represents how an expense was paid out
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// ExpenseRecord represents a property running cost (utilities, salaries,
// kitchen purchases and the like). Expenses enter the merged ledger and the
// summary report as negative flow.
type ExpenseRecord struct {
	shared.PropertyAggregateRoot
	ExpenseNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_expense_property_number,priority:2"`
	Category      ExpenseCategory `gorm:"type:varchar(30);not null"`
	Description   string          `gorm:"type:varchar(500);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IncurredAt    time.Time       `gorm:"not null;index"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null"`
	Remark        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ExpenseRecord) TableName() string {
	return "expense_records"
}

// NewExpenseRecord creates a new expense record
func NewExpenseRecord(
	propertyID uuid.UUID,
	expenseNumber string,
	category ExpenseCategory,
	amount valueobject.Money,
	description string,
	incurredAt time.Time,
	method PaymentMethod,
) (*ExpenseRecord, error) {
	if expenseNumber == "" {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot be empty")
	}
	if len(expenseNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_EXPENSE_NUMBER", "Expense number cannot exceed 50 characters")
	}
	if err := validateExpense(category, amount.Amount(), description, method); err != nil {
		return nil, err
	}

	expense := &ExpenseRecord{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		ExpenseNumber:         expenseNumber,
		Category:              category,
		Description:           description,
		Amount:                amount.Amount(),
		IncurredAt:            incurredAt,
		PaymentMethod:         method,
	}

	expense.AddDomainEvent(NewExpenseRecordCreatedEvent(expense))

	return expense, nil
}

// Update updates the expense details
func (e *ExpenseRecord) Update(
	category ExpenseCategory,
	amount valueobject.Money,
	description string,
	incurredAt time.Time,
	method PaymentMethod,
) error {
	if err := validateExpense(category, amount.Amount(), description, method); err != nil {
		return err
	}

	e.Category = category
	e.Amount = amount.Amount()
	e.Description = description
	e.IncurredAt = incurredAt
	e.PaymentMethod = method
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	e.AddDomainEvent(NewExpenseRecordUpdatedEvent(e))

	return nil
}

// SetRemark sets the remark
func (e *ExpenseRecord) SetRemark(remark string) {
	e.Remark = remark
	e.UpdatedAt = time.Now()
}

// GetAmountMoney returns amount as Money
func (e *ExpenseRecord) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyLKR(e.Amount)
}

func validateExpense(category ExpenseCategory, amount decimal.Decimal, description string, method PaymentMethod) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	return nil
}
