package reservation

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentType distinguishes an advance taken at booking from a settlement
// collected at checkout. Totals treat both the same.
type PaymentType string

const (
	PaymentTypeAdvance    PaymentType = "advance"
	PaymentTypeSettlement PaymentType = "settlement"
)

// PaymentMethod represents how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// ServiceCharge is a service posting on a reservation folio. The title and
// rate are copies of the catalog entry at posting time.
type ServiceCharge struct {
	shared.BaseEntity
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReservationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PostedAt      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ServiceCharge) TableName() string {
	return "service_charges"
}

// NewServiceCharge creates a service posting with amount = quantity * rate
func NewServiceCharge(propertyID, reservationID uuid.UUID, title string, quantity, rate decimal.Decimal, postedAt time.Time) (*ServiceCharge, error) {
	if err := validateChargeRow(reservationID, title, quantity, rate); err != nil {
		return nil, err
	}

	return &ServiceCharge{
		BaseEntity:    shared.NewBaseEntity(),
		PropertyID:    propertyID,
		ReservationID: reservationID,
		Title:         strings.TrimSpace(title),
		Quantity:      quantity,
		Rate:          rate,
		Amount:        quantity.Mul(rate),
		PostedAt:      postedAt,
	}, nil
}

// Update replaces the row's title, quantity and rate, recomputing the amount
func (s *ServiceCharge) Update(title string, quantity, rate decimal.Decimal) error {
	if err := validateChargeRow(s.ReservationID, title, quantity, rate); err != nil {
		return err
	}

	s.Title = strings.TrimSpace(title)
	s.Quantity = quantity
	s.Rate = rate
	s.Amount = quantity.Mul(rate)
	s.Touch()

	return nil
}

// FoodCharge is a restaurant/room-service posting on a reservation folio.
// Structurally identical to ServiceCharge but kept in its own table so the
// invoice and reports can present the two ledgers separately.
type FoodCharge struct {
	shared.BaseEntity
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReservationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title         string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PostedAt      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (FoodCharge) TableName() string {
	return "food_charges"
}

// NewFoodCharge creates a food posting with amount = quantity * rate
func NewFoodCharge(propertyID, reservationID uuid.UUID, title string, quantity, rate decimal.Decimal, postedAt time.Time) (*FoodCharge, error) {
	if err := validateChargeRow(reservationID, title, quantity, rate); err != nil {
		return nil, err
	}

	return &FoodCharge{
		BaseEntity:    shared.NewBaseEntity(),
		PropertyID:    propertyID,
		ReservationID: reservationID,
		Title:         strings.TrimSpace(title),
		Quantity:      quantity,
		Rate:          rate,
		Amount:        quantity.Mul(rate),
		PostedAt:      postedAt,
	}, nil
}

// Update replaces the row's title, quantity and rate, recomputing the amount
func (f *FoodCharge) Update(title string, quantity, rate decimal.Decimal) error {
	if err := validateChargeRow(f.ReservationID, title, quantity, rate); err != nil {
		return err
	}

	f.Title = strings.TrimSpace(title)
	f.Quantity = quantity
	f.Rate = rate
	f.Amount = quantity.Mul(rate)
	f.Touch()

	return nil
}

// Payment is a payment row on a reservation folio
type Payment struct {
	shared.BaseEntity
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReservationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type          PaymentType     `gorm:"type:varchar(20);not null"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAt        time.Time       `gorm:"not null;index"`
	Remark        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a payment row
func NewPayment(propertyID, reservationID uuid.UUID, paymentType PaymentType, method PaymentMethod, amount decimal.Decimal, paidAt time.Time) (*Payment, error) {
	if reservationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESERVATION", "Reservation ID cannot be empty")
	}
	if err := validatePaymentType(paymentType); err != nil {
		return nil, err
	}
	if err := validatePaymentMethod(method); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		BaseEntity:    shared.NewBaseEntity(),
		PropertyID:    propertyID,
		ReservationID: reservationID,
		Type:          paymentType,
		Method:        method,
		Amount:        amount,
		PaidAt:        paidAt,
	}, nil
}

// Update replaces the payment's type, method, amount and date
func (p *Payment) Update(paymentType PaymentType, method PaymentMethod, amount decimal.Decimal, paidAt time.Time) error {
	if err := validatePaymentType(paymentType); err != nil {
		return err
	}
	if err := validatePaymentMethod(method); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	p.Type = paymentType
	p.Method = method
	p.Amount = amount
	p.PaidAt = paidAt
	p.Touch()

	return nil
}

// Discount is a reduction row on a reservation folio
type Discount struct {
	shared.BaseEntity
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReservationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GrantedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Discount) TableName() string {
	return "discounts"
}

// NewDiscount creates a discount row
func NewDiscount(propertyID, reservationID uuid.UUID, name string, amount decimal.Decimal, grantedAt time.Time) (*Discount, error) {
	if reservationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RESERVATION", "Reservation ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Discount name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Discount amount must be positive")
	}

	return &Discount{
		BaseEntity:    shared.NewBaseEntity(),
		PropertyID:    propertyID,
		ReservationID: reservationID,
		Name:          strings.TrimSpace(name),
		Amount:        amount,
		GrantedAt:     grantedAt,
	}, nil
}

// Update replaces the discount's name, amount and date
func (d *Discount) Update(name string, amount decimal.Decimal, grantedAt time.Time) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Discount name cannot be empty")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Discount amount must be positive")
	}

	d.Name = strings.TrimSpace(name)
	d.Amount = amount
	d.GrantedAt = grantedAt
	d.Touch()

	return nil
}

// Validation functions

func validateChargeRow(reservationID uuid.UUID, title string, quantity, rate decimal.Decimal) error {
	if reservationID == uuid.Nil {
		return shared.NewDomainError("INVALID_RESERVATION", "Reservation ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if !quantity.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}
	if !quantity.Mul(rate).IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Charge amount must be positive")
	}
	return nil
}

func validatePaymentType(t PaymentType) error {
	switch t {
	case PaymentTypeAdvance, PaymentTypeSettlement:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be 'advance' or 'settlement'")
	}
}

func validatePaymentMethod(m PaymentMethod) error {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer:
		return nil
	default:
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be 'cash', 'card', or 'bank_transfer'")
	}
}
