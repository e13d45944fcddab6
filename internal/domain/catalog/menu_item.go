package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MenuItem represents a food or beverage item on the property's menu.
// Like service items, folio rows snapshot the title and rate at posting time.
type MenuItem struct {
	shared.PropertyAggregateRoot
	Title       string          `gorm:"type:varchar(200);not null"`
	Category    string          `gorm:"type:varchar(100);index"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Description string          `gorm:"type:text"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MenuItem) TableName() string {
	return "menu_items"
}

// NewMenuItem creates a new menu item
func NewMenuItem(propertyID uuid.UUID, title, category string, rate decimal.Decimal) (*MenuItem, error) {
	if err := validateCatalogTitle(title); err != nil {
		return nil, err
	}
	if category != "" && len(category) > 100 {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	item := &MenuItem{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Title:                 strings.TrimSpace(title),
		Category:              strings.TrimSpace(category),
		Rate:                  rate,
		Active:                true,
	}

	item.AddDomainEvent(NewMenuItemCreatedEvent(item))

	return item, nil
}

// Update updates the item's title, category, rate and description
func (m *MenuItem) Update(title, category string, rate decimal.Decimal, description string) error {
	if err := validateCatalogTitle(title); err != nil {
		return err
	}
	if category != "" && len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	m.Title = strings.TrimSpace(title)
	m.Category = strings.TrimSpace(category)
	m.Rate = rate
	m.Description = description
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMenuItemUpdatedEvent(m))

	return nil
}

// SetActive toggles whether the item is offered
func (m *MenuItem) SetActive(active bool) {
	m.Active = active
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}
