package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ServiceItem represents a chargeable service in the property's catalog
// (laundry, airport pickup, late checkout and the like). Folio rows copy the
// title and rate at posting time; later catalog edits never touch past stays.
type ServiceItem struct {
	shared.PropertyAggregateRoot
	Title       string          `gorm:"type:varchar(200);not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Description string          `gorm:"type:text"`
	Active      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ServiceItem) TableName() string {
	return "service_items"
}

// NewServiceItem creates a new catalog service item
func NewServiceItem(propertyID uuid.UUID, title string, rate decimal.Decimal) (*ServiceItem, error) {
	if err := validateCatalogTitle(title); err != nil {
		return nil, err
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	item := &ServiceItem{
		PropertyAggregateRoot: shared.NewPropertyAggregateRoot(propertyID),
		Title:                 strings.TrimSpace(title),
		Rate:                  rate,
		Active:                true,
	}

	item.AddDomainEvent(NewServiceItemCreatedEvent(item))

	return item, nil
}

// Update updates the item's title, rate and description
func (s *ServiceItem) Update(title string, rate decimal.Decimal, description string) error {
	if err := validateCatalogTitle(title); err != nil {
		return err
	}
	if rate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	s.Title = strings.TrimSpace(title)
	s.Rate = rate
	s.Description = description
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewServiceItemUpdatedEvent(s))

	return nil
}

// SetActive toggles whether the item is offered
func (s *ServiceItem) SetActive(active bool) {
	s.Active = active
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

func validateCatalogTitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(trimmed) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}
