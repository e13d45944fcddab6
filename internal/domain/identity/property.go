package identity

import (
	"strings"
	"time"

	"github.com/hoteldesk/backend/internal/domain/shared"
)

// PropertyStatus represents the status of a property
type PropertyStatus string

const (
	PropertyStatusActive    PropertyStatus = "active"
	PropertyStatusSuspended PropertyStatus = "suspended"
)

// Property represents a hotel property. Every record in the system is scoped
// to one property; its name and contact block appear on printed invoices.
type Property struct {
	shared.BaseAggregateRoot
	Name    string         `gorm:"type:varchar(200);not null"`
	Address string         `gorm:"type:text"`
	Phone   string         `gorm:"type:varchar(50)"`
	Email   string         `gorm:"type:varchar(200)"`
	Status  PropertyStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Property) TableName() string {
	return "properties"
}

// NewProperty creates a new property
func NewProperty(name string) (*Property, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Property name cannot exceed 200 characters")
	}

	return &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Status:            PropertyStatusActive,
	}, nil
}

// Update updates the property's details
func (p *Property) Update(name, address, phone, email string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Property name cannot be empty")
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	p.Name = strings.TrimSpace(name)
	p.Address = address
	p.Phone = phone
	p.Email = email
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the property is active
func (p *Property) IsActive() bool {
	return p.Status == PropertyStatusActive
}
