package catalog

import (
	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeServiceItem = "ServiceItem"
	AggregateTypeMenuItem    = "MenuItem"
)

// Event type constants
const (
	EventTypeServiceItemCreated = "ServiceItemCreated"
	EventTypeServiceItemUpdated = "ServiceItemUpdated"
	EventTypeServiceItemDeleted = "ServiceItemDeleted"
	EventTypeMenuItemCreated    = "MenuItemCreated"
	EventTypeMenuItemUpdated    = "MenuItemUpdated"
	EventTypeMenuItemDeleted    = "MenuItemDeleted"
)

// ServiceItemCreatedEvent is published when a catalog service item is created
type ServiceItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID       `json:"item_id"`
	Title  string          `json:"title"`
	Rate   decimal.Decimal `json:"rate"`
}

// NewServiceItemCreatedEvent creates a new ServiceItemCreatedEvent
func NewServiceItemCreatedEvent(s *ServiceItem) *ServiceItemCreatedEvent {
	return &ServiceItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceItemCreated, AggregateTypeServiceItem, s.ID, s.PropertyID),
		ItemID:          s.ID,
		Title:           s.Title,
		Rate:            s.Rate,
	}
}

// ServiceItemUpdatedEvent is published when a catalog service item changes
type ServiceItemUpdatedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID       `json:"item_id"`
	Title  string          `json:"title"`
	Rate   decimal.Decimal `json:"rate"`
}

// NewServiceItemUpdatedEvent creates a new ServiceItemUpdatedEvent
func NewServiceItemUpdatedEvent(s *ServiceItem) *ServiceItemUpdatedEvent {
	return &ServiceItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeServiceItemUpdated, AggregateTypeServiceItem, s.ID, s.PropertyID),
		ItemID:          s.ID,
		Title:           s.Title,
		Rate:            s.Rate,
	}
}

// MenuItemCreatedEvent is published when a menu item is created
type MenuItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID   uuid.UUID       `json:"item_id"`
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
	Rate     decimal.Decimal `json:"rate"`
}

// NewMenuItemCreatedEvent creates a new MenuItemCreatedEvent
func NewMenuItemCreatedEvent(m *MenuItem) *MenuItemCreatedEvent {
	return &MenuItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemCreated, AggregateTypeMenuItem, m.ID, m.PropertyID),
		ItemID:          m.ID,
		Title:           m.Title,
		Category:        m.Category,
		Rate:            m.Rate,
	}
}

// MenuItemUpdatedEvent is published when a menu item changes
type MenuItemUpdatedEvent struct {
	shared.BaseDomainEvent
	ItemID   uuid.UUID       `json:"item_id"`
	Title    string          `json:"title"`
	Category string          `json:"category,omitempty"`
	Rate     decimal.Decimal `json:"rate"`
}

// NewMenuItemUpdatedEvent creates a new MenuItemUpdatedEvent
func NewMenuItemUpdatedEvent(m *MenuItem) *MenuItemUpdatedEvent {
	return &MenuItemUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMenuItemUpdated, AggregateTypeMenuItem, m.ID, m.PropertyID),
		ItemID:          m.ID,
		Title:           m.Title,
		Category:        m.Category,
		Rate:            m.Rate,
	}
}
