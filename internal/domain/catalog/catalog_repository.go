package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// ServiceItemRepository defines the interface for service catalog persistence
type ServiceItemRepository interface {
	// FindByIDForProperty finds a service item by ID within a property
	FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*ServiceItem, error)

	// FindAllForProperty finds all service items for a property
	FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]ServiceItem, error)

	// FindActive finds all active service items for a property
	FindActive(ctx context.Context, propertyID uuid.UUID) ([]ServiceItem, error)

	// Save creates or updates a service item
	Save(ctx context.Context, item *ServiceItem) error

	// DeleteForProperty deletes a service item within a property
	DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error

	// CountForProperty counts service items for a property
	CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error)
}

// MenuItemRepository defines the interface for menu catalog persistence
type MenuItemRepository interface {
	// FindByIDForProperty finds a menu item by ID within a property
	FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*MenuItem, error)

	// FindAllForProperty finds all menu items for a property
	FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]MenuItem, error)

	// FindByCategory finds menu items by category for a property
	FindByCategory(ctx context.Context, propertyID uuid.UUID, category string, filter shared.Filter) ([]MenuItem, error)

	// FindActive finds all active menu items for a property
	FindActive(ctx context.Context, propertyID uuid.UUID) ([]MenuItem, error)

	// Save creates or updates a menu item
	Save(ctx context.Context, item *MenuItem) error

	// DeleteForProperty deletes a menu item within a property
	DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error

	// CountForProperty counts menu items for a property
	CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error)
}
