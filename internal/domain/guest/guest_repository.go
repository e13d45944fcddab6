package guest

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// GuestRepository defines the interface for guest persistence
type GuestRepository interface {
	// FindByID finds a guest by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Guest, error)

	// FindByIDForProperty finds a guest by ID within a property
	FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*Guest, error)

	// FindByDocument finds a guest by identity document value within a property
	FindByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (*Guest, error)

	// FindByPhone finds a guest by phone number within a property
	FindByPhone(ctx context.Context, propertyID uuid.UUID, phone string) (*Guest, error)

	// FindAllForProperty finds all guests for a property
	FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Guest, error)

	// FindByIDs finds multiple guests by their IDs
	FindByIDs(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) ([]Guest, error)

	// Save creates or updates a guest
	Save(ctx context.Context, guest *Guest) error

	// SaveWithLock saves a guest with optimistic locking (version check)
	SaveWithLock(ctx context.Context, guest *Guest) error

	// DeleteForProperty deletes a guest within a property
	DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error

	// CountForProperty counts guests for a property
	CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByDocument checks if a guest with the given document exists in the property
	ExistsByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (bool, error)
}
