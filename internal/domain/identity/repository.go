package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByIDForProperty finds a user by ID within a property
	FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email within a property
	FindByEmail(ctx context.Context, propertyID uuid.UUID, email string) (*User, error)

	// FindByEmailAnyProperty finds a user by email across all properties.
	// Login identifies the property from the matched account.
	FindByEmailAnyProperty(ctx context.Context, email string) (*User, error)

	// FindAllForProperty finds all users for a property
	FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error

	// SaveWithLock saves a user with optimistic locking (version check)
	SaveWithLock(ctx context.Context, user *User) error

	// DeleteForProperty deletes a user within a property
	DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error

	// ExistsByEmail checks if a user with the given email exists in the property
	ExistsByEmail(ctx context.Context, propertyID uuid.UUID, email string) (bool, error)
}

// PropertyRepository defines the interface for property persistence
type PropertyRepository interface {
	// FindByID finds a property by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindAll finds all properties
	FindAll(ctx context.Context, filter shared.Filter) ([]Property, error)

	// Save creates or updates a property
	Save(ctx context.Context, property *Property) error
}
