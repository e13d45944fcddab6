package room

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// RoomRepository defines the interface for room persistence
type RoomRepository interface {
	// FindByID finds a room by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindByIDForProperty finds a room by ID within a property
	FindByIDForProperty(ctx context.Context, propertyID, id uuid.UUID) (*Room, error)

	// FindByNumber finds a room by its number within a property
	FindByNumber(ctx context.Context, propertyID uuid.UUID, number string) (*Room, error)

	// FindAllForProperty finds all rooms for a property
	FindAllForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) ([]Room, error)

	// FindActive finds all active rooms for a property
	FindActive(ctx context.Context, propertyID uuid.UUID) ([]Room, error)

	// FindByIDs finds multiple rooms by their IDs
	FindByIDs(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) ([]Room, error)

	// FindOccupiedRoomIDs returns ids of rooms with a non-cancelled reservation
	// overlapping [from, to). Overlap means check_in < to AND check_out > from.
	FindOccupiedRoomIDs(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]uuid.UUID, error)

	// Save creates or updates a room
	Save(ctx context.Context, room *Room) error

	// SaveWithLock saves a room with optimistic locking (version check)
	SaveWithLock(ctx context.Context, room *Room) error

	// DeleteForProperty deletes a room within a property
	DeleteForProperty(ctx context.Context, propertyID, id uuid.UUID) error

	// CountForProperty counts rooms for a property
	CountForProperty(ctx context.Context, propertyID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNumber checks if a room with the given number exists in the property
	ExistsByNumber(ctx context.Context, propertyID uuid.UUID, number string) (bool, error)
}
