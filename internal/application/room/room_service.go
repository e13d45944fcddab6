package room

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/room"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RoomService provides application-level room inventory operations
type RoomService struct {
	roomRepo room.RoomRepository
	events   shared.EventPublisher
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo room.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

// WithEventPublisher wires a domain event publisher. Without one the service
// runs normally and recorded events are simply discarded.
func (s *RoomService) WithEventPublisher(p shared.EventPublisher) *RoomService {
	s.events = p
	return s
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	Number      string          `json:"number"`
	Type        string          `json:"type"`
	Floor       int             `json:"floor"`
	Capacity    int             `json:"capacity"`
	NightlyRate decimal.Decimal `json:"nightly_rate"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// CreateRoomRequest represents a request to add a room
type CreateRoomRequest struct {
	Number      string          `json:"number" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Floor       int             `json:"floor"`
	Capacity    int             `json:"capacity" binding:"required"`
	NightlyRate decimal.Decimal `json:"nightly_rate" binding:"required"`
	Description string          `json:"description"`
}

// UpdateRoomRequest represents a request to update a room
type UpdateRoomRequest struct {
	Number      string          `json:"number" binding:"required"`
	Type        string          `json:"type" binding:"required"`
	Floor       int             `json:"floor"`
	Capacity    int             `json:"capacity" binding:"required"`
	NightlyRate decimal.Decimal `json:"nightly_rate" binding:"required"`
	Description string          `json:"description"`
}

// RoomListFilter defines filtering options for room list queries
type RoomListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type"`
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateRoom adds a room to the inventory
func (s *RoomService) CreateRoom(ctx context.Context, propertyID uuid.UUID, req CreateRoomRequest) (*RoomResponse, error) {
	exists, err := s.roomRepo.ExistsByNumber(ctx, propertyID, req.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_NUMBER", "A room with this number already exists")
	}

	r, err := room.NewRoom(propertyID, req.Number, room.RoomType(req.Type), req.Capacity, req.NightlyRate)
	if err != nil {
		return nil, err
	}

	if req.Floor != 0 || req.Description != "" {
		if err := r.Update(room.RoomType(req.Type), req.Floor, req.Capacity, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.roomRepo.Save(ctx, r); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, r)

	return toRoomResponse(r), nil
}

// GetRoomByID gets a room by ID
func (s *RoomService) GetRoomByID(ctx context.Context, propertyID, id uuid.UUID) (*RoomResponse, error) {
	r, err := s.roomRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}
	return toRoomResponse(r), nil
}

// UpdateRoom updates a room's attributes
func (s *RoomService) UpdateRoom(ctx context.Context, propertyID, id uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error) {
	r, err := s.roomRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	if req.Number != r.Number {
		exists, err := s.roomRepo.ExistsByNumber(ctx, propertyID, req.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_NUMBER", "A room with this number already exists")
		}
		if err := r.UpdateNumber(req.Number); err != nil {
			return nil, err
		}
	}

	if err := r.Update(room.RoomType(req.Type), req.Floor, req.Capacity, req.Description); err != nil {
		return nil, err
	}
	if !req.NightlyRate.Equal(r.NightlyRate) {
		if err := r.SetNightlyRate(req.NightlyRate); err != nil {
			return nil, err
		}
	}

	if err := s.roomRepo.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, r)

	return toRoomResponse(r), nil
}

// ListRooms lists rooms with filtering
func (s *RoomService) ListRooms(ctx context.Context, propertyID uuid.UUID, filter RoomListFilter) ([]RoomResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	rooms, err := s.roomRepo.FindAllForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.roomRepo.CountForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		responses[i] = *toRoomResponse(&r)
	}

	return responses, total, nil
}

// ActivateRoom returns a room to bookable inventory
func (s *RoomService) ActivateRoom(ctx context.Context, propertyID, id uuid.UUID) (*RoomResponse, error) {
	r, err := s.roomRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	if err := r.Activate(); err != nil {
		return nil, err
	}

	if err := s.roomRepo.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, r)

	return toRoomResponse(r), nil
}

// TakeRoomOutOfService removes a room from bookable inventory
func (s *RoomService) TakeRoomOutOfService(ctx context.Context, propertyID, id uuid.UUID) (*RoomResponse, error) {
	r, err := s.roomRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	if err := r.TakeOutOfService(); err != nil {
		return nil, err
	}

	if err := s.roomRepo.SaveWithLock(ctx, r); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, r)

	return toRoomResponse(r), nil
}

// DeleteRoom deletes a room from the inventory
func (s *RoomService) DeleteRoom(ctx context.Context, propertyID, id uuid.UUID) error {
	r, err := s.roomRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return err
	}
	if r == nil {
		return shared.NewDomainError("NOT_FOUND", "Room not found")
	}

	return s.roomRepo.DeleteForProperty(ctx, propertyID, id)
}

func toRoomResponse(r *room.Room) *RoomResponse {
	return &RoomResponse{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		Number:      r.Number,
		Type:        string(r.Type),
		Floor:       r.Floor,
		Capacity:    r.Capacity,
		NightlyRate: r.NightlyRate,
		Status:      string(r.Status),
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Version:     r.Version,
	}
}
