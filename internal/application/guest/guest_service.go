package guest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/guest"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// GuestService provides application-level guest directory operations
type GuestService struct {
	guestRepo guest.GuestRepository
	events    shared.EventPublisher
}

// NewGuestService creates a new GuestService
func NewGuestService(guestRepo guest.GuestRepository) *GuestService {
	return &GuestService{guestRepo: guestRepo}
}

// WithEventPublisher wires a domain event publisher. Without one the service
// runs normally and recorded events are simply discarded.
func (s *GuestService) WithEventPublisher(p shared.EventPublisher) *GuestService {
	s.events = p
	return s
}

// DocumentInput represents one identity document in a request
type DocumentInput struct {
	Type  string `json:"type" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// DocumentResponse represents one identity document in API responses
type DocumentResponse struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// GuestResponse represents a guest in API responses
type GuestResponse struct {
	ID          uuid.UUID          `json:"id"`
	PropertyID  uuid.UUID          `json:"property_id"`
	FullName    string             `json:"full_name"`
	Phone       string             `json:"phone,omitempty"`
	Email       string             `json:"email,omitempty"`
	Address     string             `json:"address,omitempty"`
	Nationality string             `json:"nationality,omitempty"`
	Documents   []DocumentResponse `json:"documents"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Version     int                `json:"version"`
}

// CreateGuestRequest represents a request to register a guest
type CreateGuestRequest struct {
	FullName    string          `json:"full_name" binding:"required"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	Nationality string          `json:"nationality"`
	Documents   []DocumentInput `json:"documents" binding:"required,min=1,dive"`
	Notes       string          `json:"notes"`
}

// UpdateGuestRequest represents a request to update a guest
type UpdateGuestRequest struct {
	FullName    string          `json:"full_name" binding:"required"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	Nationality string          `json:"nationality"`
	Documents   []DocumentInput `json:"documents" binding:"required,min=1,dive"`
	Notes       string          `json:"notes"`
}

func toDomainDocuments(inputs []DocumentInput) []guest.Document {
	docs := make([]guest.Document, len(inputs))
	for i, in := range inputs {
		docs[i] = guest.Document{Type: guest.DocumentType(in.Type), Value: in.Value}
	}
	return docs
}

// GuestListFilter defines filtering options for guest list queries
type GuestListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateGuest registers a new guest. Every document value must be unique
// within the property.
func (s *GuestService) CreateGuest(ctx context.Context, propertyID uuid.UUID, req CreateGuestRequest) (*GuestResponse, error) {
	for _, doc := range req.Documents {
		exists, err := s.guestRepo.ExistsByDocument(ctx, propertyID, doc.Value)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_DOCUMENT", "A guest with this document already exists")
		}
	}

	g, err := guest.NewGuest(propertyID, req.FullName, toDomainDocuments(req.Documents))
	if err != nil {
		return nil, err
	}

	if err := g.SetContact(req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	if req.Nationality != "" {
		if err := g.Update(req.FullName, req.Nationality); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		g.SetNotes(req.Notes)
	}

	if err := s.guestRepo.Save(ctx, g); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, g)

	return toGuestResponse(g), nil
}

// GetGuestByID gets a guest by ID
func (s *GuestService) GetGuestByID(ctx context.Context, propertyID, id uuid.UUID) (*GuestResponse, error) {
	g, err := s.guestRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Guest not found")
	}
	return toGuestResponse(g), nil
}

// GetGuestByDocument looks up a guest by identity document value
func (s *GuestService) GetGuestByDocument(ctx context.Context, propertyID uuid.UUID, docValue string) (*GuestResponse, error) {
	g, err := s.guestRepo.FindByDocument(ctx, propertyID, docValue)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Guest not found")
	}
	return toGuestResponse(g), nil
}

// UpdateGuest updates a guest's details
func (s *GuestService) UpdateGuest(ctx context.Context, propertyID, id uuid.UUID, req UpdateGuestRequest) (*GuestResponse, error) {
	g, err := s.guestRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Guest not found")
	}

	for _, doc := range req.Documents {
		if g.HasDocument(doc.Value) {
			continue
		}
		exists, err := s.guestRepo.ExistsByDocument(ctx, propertyID, doc.Value)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("DUPLICATE_DOCUMENT", "A guest with this document already exists")
		}
	}

	if err := g.Update(req.FullName, req.Nationality); err != nil {
		return nil, err
	}
	if err := g.SetContact(req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := g.SetDocuments(toDomainDocuments(req.Documents)); err != nil {
		return nil, err
	}
	g.SetNotes(req.Notes)

	if err := s.guestRepo.SaveWithLock(ctx, g); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, g)

	return toGuestResponse(g), nil
}

// ListGuests lists guests with filtering
func (s *GuestService) ListGuests(ctx context.Context, propertyID uuid.UUID, filter GuestListFilter) ([]GuestResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	guests, err := s.guestRepo.FindAllForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.guestRepo.CountForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]GuestResponse, len(guests))
	for i, g := range guests {
		responses[i] = *toGuestResponse(&g)
	}

	return responses, total, nil
}

// DeleteGuest deletes a guest from the directory
func (s *GuestService) DeleteGuest(ctx context.Context, propertyID, id uuid.UUID) error {
	g, err := s.guestRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return err
	}
	if g == nil {
		return shared.NewDomainError("NOT_FOUND", "Guest not found")
	}

	return s.guestRepo.DeleteForProperty(ctx, propertyID, id)
}

func toGuestResponse(g *guest.Guest) *GuestResponse {
	docs := make([]DocumentResponse, len(g.Documents))
	for i, d := range g.Documents {
		docs[i] = DocumentResponse{Type: string(d.Type), Value: d.Value}
	}
	return &GuestResponse{
		ID:          g.ID,
		PropertyID:  g.PropertyID,
		FullName:    g.FullName,
		Phone:       g.Phone,
		Email:       g.Email,
		Address:     g.Address,
		Nationality: g.Nationality,
		Documents:   docs,
		Notes:       g.Notes,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
		Version:     g.Version,
	}
}
