package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/hoteldesk/backend/internal/domain/identity"
	"github.com/hoteldesk/backend/internal/domain/shared"
)

// PropertyService exposes the property record shown on invoices and the
// settings page
type PropertyService struct {
	propertyRepo identity.PropertyRepository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo identity.PropertyRepository) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo}
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Email   string    `json:"email,omitempty"`
	Status  string    `json:"status"`
}

// UpdatePropertyRequest represents a request to update the property record
type UpdatePropertyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// GetProperty returns the property record
func (s *PropertyService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyResponse, error) {
	property, err := s.findProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return toPropertyResponse(property), nil
}

// UpdateProperty updates the property's name and contact block
func (s *PropertyService) UpdateProperty(ctx context.Context, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	property, err := s.findProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if err := property.Update(req.Name, req.Address, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}

	return toPropertyResponse(property), nil
}

func (s *PropertyService) findProperty(ctx context.Context, propertyID uuid.UUID) (*identity.Property, error) {
	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Property not found")
	}
	return property, nil
}

func toPropertyResponse(p *identity.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:      p.ID,
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
		Email:   p.Email,
		Status:  string(p.Status),
	}
}
