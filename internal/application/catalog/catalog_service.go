package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hoteldesk/backend/internal/domain/catalog"
	"github.com/hoteldesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CatalogService provides application-level service and menu catalog operations
type CatalogService struct {
	serviceRepo catalog.ServiceItemRepository
	menuRepo    catalog.MenuItemRepository
	events      shared.EventPublisher
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(serviceRepo catalog.ServiceItemRepository, menuRepo catalog.MenuItemRepository) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		menuRepo:    menuRepo,
	}
}

// WithEventPublisher wires a domain event publisher. Without one the service
// runs normally and recorded events are simply discarded.
func (s *CatalogService) WithEventPublisher(p shared.EventPublisher) *CatalogService {
	s.events = p
	return s
}

// CatalogItemResponse represents a catalog item in API responses
type CatalogItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	Title       string          `json:"title"`
	Category    string          `json:"category,omitempty"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SaveCatalogItemRequest represents a request to create or update a catalog item
type SaveCatalogItemRequest struct {
	Title       string          `json:"title" binding:"required"`
	Category    string          `json:"category"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	Description string          `json:"description"`
	Active      *bool           `json:"active"`
}

// CatalogListFilter defines filtering options for catalog list queries
type CatalogListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ===================== Service catalog =====================

// CreateServiceItem adds a service to the catalog
func (s *CatalogService) CreateServiceItem(ctx context.Context, propertyID uuid.UUID, req SaveCatalogItemRequest) (*CatalogItemResponse, error) {
	item, err := catalog.NewServiceItem(propertyID, req.Title, req.Rate)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := item.Update(req.Title, req.Rate, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.serviceRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, item)

	return serviceItemResponse(item), nil
}

// GetServiceItem gets a service item by ID
func (s *CatalogService) GetServiceItem(ctx context.Context, propertyID, id uuid.UUID) (*CatalogItemResponse, error) {
	item, err := s.serviceRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Service item not found")
	}
	return serviceItemResponse(item), nil
}

// UpdateServiceItem updates a service item
func (s *CatalogService) UpdateServiceItem(ctx context.Context, propertyID, id uuid.UUID, req SaveCatalogItemRequest) (*CatalogItemResponse, error) {
	item, err := s.serviceRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Service item not found")
	}

	if err := item.Update(req.Title, req.Rate, req.Description); err != nil {
		return nil, err
	}
	if req.Active != nil {
		item.SetActive(*req.Active)
	}

	if err := s.serviceRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, item)

	return serviceItemResponse(item), nil
}

// ListServiceItems lists service catalog entries
func (s *CatalogService) ListServiceItems(ctx context.Context, propertyID uuid.UUID, filter CatalogListFilter) ([]CatalogItemResponse, int64, error) {
	domainFilter := listFilter(filter)

	items, err := s.serviceRepo.FindAllForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.serviceRepo.CountForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CatalogItemResponse, len(items))
	for i, item := range items {
		responses[i] = *serviceItemResponse(&item)
	}
	return responses, total, nil
}

// DeleteServiceItem deletes a service item
func (s *CatalogService) DeleteServiceItem(ctx context.Context, propertyID, id uuid.UUID) error {
	item, err := s.serviceRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return shared.NewDomainError("NOT_FOUND", "Service item not found")
	}
	return s.serviceRepo.DeleteForProperty(ctx, propertyID, id)
}

// ===================== Menu catalog =====================

// CreateMenuItem adds a menu item
func (s *CatalogService) CreateMenuItem(ctx context.Context, propertyID uuid.UUID, req SaveCatalogItemRequest) (*CatalogItemResponse, error) {
	item, err := catalog.NewMenuItem(propertyID, req.Title, req.Category, req.Rate)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := item.Update(req.Title, req.Category, req.Rate, req.Description); err != nil {
			return nil, err
		}
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, item)

	return menuItemResponse(item), nil
}

// GetMenuItem gets a menu item by ID
func (s *CatalogService) GetMenuItem(ctx context.Context, propertyID, id uuid.UUID) (*CatalogItemResponse, error) {
	item, err := s.menuRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Menu item not found")
	}
	return menuItemResponse(item), nil
}

// UpdateMenuItem updates a menu item
func (s *CatalogService) UpdateMenuItem(ctx context.Context, propertyID, id uuid.UUID, req SaveCatalogItemRequest) (*CatalogItemResponse, error) {
	item, err := s.menuRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Menu item not found")
	}

	if err := item.Update(req.Title, req.Category, req.Rate, req.Description); err != nil {
		return nil, err
	}
	if req.Active != nil {
		item.SetActive(*req.Active)
	}

	if err := s.menuRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	shared.PublishEvents(ctx, s.events, item)

	return menuItemResponse(item), nil
}

// ListMenuItems lists menu catalog entries
func (s *CatalogService) ListMenuItems(ctx context.Context, propertyID uuid.UUID, filter CatalogListFilter) ([]CatalogItemResponse, int64, error) {
	domainFilter := listFilter(filter)

	var items []catalog.MenuItem
	var err error
	if filter.Category != "" {
		items, err = s.menuRepo.FindByCategory(ctx, propertyID, filter.Category, domainFilter)
	} else {
		items, err = s.menuRepo.FindAllForProperty(ctx, propertyID, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.menuRepo.CountForProperty(ctx, propertyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CatalogItemResponse, len(items))
	for i, item := range items {
		responses[i] = *menuItemResponse(&item)
	}
	return responses, total, nil
}

// DeleteMenuItem deletes a menu item
func (s *CatalogService) DeleteMenuItem(ctx context.Context, propertyID, id uuid.UUID) error {
	item, err := s.menuRepo.FindByIDForProperty(ctx, propertyID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return shared.NewDomainError("NOT_FOUND", "Menu item not found")
	}
	return s.menuRepo.DeleteForProperty(ctx, propertyID, id)
}

func listFilter(filter CatalogListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	return domainFilter
}

func serviceItemResponse(item *catalog.ServiceItem) *CatalogItemResponse {
	return &CatalogItemResponse{
		ID:          item.ID,
		PropertyID:  item.PropertyID,
		Title:       item.Title,
		Rate:        item.Rate,
		Description: item.Description,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func menuItemResponse(item *catalog.MenuItem) *CatalogItemResponse {
	return &CatalogItemResponse{
		ID:          item.ID,
		PropertyID:  item.PropertyID,
		Title:       item.Title,
		Category:    item.Category,
		Rate:        item.Rate,
		Description: item.Description,
		Active:      item.Active,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
