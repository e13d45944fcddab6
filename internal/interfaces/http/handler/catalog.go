package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/hoteldesk/backend/internal/application/catalog"
)

// CatalogHandler handles the service and menu item catalogs
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/catalog/services")
	{
		services.POST("", h.CreateServiceItem)
		services.GET("", h.ListServiceItems)
		services.GET("/:id", h.GetServiceItem)
		services.PUT("/:id", h.UpdateServiceItem)
		services.DELETE("/:id", h.DeleteServiceItem)
	}

	menu := rg.Group("/catalog/menu-items")
	{
		menu.POST("", h.CreateMenuItem)
		menu.GET("", h.ListMenuItems)
		menu.GET("/:id", h.GetMenuItem)
		menu.PUT("/:id", h.UpdateMenuItem)
		menu.DELETE("/:id", h.DeleteMenuItem)
	}
}

// CreateServiceItem adds an item to the service catalog
func (h *CatalogHandler) CreateServiceItem(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var req catalogapp.SaveCatalogItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.catalogService.CreateServiceItem(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// GetServiceItem returns a service catalog item by ID
func (h *CatalogHandler) GetServiceItem(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogService.GetServiceItem(c.Request.Context(), propertyID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ListServiceItems returns a paginated list of service catalog items
func (h *CatalogHandler) ListServiceItems(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var filter catalogapp.CatalogListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := h.catalogService.ListServiceItems(c.Request.Context(), propertyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateServiceItem modifies a service catalog item
func (h *CatalogHandler) UpdateServiceItem(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.SaveCatalogItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.catalogService.UpdateServiceItem(c.Request.Context(), propertyID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// DeleteServiceItem removes a service catalog item
func (h *CatalogHandler) DeleteServiceItem(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteServiceItem(c.Request.Context(), propertyID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateMenuItem adds an item to the food menu
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var req catalogapp.SaveCatalogItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.catalogService.CreateMenuItem(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// GetMenuItem returns a menu item by ID
func (h *CatalogHandler) GetMenuItem(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.catalogService.GetMenuItem(c.Request.Context(), propertyID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// ListMenuItems returns a paginated list of menu items
func (h *CatalogHandler) ListMenuItems(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var filter catalogapp.CatalogListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	items, total, err := h.catalogService.ListMenuItems(c.Request.Context(), propertyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateMenuItem modifies a menu item
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req catalogapp.SaveCatalogItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.catalogService.UpdateMenuItem(c.Request.Context(), propertyID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// DeleteMenuItem removes a menu item
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	itemID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteMenuItem(c.Request.Context(), propertyID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
