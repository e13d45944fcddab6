package handler

import (
	"github.com/gin-gonic/gin"
	guestapp "github.com/hoteldesk/backend/internal/application/guest"
)

// GuestHandler handles guest registry endpoints
type GuestHandler struct {
	BaseHandler
	guestService *guestapp.GuestService
}

// NewGuestHandler creates a new GuestHandler
func NewGuestHandler(guestService *guestapp.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// RegisterRoutes registers guest routes
func (h *GuestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	guests := rg.Group("/guests")
	{
		guests.POST("", h.Create)
		guests.GET("", h.List)
		guests.GET("/document/:value", h.GetByDocument)
		guests.GET("/:id", h.GetByID)
		guests.PUT("/:id", h.Update)
		guests.DELETE("/:id", h.Delete)
	}
}

// Create registers a new guest
func (h *GuestHandler) Create(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var req guestapp.CreateGuestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, guest)
}

// GetByID returns a guest by ID
func (h *GuestHandler) GetByID(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	guestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	guest, err := h.guestService.GetGuestByID(c.Request.Context(), propertyID, guestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, guest)
}

// GetByDocument looks up a guest by identity document value
func (h *GuestHandler) GetByDocument(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	docValue := c.Param("value")
	if docValue == "" {
		h.BadRequest(c, "Document value is required")
		return
	}

	guest, err := h.guestService.GetGuestByDocument(c.Request.Context(), propertyID, docValue)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, guest)
}

// List returns a paginated list of guests
func (h *GuestHandler) List(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var filter guestapp.GuestListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	guests, total, err := h.guestService.ListGuests(c.Request.Context(), propertyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, guests, total, filter.Page, filter.PageSize)
}

// Update modifies a guest's details
func (h *GuestHandler) Update(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	guestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req guestapp.UpdateGuestRequest
	if !h.bindJSON(c, &req) {
		return
	}

	guest, err := h.guestService.UpdateGuest(c.Request.Context(), propertyID, guestID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, guest)
}

// Delete removes a guest with no reservation history
func (h *GuestHandler) Delete(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	guestID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.guestService.DeleteGuest(c.Request.Context(), propertyID, guestID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
