package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/hoteldesk/backend/internal/application/identity"
)

// PropertyHandler handles property settings endpoints
type PropertyHandler struct {
	BaseHandler
	propertyService *identityapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService *identityapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// RegisterRoutes registers property routes
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	property := rg.Group("/property")
	{
		property.GET("", h.Get)
		property.PUT("", h.Update)
	}
}

// Get returns the caller's property
func (h *PropertyHandler) Get(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}

// Update modifies the caller's property details
func (h *PropertyHandler) Update(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var req identityapp.UpdatePropertyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, property)
}
