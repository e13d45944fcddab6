package handler

import (
	"github.com/gin-gonic/gin"
	roomapp "github.com/hoteldesk/backend/internal/application/room"
)

// RoomHandler handles room inventory endpoints
type RoomHandler struct {
	BaseHandler
	roomService *roomapp.RoomService
}

// NewRoomHandler creates a new RoomHandler
func NewRoomHandler(roomService *roomapp.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// RegisterRoutes registers room routes
func (h *RoomHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rooms := rg.Group("/rooms")
	{
		rooms.POST("", h.Create)
		rooms.GET("", h.List)
		rooms.GET("/:id", h.GetByID)
		rooms.PUT("/:id", h.Update)
		rooms.DELETE("/:id", h.Delete)
		rooms.POST("/:id/activate", h.Activate)
		rooms.POST("/:id/out-of-service", h.TakeOutOfService)
	}
}

// Create adds a room to the property
func (h *RoomHandler) Create(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var req roomapp.CreateRoomRequest
	if !h.bindJSON(c, &req) {
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, room)
}

// GetByID returns a room by ID
func (h *RoomHandler) GetByID(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	roomID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.GetRoomByID(c.Request.Context(), propertyID, roomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// List returns a paginated list of rooms
func (h *RoomHandler) List(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var filter roomapp.RoomListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	rooms, total, err := h.roomService.ListRooms(c.Request.Context(), propertyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, rooms, total, filter.Page, filter.PageSize)
}

// Update modifies a room's details
func (h *RoomHandler) Update(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	roomID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req roomapp.UpdateRoomRequest
	if !h.bindJSON(c, &req) {
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), propertyID, roomID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// Activate returns a room to service
func (h *RoomHandler) Activate(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	roomID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.ActivateRoom(c.Request.Context(), propertyID, roomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// TakeOutOfService marks a room unavailable for booking
func (h *RoomHandler) TakeOutOfService(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	roomID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.TakeRoomOutOfService(c.Request.Context(), propertyID, roomID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// Delete removes a room with no reservation history
func (h *RoomHandler) Delete(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	roomID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.DeleteRoom(c.Request.Context(), propertyID, roomID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
