package handler

import (
	"github.com/gin-gonic/gin"
	reservationapp "github.com/hoteldesk/backend/internal/application/reservation"
)

// ReservationHandler handles reservation lifecycle endpoints
type ReservationHandler struct {
	BaseHandler
	bookingService *reservationapp.BookingService
}

// NewReservationHandler creates a new ReservationHandler
func NewReservationHandler(bookingService *reservationapp.BookingService) *ReservationHandler {
	return &ReservationHandler{bookingService: bookingService}
}

// RegisterRoutes registers reservation routes
func (h *ReservationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	{
		reservations.POST("", h.Create)
		reservations.GET("", h.List)
		reservations.GET("/available-rooms", h.AvailableRooms)
		reservations.GET("/:id", h.GetByID)
		reservations.PUT("/:id/stay", h.UpdateStay)
		reservations.POST("/:id/cancel", h.Cancel)
		reservations.POST("/:id/check-out", h.CheckOut)
	}
}

// Create books a new reservation
func (h *ReservationHandler) Create(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var req reservationapp.CreateReservationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	reservation, err := h.bookingService.CreateReservation(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, reservation)
}

// GetByID returns a reservation by ID
func (h *ReservationHandler) GetByID(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.bookingService.GetReservationByID(c.Request.Context(), propertyID, reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reservation)
}

// List returns a paginated list of reservations
func (h *ReservationHandler) List(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var filter reservationapp.ReservationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	reservations, total, err := h.bookingService.ListReservations(c.Request.Context(), propertyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, reservations, total, filter.Page, filter.PageSize)
}

// AvailableRooms returns rooms free for the given stay window
func (h *ReservationHandler) AvailableRooms(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var query reservationapp.AvailableRoomsQuery
	if !h.bindQuery(c, &query) {
		return
	}

	rooms, err := h.bookingService.AvailableRooms(c.Request.Context(), propertyID, query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rooms)
}

// UpdateStay changes the dates or rooms of an active reservation
func (h *ReservationHandler) UpdateStay(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationapp.UpdateStayRequest
	if !h.bindJSON(c, &req) {
		return
	}

	reservation, err := h.bookingService.UpdateStay(c.Request.Context(), propertyID, reservationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reservation)
}

// Cancel voids an active reservation
func (h *ReservationHandler) Cancel(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationapp.CancelReservationRequest
	if !h.bindJSON(c, &req) {
		return
	}

	reservation, err := h.bookingService.CancelReservation(c.Request.Context(), propertyID, reservationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reservation)
}

// CheckOut settles and completes a reservation
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	reservation, err := h.bookingService.CheckOutReservation(c.Request.Context(), propertyID, reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reservation)
}
