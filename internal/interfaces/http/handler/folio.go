package handler

import (
	"github.com/gin-gonic/gin"
	reservationapp "github.com/hoteldesk/backend/internal/application/reservation"
)

// FolioHandler handles folio line-item endpoints nested under a reservation
type FolioHandler struct {
	BaseHandler
	folioService *reservationapp.FolioService
}

// NewFolioHandler creates a new FolioHandler
func NewFolioHandler(folioService *reservationapp.FolioService) *FolioHandler {
	return &FolioHandler{folioService: folioService}
}

// RegisterRoutes registers folio routes. The group shares the :id param name
// with the reservation routes so gin can merge the trees.
func (h *FolioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	folio := rg.Group("/reservations/:id/folio")
	{
		folio.GET("", h.GetFolio)
		folio.GET("/settlement", h.SettlementPrefill)

		folio.POST("/services", h.AddServiceCharge)
		folio.PUT("/services/:rowId", h.UpdateServiceCharge)
		folio.DELETE("/services/:rowId", h.DeleteServiceCharge)

		folio.POST("/food", h.AddFoodCharge)
		folio.PUT("/food/:rowId", h.UpdateFoodCharge)
		folio.DELETE("/food/:rowId", h.DeleteFoodCharge)

		folio.POST("/payments", h.AddPayment)
		folio.PUT("/payments/:rowId", h.UpdatePayment)
		folio.DELETE("/payments/:rowId", h.DeletePayment)

		folio.POST("/discounts", h.AddDiscount)
		folio.PUT("/discounts/:rowId", h.UpdateDiscount)
		folio.DELETE("/discounts/:rowId", h.DeleteDiscount)
	}
}

// GetFolio returns the full folio with running totals
func (h *FolioHandler) GetFolio(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	folio, err := h.folioService.GetFolio(c.Request.Context(), propertyID, reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}

// SettlementPrefill returns the outstanding balance as a ready-to-post payment
func (h *FolioHandler) SettlementPrefill(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	prefill, err := h.folioService.SettlementPrefill(c.Request.Context(), propertyID, reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, prefill)
}

// AddServiceCharge posts a service charge to the folio
func (h *FolioHandler) AddServiceCharge(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationapp.SaveChargeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	folio, err := h.folioService.AddServiceCharge(c.Request.Context(), propertyID, reservationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, folio)
}

// UpdateServiceCharge edits a posted service charge
func (h *FolioHandler) UpdateServiceCharge(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := h.parseUUIDParam(c, "rowId")
	if !ok {
		return
	}

	var req reservationapp.SaveChargeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	folio, err := h.folioService.UpdateServiceCharge(c.Request.Context(), propertyID, reservationID, rowID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}

// DeleteServiceCharge removes a posted service charge
func (h *FolioHandler) DeleteServiceCharge(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := h.parseUUIDParam(c, "rowId")
	if !ok {
		return
	}

	folio, err := h.folioService.DeleteServiceCharge(c.Request.Context(), propertyID, reservationID, rowID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}

// AddFoodCharge posts a food charge to the folio
func (h *FolioHandler) AddFoodCharge(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationapp.SaveChargeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	folio, err := h.folioService.AddFoodCharge(c.Request.Context(), propertyID, reservationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, folio)
}

// UpdateFoodCharge edits a posted food charge
func (h *FolioHandler) UpdateFoodCharge(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := h.parseUUIDParam(c, "rowId")
	if !ok {
		return
	}

	var req reservationapp.SaveChargeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	folio, err := h.folioService.UpdateFoodCharge(c.Request.Context(), propertyID, reservationID, rowID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}

// DeleteFoodCharge removes a posted food charge
func (h *FolioHandler) DeleteFoodCharge(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := h.parseUUIDParam(c, "rowId")
	if !ok {
		return
	}

	folio, err := h.folioService.DeleteFoodCharge(c.Request.Context(), propertyID, reservationID, rowID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}

// AddPayment posts a payment to the folio
func (h *FolioHandler) AddPayment(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationapp.SavePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	folio, err := h.folioService.AddPayment(c.Request.Context(), propertyID, reservationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, folio)
}

// UpdatePayment edits a posted payment
func (h *FolioHandler) UpdatePayment(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := h.parseUUIDParam(c, "rowId")
	if !ok {
		return
	}

	var req reservationapp.SavePaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	folio, err := h.folioService.UpdatePayment(c.Request.Context(), propertyID, reservationID, rowID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}

// DeletePayment removes a posted payment
func (h *FolioHandler) DeletePayment(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := h.parseUUIDParam(c, "rowId")
	if !ok {
		return
	}

	folio, err := h.folioService.DeletePayment(c.Request.Context(), propertyID, reservationID, rowID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}

// AddDiscount posts a discount to the folio
func (h *FolioHandler) AddDiscount(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationapp.SaveDiscountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	folio, err := h.folioService.AddDiscount(c.Request.Context(), propertyID, reservationID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, folio)
}

// UpdateDiscount edits a posted discount
func (h *FolioHandler) UpdateDiscount(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := h.parseUUIDParam(c, "rowId")
	if !ok {
		return
	}

	var req reservationapp.SaveDiscountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	folio, err := h.folioService.UpdateDiscount(c.Request.Context(), propertyID, reservationID, rowID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}

// DeleteDiscount removes a posted discount
func (h *FolioHandler) DeleteDiscount(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}
	rowID, ok := h.parseUUIDParam(c, "rowId")
	if !ok {
		return
	}

	folio, err := h.folioService.DeleteDiscount(c.Request.Context(), propertyID, reservationID, rowID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, folio)
}
