package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	invoiceapp "github.com/hoteldesk/backend/internal/application/invoice"
)

// InvoiceHandler handles invoice PDF endpoints nested under a reservation
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoiceapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoiceapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers invoice routes. The group shares the :id param
// name with the reservation routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoice := rg.Group("/reservations/:id/invoice")
	{
		invoice.POST("", h.Generate)
		invoice.GET("/download", h.Download)
	}
}

// Generate renders the reservation's invoice PDF and stores it
func (h *InvoiceHandler) Generate(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GenerateInvoice(c.Request.Context(), propertyID, reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, invoice)
}

// Download renders the invoice and streams the PDF directly
func (h *InvoiceHandler) Download(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	reservationID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	pdf, code, err := h.invoiceService.RenderInvoicePDF(c.Request.Context(), propertyID, reservationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+code+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
