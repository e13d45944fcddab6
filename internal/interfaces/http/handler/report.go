package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	reportapp "github.com/hoteldesk/backend/internal/application/report"
)

// ReportHandler handles reporting endpoints, serving both JSON and CSV
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/payments", h.Payments)
		reports.GET("/payments/csv", h.PaymentsCSV)
		reports.GET("/expenses", h.Expenses)
		reports.GET("/expenses/csv", h.ExpensesCSV)
		reports.GET("/ledger", h.Ledger)
		reports.GET("/ledger/csv", h.LedgerCSV)
		reports.GET("/summary", h.Summary)
	}
}

func (h *ReportHandler) bindRange(c *gin.Context) (reportapp.DateRange, bool) {
	var r reportapp.DateRange
	if !h.bindQuery(c, &r) {
		return r, false
	}
	if r.To.Before(r.From) {
		h.BadRequest(c, "Range end must not be before range start")
		return r, false
	}
	return r, true
}

func csvAttachment(c *gin.Context, name string, r reportapp.DateRange) {
	filename := fmt.Sprintf("%s_%s_%s.csv",
		name,
		r.From.Format("2006-01-02"),
		r.To.Format("2006-01-02"),
	)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
}

// Payments returns collected payments in a date range
func (h *ReportHandler) Payments(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.PaymentsReport(c.Request.Context(), propertyID, r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// PaymentsCSV streams the payments report as a CSV download
func (h *ReportHandler) PaymentsCSV(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.PaymentsReport(c.Request.Context(), propertyID, r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	csvAttachment(c, "payments", r)
	if err := reportapp.WritePaymentsCSV(c.Writer, report); err != nil {
		_ = c.Error(err)
	}
}

// Expenses returns recorded expenses in a date range
func (h *ReportHandler) Expenses(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.ExpensesReport(c.Request.Context(), propertyID, r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// ExpensesCSV streams the expenses report as a CSV download
func (h *ReportHandler) ExpensesCSV(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.ExpensesReport(c.Request.Context(), propertyID, r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	csvAttachment(c, "expenses", r)
	if err := reportapp.WriteExpensesCSV(c.Writer, report); err != nil {
		_ = c.Error(err)
	}
}

// Ledger returns the interleaved income and expense ledger
func (h *ReportHandler) Ledger(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.Ledger(c.Request.Context(), propertyID, r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// LedgerCSV streams the ledger as a CSV download
func (h *ReportHandler) LedgerCSV(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.Ledger(c.Request.Context(), propertyID, r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	csvAttachment(c, "ledger", r)
	if err := reportapp.WriteLedgerCSV(c.Writer, report); err != nil {
		_ = c.Error(err)
	}
}

// Summary returns the aggregated business summary for a date range
func (h *ReportHandler) Summary(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	r, ok := h.bindRange(c)
	if !ok {
		return
	}

	report, err := h.reportService.Summary(c.Request.Context(), propertyID, r)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
