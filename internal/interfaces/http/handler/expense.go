package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/hoteldesk/backend/internal/application/finance"
)

// ExpenseHandler handles operating expense endpoints
type ExpenseHandler struct {
	BaseHandler
	expenseService *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/:id", h.GetByID)
		expenses.PUT("/:id", h.Update)
		expenses.DELETE("/:id", h.Delete)
	}
}

// Create records a new expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var req financeapp.CreateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), propertyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, expense)
}

// GetByID returns an expense by ID
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	expenseID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), propertyID, expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// List returns a paginated list of expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}

	var filter financeapp.ExpenseListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), propertyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, expenses, total, filter.Page, filter.PageSize)
}

// Update modifies an expense
func (h *ExpenseHandler) Update(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	expenseID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req financeapp.UpdateExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), propertyID, expenseID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, expense)
}

// Delete removes an expense
func (h *ExpenseHandler) Delete(c *gin.Context) {
	propertyID, ok := h.requirePropertyID(c)
	if !ok {
		return
	}
	expenseID, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), propertyID, expenseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
