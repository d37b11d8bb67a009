package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"order-tracking-service/models"
	"order-tracking-service/repository"
	"order-tracking-service/services"
)

// ExpenseController handles HTTP requests for expense tracking.
type ExpenseController struct {
	expenseService *services.ExpenseService
}

func NewExpenseController(svc *services.ExpenseService) *ExpenseController {
	return &ExpenseController{expenseService: svc}
}

// CreateExpense handles POST /expenses
func (ec *ExpenseController) CreateExpense(ctx *gin.Context) {
	var req models.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	expense, svcErr := ec.expenseService.CreateExpense(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles GET /expenses
func (ec *ExpenseController) GetExpenses(ctx *gin.Context) {
	start, ok := parseDateQuery(ctx, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(ctx, "end_date")
	if !ok {
		return
	}

	filter := repository.ExpenseFilter{StartDate: start, EndDate: end}
	if raw := ctx.Query("category"); raw != "" {
		category := models.ExpenseCategory(raw)
		filter.Category = &category
	}

	page, limit := parsePaginationParams(ctx)
	expenses, meta, svcErr := ec.expenseService.GetExpenses(ctx.Request.Context(), filter, page, limit)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"expenses": expenses, "meta": meta})
}

// Summary handles GET /expenses/summary
func (ec *ExpenseController) Summary(ctx *gin.Context) {
	start, ok := parseDateQuery(ctx, "start_date")
	if !ok {
		return
	}
	end, ok := parseDateQuery(ctx, "end_date")
	if !ok {
		return
	}

	summary, svcErr := ec.expenseService.Summary(ctx.Request.Context(), start, end)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// UpdateExpense handles PATCH /expenses/:id
func (ec *ExpenseController) UpdateExpense(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req models.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	expense, svcErr := ec.expenseService.UpdateExpense(ctx.Request.Context(), id, &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles DELETE /expenses/:id
func (ec *ExpenseController) DeleteExpense(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if svcErr := ec.expenseService.DeleteExpense(ctx.Request.Context(), id); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// Categories handles GET /expenses/categories
func (ec *ExpenseController) Categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"categories": ec.expenseService.Categories()})
}
