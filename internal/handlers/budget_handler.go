package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/services"
)

// BudgetHandler handles monthly budget requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// CreateBudgetRequest represents the request payload for setting a
// monthly spending limit.
type CreateBudgetRequest struct {
	Month int     `json:"month" binding:"required,month"`
	Year  int     `json:"year" binding:"required,min=1,max=9999"`
	Limit float64 `json:"limit" binding:"required,gt=0"`
}

// MonthYearQuery selects one calendar month.
type MonthYearQuery struct {
	Month int `form:"month" binding:"required,month"`
	Year  int `form:"year" binding:"required,min=1,max=9999"`
}

// CreateBudget sets the budget for one month.
// @Summary     Set a monthly budget
// @Description Set the spending limit for a month; at most one budget per month
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateBudgetRequest true "Budget details"
// @Success     201 {object} models.Budget "Budget created"
// @Failure     400 {object} ErrorResponse "Invalid input or budget already set"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/budget [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.CreateBudget(userID, req.Month, req.Year, req.Limit)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"month": req.Month, "year": req.Year, "limit": req.Limit})

	c.JSON(http.StatusCreated, budget)
}

// GetBudget returns the budget for the requested month.
// @Summary     Get a monthly budget
// @Description Get the budget for a month; the body is null when no budget is set
// @Tags        budget
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int true "Month (1-12)"
// @Param       year  query int true "Year"
// @Success     200 {object} models.Budget "Budget for the month, null when absent"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/budget [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query MonthYearQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.GetBudget(userID, query.Month, query.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if budget == nil {
		// No budget set for this month. 200 with a null body, not 404.
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, budget)
}
