package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/services"
)

// ReportHandler handles read-side aggregation requests.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// YearQuery selects one calendar year.
type YearQuery struct {
	Year int `form:"year" binding:"required,min=1,max=9999"`
}

// GetSummary returns the month's income, expense and net totals.
// @Summary     Monthly summary
// @Description Get total income, total expenses and net position for a month
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int true "Month (1-12)"
// @Param       year  query int true "Year"
// @Success     200 {object} services.MonthlySummary "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
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

	summary, err := h.reportService.MonthlySummary(userID, query.Month, query.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetCategoryExpenses returns the month's expenses grouped by category.
// @Summary     Category expense breakdown
// @Description Get expense totals per category for a month, largest first
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int true "Month (1-12)"
// @Param       year  query int true "Year"
// @Success     200 {array} services.CategoryExpense "Category totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/category-expenses [get]
func (h *ReportHandler) GetCategoryExpenses(c *gin.Context) {
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

	expenses, err := h.reportService.CategoryExpenses(userID, query.Month, query.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetDailySpending returns one expense bucket per day of the month.
// @Summary     Daily spending
// @Description Get expense totals per calendar day, zero-filled for quiet days
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       month query int true "Month (1-12)"
// @Param       year  query int true "Year"
// @Success     200 {array} services.DaySpending "Daily totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/daily-spending [get]
func (h *ReportHandler) GetDailySpending(c *gin.Context) {
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

	spending, err := h.reportService.DailySpending(userID, query.Month, query.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, spending)
}

// GetYearlyExpenses returns one expense bucket per month of the year.
// @Summary     Yearly expenses
// @Description Get expense totals for all twelve months of a year
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       year query int true "Year"
// @Success     200 {array} services.MonthSpending "Monthly totals"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/yearly-expenses [get]
func (h *ReportHandler) GetYearlyExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query YearQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenses, err := h.reportService.YearlyExpenses(userID, query.Year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}
