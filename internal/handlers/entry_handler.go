package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/pagination"
	"finledger/internal/services"
)

// EntryHandler handles ledger entry requests.
type EntryHandler struct {
	entryService services.EntryServicer
	auditService services.AuditServicer
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryService services.EntryServicer, auditService services.AuditServicer) *EntryHandler {
	return &EntryHandler{entryService: entryService, auditService: auditService}
}

// CreateEntryRequest represents the request payload for recording an
// entry. Positive amounts are income, negative amounts are expenses.
type CreateEntryRequest struct {
	Amount      float64     `json:"amount" binding:"required"`
	Category    string      `json:"category" binding:"required,max=100"`
	Description string      `json:"description" binding:"max=500"`
	Date        models.Date `json:"date"`
}

// UpdateEntryRequest represents the request payload for updating an
// entry. An omitted date leaves the stored date unchanged.
type UpdateEntryRequest struct {
	Amount      float64     `json:"amount" binding:"required"`
	Category    string      `json:"category" binding:"required,max=100"`
	Description string      `json:"description" binding:"max=500"`
	Date        models.Date `json:"date"`
}

// CreateEntry records a new ledger entry.
// @Summary     Record a ledger entry
// @Description Record a signed ledger entry; the date defaults to today when omitted
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateEntryRequest true "Entry details"
// @Success     201 {object} models.Entry "Entry recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger/ [post]
func (h *EntryHandler) CreateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entryService.CreateEntry(userID, req.Amount, req.Category, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ENTRY", "entry", entry.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "category": req.Category})

	c.JSON(http.StatusCreated, entry)
}

// ListEntries returns the authenticated user's entries.
// @Summary     List ledger entries
// @Description Get a paginated list of the user's entries, newest first
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Filter by category"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Entry] "Paginated entries"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger/ [get]
func (h *EntryHandler) ListEntries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.entryService.ListEntries(userID, c.Query("category"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateEntry updates an existing entry the user owns.
// @Summary     Update a ledger entry
// @Description Replace the amount, category, description and date of an entry
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path int                true "Entry ID"
// @Param       request body UpdateEntryRequest true "Updated entry details"
// @Success     200 {object} models.Entry "Updated entry"
// @Failure     400 {object} ErrorResponse "Invalid input or entry ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger/{id} [put]
func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	entry, err := h.entryService.UpdateEntry(userID, entryID, req.Amount, req.Category, req.Description, req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ENTRY", "entry", entryID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "category": req.Category})

	c.JSON(http.StatusOK, entry)
}

// DeleteEntry deletes an entry the user owns.
// @Summary     Delete a ledger entry
// @Description Delete an entry by ID (soft delete)
// @Tags        ledger
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Entry ID"
// @Success     200 {object} MessageResponse "Entry deleted"
// @Failure     400 {object} ErrorResponse "Invalid entry ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Entry not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /ledger/{id} [delete]
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.entryService.DeleteEntry(userID, entryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ENTRY", "entry", entryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted successfully"})
}
