package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finledger/internal/services"
)

// AdminHandler handles administrative requests.
type AdminHandler struct {
	adminService services.AdminServicer
	auditService services.AuditServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService services.AdminServicer, auditService services.AuditServicer) *AdminHandler {
	return &AdminHandler{adminService: adminService, auditService: auditService}
}

// ResetSchema drops and recreates the database schema.
// @Summary     Reset database schema
// @Description Drop every table and reapply all migrations; destroys all data
// @Tags        admin
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-Admin-Key header string true "Admin API key"
// @Success     200 {object} MessageResponse "Schema reset"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Invalid admin key"
// @Failure     503 {object} ErrorResponse "Admin endpoints disabled"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /api/admin/reset [post]
func (h *AdminHandler) ResetSchema(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.adminService.ResetSchema(); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RESET_SCHEMA", "database", 0, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Database schema reset"})
}
