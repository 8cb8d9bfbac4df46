// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/web-prodavnica/backend/internal/i18n"
	"github.com/web-prodavnica/backend/internal/models"
	"github.com/web-prodavnica/backend/internal/services"
	"github.com/web-prodavnica/backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	filter := services.AdminUserFilter{
		PaginationParams: utils.GetPaginationParams(c),
		Role:             models.UserRole(c.Query("role")),
	}

	users, total, err := h.adminService.GetUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(users, total, filter.PaginationParams))
}

// POST /admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.AdminCreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.adminService.CreateUser(c.Request.Context(), &req, adminID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"user": user,
	})
}

// DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := utils.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), userID, adminID); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDeleted),
	})
}
