package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/interfaces/http/response"
	"kudichain.backend/internal/usecases"
	"kudichain.backend/pkg/utils"
)

type AdminService interface {
	GetStats(ctx context.Context) (*usecases.PlatformStats, error)
	ListUsers(ctx context.Context, role entities.UserRole, search string) ([]*entities.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	RemoveUser(ctx context.Context, id uuid.UUID) error
	ListAuditLog(ctx context.Context, entityType string, page, limit int) ([]*entities.AuditLog, int64, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	adminUsecase AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase AdminService) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// GetStats returns platform-wide aggregates
// GET /api/v1/admin/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUsecase.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// ListUsers lists users
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	role := entities.UserRole(c.Query("role"))
	if role != "" && !role.Valid() {
		response.Error(c, domainerrors.BadRequest("Unknown role"))
		return
	}

	users, err := h.adminUsecase.ListUsers(c.Request.Context(), role, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// GetUser returns a single user
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	user, err := h.adminUsecase.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// RemoveUser soft-deletes a user
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) RemoveUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	if err := h.adminUsecase.RemoveUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "user removed"})
}

// ListAuditLog pages through the audit trail
// GET /api/v1/admin/audit
func (h *AdminHandler) ListAuditLog(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	params := utils.GetPaginationParams(page, limit)

	entries, total, err := h.adminUsecase.ListAuditLog(c.Request.Context(), c.Query("entityType"), params.Page, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"entries":    entries,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
