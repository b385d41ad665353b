package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/interfaces/http/middleware"
	"kudichain.backend/internal/interfaces/http/response"
)

type RateService interface {
	Upsert(ctx context.Context, adminID uuid.UUID, input *entities.UpsertRateInput) (*entities.PaymentRate, error)
	GetActive(ctx context.Context, trashType entities.TrashType) (*entities.PaymentRate, error)
	List(ctx context.Context, activeOnly bool) ([]*entities.PaymentRate, error)
	Deactivate(ctx context.Context, adminID uuid.UUID, trashType entities.TrashType) error
}

// RateHandler handles payment rate endpoints
type RateHandler struct {
	rateUsecase RateService
}

// NewRateHandler creates a new rate handler
func NewRateHandler(rateUsecase RateService) *RateHandler {
	return &RateHandler{rateUsecase: rateUsecase}
}

// List returns configured rates
// GET /api/v1/rates
func (h *RateHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	rates, err := h.rateUsecase.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rates": rates})
}

// GetActive returns the active rate for a trash type
// GET /api/v1/rates/:trashType
func (h *RateHandler) GetActive(c *gin.Context) {
	trashType := entities.TrashType(c.Param("trashType"))
	rate, err := h.rateUsecase.GetActive(c.Request.Context(), trashType)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("No active rate for this trash type"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rate": rate})
}

// Upsert sets the rate for a trash type
// PUT /api/v1/admin/rates
func (h *RateHandler) Upsert(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.UpsertRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	rate, err := h.rateUsecase.Upsert(c.Request.Context(), adminID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rate": rate})
}

// Deactivate clears the active rate for a trash type
// DELETE /api/v1/admin/rates/:trashType
func (h *RateHandler) Deactivate(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	trashType := entities.TrashType(c.Param("trashType"))
	if err := h.rateUsecase.Deactivate(c.Request.Context(), adminID, trashType); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "rate deactivated"})
}
