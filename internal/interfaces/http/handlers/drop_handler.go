package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/interfaces/http/middleware"
	"kudichain.backend/internal/interfaces/http/response"
	"kudichain.backend/pkg/utils"
)

type DropService interface {
	Create(ctx context.Context, actorID uuid.UUID, role entities.UserRole, input *entities.CreateDropInput) (*entities.TrashRecord, error)
	Confirm(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID, input *entities.ConfirmDropInput) (*entities.TrashRecord, error)
	Ship(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID, input *entities.ShipDropInput) (*entities.TrashRecord, error)
	Receive(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID, input *entities.AdvanceDropInput) (*entities.TrashRecord, error)
	ReleasePayout(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID, input *entities.AdvanceDropInput) (*entities.TrashRecord, error)
	Cancel(ctx context.Context, actorID uuid.UUID, role entities.UserRole, dropID uuid.UUID, input *entities.CancelDropInput) (*entities.TrashRecord, error)
	GetByID(ctx context.Context, actorID uuid.UUID, role entities.UserRole, dropID uuid.UUID) (*entities.TrashRecord, error)
	ListForActor(ctx context.Context, actorID uuid.UUID, role entities.UserRole, status entities.DropStatus, page, limit int) ([]*entities.TrashRecord, int64, error)
}

// DropHandler handles trash drop endpoints
type DropHandler struct {
	dropUsecase DropService
}

// NewDropHandler creates a new drop handler
func NewDropHandler(dropUsecase DropService) *DropHandler {
	return &DropHandler{dropUsecase: dropUsecase}
}

// Create registers a new drop
// POST /api/v1/drops
func (h *DropHandler) Create(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	var input entities.CreateDropInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	record, err := h.dropUsecase.Create(c.Request.Context(), actorID, role, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"drop": record})
}

// Confirm confirms a pending drop
// POST /api/v1/drops/:id/confirm
func (h *DropHandler) Confirm(c *gin.Context) {
	actorID, _, ok := actor(c)
	if !ok {
		return
	}
	dropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid drop ID"))
		return
	}

	var input entities.ConfirmDropInput
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	record, err := h.dropUsecase.Confirm(c.Request.Context(), actorID, dropID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"drop": record})
}

// Ship dispatches a confirmed drop to a factory
// POST /api/v1/drops/:id/ship
func (h *DropHandler) Ship(c *gin.Context) {
	actorID, _, ok := actor(c)
	if !ok {
		return
	}
	dropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid drop ID"))
		return
	}

	var input entities.ShipDropInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	record, err := h.dropUsecase.Ship(c.Request.Context(), actorID, dropID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"drop": record})
}

// Receive marks an in-transit drop as arrived
// POST /api/v1/drops/:id/receive
func (h *DropHandler) Receive(c *gin.Context) {
	h.advance(c, h.dropUsecase.Receive)
}

// ReleasePayout finalizes a received drop and credits the payouts
// POST /api/v1/drops/:id/release-payout
func (h *DropHandler) ReleasePayout(c *gin.Context) {
	h.advance(c, h.dropUsecase.ReleasePayout)
}

// Cancel voids a drop
// POST /api/v1/drops/:id/cancel
func (h *DropHandler) Cancel(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		return
	}
	dropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid drop ID"))
		return
	}

	var input entities.CancelDropInput
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	record, err := h.dropUsecase.Cancel(c.Request.Context(), actorID, role, dropID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"drop": record})
}

// Get returns one drop
// GET /api/v1/drops/:id
func (h *DropHandler) Get(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		return
	}
	dropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid drop ID"))
		return
	}

	record, err := h.dropUsecase.GetByID(c.Request.Context(), actorID, role, dropID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"drop": record})
}

// List returns the caller's drops
// GET /api/v1/drops
func (h *DropHandler) List(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)
	status := entities.DropStatus(c.Query("status"))

	records, total, err := h.dropUsecase.ListForActor(c.Request.Context(), actorID, role, status, params.Page, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"drops":      records,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

func (h *DropHandler) advance(c *gin.Context, op func(context.Context, uuid.UUID, uuid.UUID, *entities.AdvanceDropInput) (*entities.TrashRecord, error)) {
	actorID, _, ok := actor(c)
	if !ok {
		return
	}
	dropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid drop ID"))
		return
	}

	// An empty body means "use the current version".
	var input entities.AdvanceDropInput
	if err := c.ShouldBindJSON(&input); err != nil && err != io.EOF {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	record, err := op(c.Request.Context(), actorID, dropID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"drop": record})
}

// actor resolves the authenticated user ID and role, writing the error
// response itself on failure.
func actor(c *gin.Context) (uuid.UUID, entities.UserRole, bool) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return uuid.Nil, "", false
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User role not found"))
		return uuid.Nil, "", false
	}
	return actorID, role, true
}
