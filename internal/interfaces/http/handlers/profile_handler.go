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

type ProfileService interface {
	UpsertVendorProfile(ctx context.Context, userID uuid.UUID, input *entities.UpsertVendorProfileInput) (*entities.VendorProfile, error)
	GetVendorProfile(ctx context.Context, userID uuid.UUID) (*entities.VendorProfile, error)
	ListVendorProfiles(ctx context.Context, state string) ([]*entities.VendorProfile, error)
	VerifyVendor(ctx context.Context, adminID, userID uuid.UUID, verified bool) error
	RegisterFactory(ctx context.Context, userID uuid.UUID, input *entities.RegisterFactoryInput) (*entities.Factory, error)
	GetFactoryByOwner(ctx context.Context, userID uuid.UUID) (*entities.Factory, error)
	ListFactories(ctx context.Context, verifiedOnly bool) ([]*entities.Factory, error)
	VerifyFactory(ctx context.Context, adminID, factoryID uuid.UUID, verified bool) error
}

// ProfileHandler handles vendor profile and factory endpoints
type ProfileHandler struct {
	profileUsecase ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase ProfileService) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

// UpsertVendorProfile creates or updates the caller's vendor profile
// PUT /api/v1/vendors/profile
func (h *ProfileHandler) UpsertVendorProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.UpsertVendorProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUsecase.UpsertVendorProfile(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// GetMyVendorProfile returns the caller's vendor profile
// GET /api/v1/vendors/profile
func (h *ProfileHandler) GetMyVendorProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	profile, err := h.profileUsecase.GetVendorProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": profile})
}

// ListVendorProfiles lists vendor profiles
// GET /api/v1/vendors
func (h *ProfileHandler) ListVendorProfiles(c *gin.Context) {
	profiles, err := h.profileUsecase.ListVendorProfiles(c.Request.Context(), c.Query("state"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profiles": profiles})
}

// VerifyVendor sets a vendor profile's verified flag
// POST /api/v1/admin/vendors/:userId/verify
func (h *ProfileHandler) VerifyVendor(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input struct {
		Verified bool `json:"verified"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.profileUsecase.VerifyVendor(c.Request.Context(), adminID, userID, input.Verified); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "vendor verification updated"})
}

// RegisterFactory creates the caller's factory
// POST /api/v1/factories
func (h *ProfileHandler) RegisterFactory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.RegisterFactoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	factory, err := h.profileUsecase.RegisterFactory(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"factory": factory})
}

// GetMyFactory returns the caller's factory
// GET /api/v1/factories/mine
func (h *ProfileHandler) GetMyFactory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	factory, err := h.profileUsecase.GetFactoryByOwner(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"factory": factory})
}

// ListFactories lists factories
// GET /api/v1/factories
func (h *ProfileHandler) ListFactories(c *gin.Context) {
	verifiedOnly := c.Query("verified") == "true"
	factories, err := h.profileUsecase.ListFactories(c.Request.Context(), verifiedOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"factories": factories})
}

// VerifyFactory sets a factory's verified flag
// POST /api/v1/admin/factories/:id/verify
func (h *ProfileHandler) VerifyFactory(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	factoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid factory ID"))
		return
	}

	var input struct {
		Verified bool `json:"verified"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.profileUsecase.VerifyFactory(c.Request.Context(), adminID, factoryID, input.Verified); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "factory verification updated"})
}
