package handlers

import (
	"context"
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

type WalletService interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	GetTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Transaction, int64, error)
	Redeem(ctx context.Context, userID uuid.UUID, input *entities.RedeemInput) (*entities.Transaction, error)
	Adjust(ctx context.Context, adminID uuid.UUID, input *entities.AdjustWalletInput) (*entities.Transaction, error)
	VerifyBalance(ctx context.Context, userID uuid.UUID) (bool, int64, int64, error)
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletUsecase WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase WalletService) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// GetBalance returns the caller's wallet
// GET /api/v1/wallet
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	wallet, err := h.walletUsecase.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"wallet":       wallet,
		"balanceNaira": utils.KoboToNaira(wallet.BalanceKobo),
	})
}

// ListTransactions returns the caller's ledger entries
// GET /api/v1/wallet/transactions
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	entries, total, err := h.walletUsecase.GetTransactions(c.Request.Context(), userID, params.Page, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": entries,
		"pagination":   utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Redeem debits the caller's wallet
// POST /api/v1/wallet/redeem
func (h *WalletHandler) Redeem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.RedeemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	entry, err := h.walletUsecase.Redeem(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": entry})
}

// Adjust applies an admin bonus or penalty
// POST /api/v1/admin/wallet/adjust
func (h *WalletHandler) Adjust(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.AdjustWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	entry, err := h.walletUsecase.Adjust(c.Request.Context(), adminID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": entry})
}

// VerifyBalance compares a user's cached balance with the ledger sum
// GET /api/v1/admin/wallet/:userId/verify
func (h *WalletHandler) VerifyBalance(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	consistent, cached, ledger, err := h.walletUsecase.VerifyBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"consistent":    consistent,
		"balanceKobo":   cached,
		"ledgerSumKobo": ledger,
	})
}
