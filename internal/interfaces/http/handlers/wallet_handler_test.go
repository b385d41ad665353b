package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/interfaces/http/middleware"
)

type walletServiceStub struct {
	getBalanceFn    func(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	transactionsFn  func(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Transaction, int64, error)
	redeemFn        func(ctx context.Context, userID uuid.UUID, input *entities.RedeemInput) (*entities.Transaction, error)
	adjustFn        func(ctx context.Context, adminID uuid.UUID, input *entities.AdjustWalletInput) (*entities.Transaction, error)
	verifyBalanceFn func(ctx context.Context, userID uuid.UUID) (bool, int64, int64, error)
}

func (s *walletServiceStub) GetBalance(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	if s.getBalanceFn != nil {
		return s.getBalanceFn(ctx, userID)
	}
	return nil, domainerrors.ErrWalletNotFound
}

func (s *walletServiceStub) GetTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Transaction, int64, error) {
	if s.transactionsFn != nil {
		return s.transactionsFn(ctx, userID, page, limit)
	}
	return []*entities.Transaction{}, 0, nil
}

func (s *walletServiceStub) Redeem(ctx context.Context, userID uuid.UUID, input *entities.RedeemInput) (*entities.Transaction, error) {
	if s.redeemFn != nil {
		return s.redeemFn(ctx, userID, input)
	}
	return nil, domainerrors.ErrWalletNotFound
}

func (s *walletServiceStub) Adjust(ctx context.Context, adminID uuid.UUID, input *entities.AdjustWalletInput) (*entities.Transaction, error) {
	if s.adjustFn != nil {
		return s.adjustFn(ctx, adminID, input)
	}
	return nil, domainerrors.ErrWalletNotFound
}

func (s *walletServiceStub) VerifyBalance(ctx context.Context, userID uuid.UUID) (bool, int64, int64, error) {
	if s.verifyBalanceFn != nil {
		return s.verifyBalanceFn(ctx, userID)
	}
	return false, 0, 0, domainerrors.ErrWalletNotFound
}

func newWalletRouter(stub *walletServiceStub, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWalletHandler(stub)
	r := gin.New()
	withUser := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
	r.GET("/wallet", withUser, h.GetBalance)
	r.GET("/wallet/transactions", withUser, h.ListTransactions)
	r.POST("/wallet/redeem", withUser, h.Redeem)
	r.POST("/admin/wallet/adjust", withUser, h.Adjust)
	r.GET("/admin/wallet/:userId/verify", withUser, h.VerifyBalance)
	return r
}

func TestWalletHandler_GetBalance_ReportsNaira(t *testing.T) {
	userID := uuid.New()
	stub := &walletServiceStub{
		getBalanceFn: func(_ context.Context, id uuid.UUID) (*entities.Wallet, error) {
			require.Equal(t, userID, id)
			return &entities.Wallet{ID: uuid.New(), UserID: id, BalanceKobo: 42500}, nil
		},
	}
	r := newWalletRouter(stub, userID)

	req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Wallet       entities.Wallet `json:"wallet"`
		BalanceNaira float64         `json:"balanceNaira"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(42500), resp.Wallet.BalanceKobo)
	require.Equal(t, 425.0, resp.BalanceNaira)
}

func TestWalletHandler_Redeem(t *testing.T) {
	userID := uuid.New()
	stub := &walletServiceStub{
		redeemFn: func(_ context.Context, _ uuid.UUID, input *entities.RedeemInput) (*entities.Transaction, error) {
			require.Equal(t, 100.0, input.AmountNaira)
			require.Equal(t, "cashout-2024-11-02", input.Reference)
			return &entities.Transaction{
				ID: uuid.New(), Type: entities.TransactionTypeRedeem, AmountKobo: 10000,
				Reference: input.Reference,
			}, nil
		},
	}
	r := newWalletRouter(stub, userID)

	body := []byte(`{"amountNaira":100,"reference":"cashout-2024-11-02"}`)
	req := httptest.NewRequest(http.MethodPost, "/wallet/redeem", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestWalletHandler_Redeem_InsufficientFunds(t *testing.T) {
	stub := &walletServiceStub{
		redeemFn: func(context.Context, uuid.UUID, *entities.RedeemInput) (*entities.Transaction, error) {
			return nil, domainerrors.ErrInsufficientFunds
		},
	}
	r := newWalletRouter(stub, uuid.New())

	body := []byte(`{"amountNaira":5000,"reference":"cashout-big"}`)
	req := httptest.NewRequest(http.MethodPost, "/wallet/redeem", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "ERR_INSUFFICIENT_FUNDS", resp.Code)
}

func TestWalletHandler_Redeem_BindingError(t *testing.T) {
	r := newWalletRouter(&walletServiceStub{}, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/wallet/redeem", bytes.NewReader([]byte(`{"amountNaira":0}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWalletHandler_VerifyBalance(t *testing.T) {
	userID := uuid.New()
	stub := &walletServiceStub{
		verifyBalanceFn: func(_ context.Context, id uuid.UUID) (bool, int64, int64, error) {
			require.Equal(t, userID, id)
			return false, 42500, 40000, nil
		},
	}
	r := newWalletRouter(stub, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/admin/wallet/"+userID.String()+"/verify", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Consistent    bool  `json:"consistent"`
		BalanceKobo   int64 `json:"balanceKobo"`
		LedgerSumKobo int64 `json:"ledgerSumKobo"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Consistent)
	require.Equal(t, int64(42500), resp.BalanceKobo)
	require.Equal(t, int64(40000), resp.LedgerSumKobo)
}

func TestWalletHandler_VerifyBalance_BadUserID(t *testing.T) {
	r := newWalletRouter(&walletServiceStub{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/admin/wallet/nope/verify", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
