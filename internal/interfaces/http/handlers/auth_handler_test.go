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
	"kudichain.backend/pkg/jwt"
)

type authServiceStub struct {
	registerFn  func(ctx context.Context, input *entities.RegisterInput) (*entities.User, error)
	loginFn     func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	logoutFn    func(ctx context.Context, sessionID string) error
	refreshFn   func(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	changePwFn  func(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error
	submitKYCFn func(ctx context.Context, userID uuid.UUID, input *entities.SubmitKYCInput) (*entities.User, error)
	reviewKYCFn func(ctx context.Context, userID uuid.UUID, input *entities.ReviewKYCInput) (*entities.User, error)
	getUserFn   func(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

func (s *authServiceStub) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	if s.registerFn != nil {
		return s.registerFn(ctx, input)
	}
	return nil, domainerrors.ErrBadRequest
}

func (s *authServiceStub) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, input)
	}
	return nil, domainerrors.ErrInvalidCredentials
}

func (s *authServiceStub) Logout(ctx context.Context, sessionID string) error {
	if s.logoutFn != nil {
		return s.logoutFn(ctx, sessionID)
	}
	return nil
}

func (s *authServiceStub) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	if s.refreshFn != nil {
		return s.refreshFn(ctx, refreshToken)
	}
	return nil, domainerrors.ErrUnauthorized
}

func (s *authServiceStub) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	if s.changePwFn != nil {
		return s.changePwFn(ctx, userID, input)
	}
	return nil
}

func (s *authServiceStub) SubmitKYC(ctx context.Context, userID uuid.UUID, input *entities.SubmitKYCInput) (*entities.User, error) {
	if s.submitKYCFn != nil {
		return s.submitKYCFn(ctx, userID, input)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *authServiceStub) ReviewKYC(ctx context.Context, userID uuid.UUID, input *entities.ReviewKYCInput) (*entities.User, error) {
	if s.reviewKYCFn != nil {
		return s.reviewKYCFn(ctx, userID, input)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *authServiceStub) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getUserFn != nil {
		return s.getUserFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func newAuthRouter(stub *authServiceStub, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(stub)
	r := gin.New()
	withUser := func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", withUser, h.Me)
	r.POST("/auth/kyc", withUser, h.SubmitKYC)
	r.POST("/admin/kyc/:userId/review", withUser, h.ReviewKYC)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	stub := &authServiceStub{
		registerFn: func(_ context.Context, input *entities.RegisterInput) (*entities.User, error) {
			require.Equal(t, "collector", input.Role)
			return &entities.User{
				ID: uuid.New(), Email: input.Email, Name: input.Name,
				Role: entities.UserRoleCollector, BarcodeID: "KC-0A1B2C3D4E",
			}, nil
		},
	}
	r := newAuthRouter(stub, uuid.Nil)

	body := []byte(`{"email":"ada@mail.com","name":"Ada Obi","password":"Password123!","role":"collector"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User entities.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "KC-0A1B2C3D4E", resp.User.BarcodeID)
}

func TestAuthHandler_Register_BindingErrors(t *testing.T) {
	r := newAuthRouter(&authServiceStub{}, uuid.Nil)

	for _, body := range []string{
		`{"email":"not-an-email","name":"Ada","password":"Password123!","role":"collector"}`,
		`{"email":"ada@mail.com","name":"Ada","password":"short","role":"collector"}`,
		`{"email":"ada@mail.com","password":"Password123!","role":"collector"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestAuthHandler_Login_InvalidCredentialsMapTo401(t *testing.T) {
	r := newAuthRouter(&authServiceStub{}, uuid.Nil)

	body := []byte(`{"email":"ada@mail.com","password":"wrong-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_SessionResponse(t *testing.T) {
	stub := &authServiceStub{
		loginFn: func(_ context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
			require.True(t, input.UseSession)
			return &entities.AuthResponse{SessionID: "abc123", User: &entities.User{ID: uuid.New()}}, nil
		},
	}
	r := newAuthRouter(stub, uuid.Nil)

	body := []byte(`{"email":"ada@mail.com","password":"Password123!","useSession":true}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp entities.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "abc123", resp.SessionID)
	require.Empty(t, resp.AccessToken)
}

func TestAuthHandler_Logout_ForwardsSessionHeader(t *testing.T) {
	var gotSession string
	stub := &authServiceStub{
		logoutFn: func(_ context.Context, sessionID string) error {
			gotSession = sessionID
			return nil
		},
	}
	r := newAuthRouter(stub, uuid.Nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.Header.Set(middleware.SessionIDHeader, "abc123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "abc123", gotSession)
}

func TestAuthHandler_Me(t *testing.T) {
	userID := uuid.New()
	stub := &authServiceStub{
		getUserFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			require.Equal(t, userID, id)
			return &entities.User{ID: id, Email: "ada@mail.com"}, nil
		},
	}
	r := newAuthRouter(stub, userID)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAuthHandler_ReviewKYC(t *testing.T) {
	targetID := uuid.New()
	stub := &authServiceStub{
		reviewKYCFn: func(_ context.Context, id uuid.UUID, input *entities.ReviewKYCInput) (*entities.User, error) {
			require.Equal(t, targetID, id)
			require.True(t, input.Approve)
			return &entities.User{ID: id, KYCStatus: entities.KYCApproved}, nil
		},
	}
	r := newAuthRouter(stub, uuid.New())

	body := []byte(`{"approve":true,"verifiedFullName":"Ada Obi"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/kyc/"+targetID.String()+"/review", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
