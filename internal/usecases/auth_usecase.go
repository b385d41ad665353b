package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/domain/repositories"
	"kudichain.backend/pkg/crypto"
	"kudichain.backend/pkg/jwt"
	"kudichain.backend/pkg/redis"
	"kudichain.backend/pkg/utils"
)

// AuthUsecase handles registration, login and KYC. Every user gets a
// zero-balance wallet at registration; collectors additionally get a
// barcode ID that vendors scan at drop time.
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	walletRepo   repositories.WalletRepository
	uow          repositories.UnitOfWork
	jwtService   *jwt.JWTService
	sessionStore *redis.SessionStore
	sessionTTL   time.Duration
}

// NewAuthUsecase creates a new auth usecase. sessionStore may be nil
// when session login is disabled.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	walletRepo repositories.WalletRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		walletRepo:   walletRepo,
		uow:          uow,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Register creates a user with their wallet in one transaction. The
// admin role cannot be self-assigned.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	role := entities.UserRole(input.Role)
	if !role.Valid() || role == entities.UserRoleAdmin {
		return nil, domainerrors.BadRequest("role must be collector, vendor or factory")
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           utils.GenerateUUIDv7(),
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
		Role:         role,
		KYCStatus:    entities.KYCPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if role == entities.UserRoleCollector {
		barcode, err := generateBarcodeID()
		if err != nil {
			return nil, err
		}
		user.BarcodeID = barcode
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		wallet := &entities.Wallet{
			ID:        utils.GenerateUUIDv7(),
			UserID:    user.ID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		return u.walletRepo.Create(txCtx, wallet)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user. The default response carries a JWT pair;
// with UseSession set the tokens instead live server-side behind an
// opaque session ID.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if input.UseSession && u.sessionStore != nil {
		sessionID, err := crypto.GenerateRandomToken(16)
		if err != nil {
			return nil, err
		}
		data := &redis.SessionData{
			AccessToken:  tokenPair.AccessToken,
			RefreshToken: tokenPair.RefreshToken,
		}
		if err := u.sessionStore.CreateSession(ctx, sessionID, data, u.sessionTTL); err != nil {
			return nil, err
		}
		return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// Logout drops a server-side session.
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if u.sessionStore == nil || sessionID == "" {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}

// RefreshToken exchanges a refresh token for a fresh pair.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// ChangePassword rotates a user's password after verifying the
// current one.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}
	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return u.userRepo.Update(ctx, user)
}

// SubmitKYC records a user's identity details for review. A rejected
// submission may be resubmitted.
func (u *AuthUsecase) SubmitKYC(ctx context.Context, userID uuid.UUID, input *entities.SubmitKYCInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.KYCStatus == entities.KYCApproved {
		return nil, domainerrors.Conflict("KYC already approved")
	}
	if user.KYCStatus == entities.KYCSubmitted {
		return nil, domainerrors.Conflict("KYC already under review")
	}

	user.KYCStatus = entities.KYCSubmitted
	user.IDType = input.IDType
	user.IDNumber = input.IDNumber
	user.VerifiedFullName = input.FullName
	user.IDVerified = false
	user.KYCReviewedAt = null.Time{}
	if err := u.userRepo.UpdateKYC(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ReviewKYC applies an admin decision on a submitted KYC.
func (u *AuthUsecase) ReviewKYC(ctx context.Context, userID uuid.UUID, input *entities.ReviewKYCInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.KYCStatus != entities.KYCSubmitted {
		return nil, domainerrors.Conflict("KYC is not awaiting review")
	}

	if input.Approve {
		user.KYCStatus = entities.KYCApproved
		user.IDVerified = true
		if input.VerifiedFullName != "" {
			user.VerifiedFullName = input.VerifiedFullName
		}
	} else {
		user.KYCStatus = entities.KYCRejected
		user.IDVerified = false
	}
	user.KYCReviewedAt = null.TimeFrom(time.Now())
	if err := u.userRepo.UpdateKYC(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// generateBarcodeID builds a collector barcode of the form KC-XXXXXXXXXX.
func generateBarcodeID() (string, error) {
	token, err := crypto.GenerateRandomToken(5)
	if err != nil {
		return "", err
	}
	return "KC-" + strings.ToUpper(token), nil
}
