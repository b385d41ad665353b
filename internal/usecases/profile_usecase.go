package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/domain/repositories"
	"kudichain.backend/pkg/utils"
)

// ProfileUsecase manages vendor profiles and factories. Both start
// unverified; admin verification gates shipping and task posting.
type ProfileUsecase struct {
	vendorRepo  repositories.VendorProfileRepository
	factoryRepo repositories.FactoryRepository
	userRepo    repositories.UserRepository
	auditRepo   repositories.AuditLogRepository
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(
	vendorRepo repositories.VendorProfileRepository,
	factoryRepo repositories.FactoryRepository,
	userRepo repositories.UserRepository,
	auditRepo repositories.AuditLogRepository,
) *ProfileUsecase {
	return &ProfileUsecase{
		vendorRepo:  vendorRepo,
		factoryRepo: factoryRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
	}
}

// UpsertVendorProfile creates or updates the actor's vendor profile.
// Editing a verified profile clears the verified flag.
func (u *ProfileUsecase) UpsertVendorProfile(ctx context.Context, userID uuid.UUID, input *entities.UpsertVendorProfileInput) (*entities.VendorProfile, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != entities.UserRoleVendor {
		return nil, domainerrors.Forbidden("only vendors have vendor profiles")
	}

	profile := &entities.VendorProfile{
		ID:            utils.GenerateUUIDv7(),
		UserID:        userID,
		BusinessName:  input.BusinessName,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		AccountName:   input.AccountName,
		State:         input.State,
		LGA:           input.LGA,
		Ward:          input.Ward,
		Verified:      false,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := u.vendorRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return u.vendorRepo.GetByUserID(ctx, userID)
}

// GetVendorProfile returns a vendor's profile.
func (u *ProfileUsecase) GetVendorProfile(ctx context.Context, userID uuid.UUID) (*entities.VendorProfile, error) {
	return u.vendorRepo.GetByUserID(ctx, userID)
}

// ListVendorProfiles lists vendor profiles, optionally by state.
func (u *ProfileUsecase) ListVendorProfiles(ctx context.Context, state string) ([]*entities.VendorProfile, error) {
	return u.vendorRepo.List(ctx, state)
}

// VerifyVendor sets a vendor profile's verified flag and records the
// decision.
func (u *ProfileUsecase) VerifyVendor(ctx context.Context, adminID, userID uuid.UUID, verified bool) error {
	if err := u.vendorRepo.SetVerified(ctx, userID, verified); err != nil {
		return err
	}
	return u.auditRepo.Create(ctx, &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		ActorID:    adminID,
		Action:     "vendor.verify",
		EntityType: "vendor_profile",
		EntityID:   userID.String(),
		Detail:     fmt.Sprintf(`{"verified":%t}`, verified),
		CreatedAt:  time.Now(),
	})
}

// RegisterFactory creates the actor's factory. One factory per
// factory-role user.
func (u *ProfileUsecase) RegisterFactory(ctx context.Context, userID uuid.UUID, input *entities.RegisterFactoryInput) (*entities.Factory, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != entities.UserRoleFactory {
		return nil, domainerrors.Forbidden("only factory users register factories")
	}

	if _, err := u.factoryRepo.GetByOwner(ctx, userID); err == nil {
		return nil, domainerrors.Conflict("factory already registered for this user")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	accepted := make([]string, 0, len(input.AcceptedTrashTypes))
	for _, raw := range input.AcceptedTrashTypes {
		t := entities.TrashType(strings.TrimSpace(raw))
		if !t.Valid() {
			return nil, domainerrors.BadRequest(fmt.Sprintf("unknown trash type %q", raw))
		}
		accepted = append(accepted, string(t))
	}

	factory := &entities.Factory{
		ID:                 utils.GenerateUUIDv7(),
		OwnerUserID:        userID,
		Name:               input.Name,
		AcceptedTrashTypes: strings.Join(accepted, ","),
		Latitude:           input.Latitude,
		Longitude:          input.Longitude,
		Address:            input.Address,
		State:              input.State,
		Verified:           false,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if err := u.factoryRepo.Create(ctx, factory); err != nil {
		return nil, err
	}
	return factory, nil
}

// GetFactoryByOwner returns the actor's factory.
func (u *ProfileUsecase) GetFactoryByOwner(ctx context.Context, userID uuid.UUID) (*entities.Factory, error) {
	return u.factoryRepo.GetByOwner(ctx, userID)
}

// ListFactories lists factories, optionally verified ones only.
func (u *ProfileUsecase) ListFactories(ctx context.Context, verifiedOnly bool) ([]*entities.Factory, error) {
	return u.factoryRepo.List(ctx, verifiedOnly)
}

// VerifyFactory sets a factory's verified flag and records the
// decision.
func (u *ProfileUsecase) VerifyFactory(ctx context.Context, adminID, factoryID uuid.UUID, verified bool) error {
	if err := u.factoryRepo.SetVerified(ctx, factoryID, verified); err != nil {
		return err
	}
	return u.auditRepo.Create(ctx, &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		ActorID:    adminID,
		Action:     "factory.verify",
		EntityType: "factory",
		EntityID:   factoryID.String(),
		Detail:     fmt.Sprintf(`{"verified":%t}`, verified),
		CreatedAt:  time.Now(),
	})
}
