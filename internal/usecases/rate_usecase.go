package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/domain/repositories"
	"kudichain.backend/pkg/utils"
)

// RateUsecase manages payment rates. At most one active rate exists per
// trash type; activating a new rate deactivates the old one in the same
// transaction.
type RateUsecase struct {
	rateRepo  repositories.PaymentRateRepository
	auditRepo repositories.AuditLogRepository
	uow       repositories.UnitOfWork
}

// NewRateUsecase creates a new rate usecase
func NewRateUsecase(
	rateRepo repositories.PaymentRateRepository,
	auditRepo repositories.AuditLogRepository,
	uow repositories.UnitOfWork,
) *RateUsecase {
	return &RateUsecase{
		rateRepo:  rateRepo,
		auditRepo: auditRepo,
		uow:       uow,
	}
}

// Upsert creates a rate for a trash type. The per-ton rate must stay
// within the allowed band around the per-kg rate.
func (u *RateUsecase) Upsert(ctx context.Context, adminID uuid.UUID, input *entities.UpsertRateInput) (*entities.PaymentRate, error) {
	trashType := entities.TrashType(input.TrashType)
	if !trashType.Valid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown trash type %q", input.TrashType))
	}

	rate := &entities.PaymentRate{
		ID:             utils.GenerateUUIDv7(),
		TrashType:      trashType,
		RatePerKgKobo:  utils.NairaToKobo(input.RatePerKgNaira),
		RatePerTonKobo: utils.NairaToKobo(input.RatePerTonNaira),
		IsActive:       input.IsActive,
		UpdatedBy:      &adminID,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if rate.RatePerKgKobo <= 0 {
		return nil, domainerrors.BadRequest("per-kg rate must be positive")
	}
	if !rate.TonBandValid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf(
			"per-ton rate must be between %d and %d kobo for a per-kg rate of %d kobo",
			rate.RatePerKgKobo*entities.RatePerTonMinFactor,
			rate.RatePerKgKobo*entities.RatePerTonMaxFactor,
			rate.RatePerKgKobo,
		))
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if rate.IsActive {
			if err := u.rateRepo.DeactivateByType(txCtx, trashType); err != nil {
				return err
			}
		}
		return u.rateRepo.Create(txCtx, rate)
	})
	if err != nil {
		return nil, err
	}

	audit := &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		ActorID:    adminID,
		Action:     "rate.upsert",
		EntityType: "payment_rate",
		EntityID:   rate.ID.String(),
		Detail: fmt.Sprintf(`{"trashType":%q,"ratePerKgKobo":%d,"ratePerTonKobo":%d,"isActive":%t}`,
			trashType, rate.RatePerKgKobo, rate.RatePerTonKobo, rate.IsActive),
		CreatedAt: time.Now(),
	}
	if err := u.auditRepo.Create(ctx, audit); err != nil {
		return nil, err
	}
	return rate, nil
}

// GetActive returns the active rate for a trash type.
func (u *RateUsecase) GetActive(ctx context.Context, trashType entities.TrashType) (*entities.PaymentRate, error) {
	if !trashType.Valid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown trash type %q", trashType))
	}
	rate, err := u.rateRepo.GetActiveByType(ctx, trashType)
	if err != nil {
		return nil, err
	}
	return rate, nil
}

// List returns configured rates, optionally active ones only.
func (u *RateUsecase) List(ctx context.Context, activeOnly bool) ([]*entities.PaymentRate, error) {
	return u.rateRepo.List(ctx, activeOnly)
}

// Deactivate clears the active rate for a trash type. Drops of that
// type can no longer be created or confirmed until a new rate is set.
func (u *RateUsecase) Deactivate(ctx context.Context, adminID uuid.UUID, trashType entities.TrashType) error {
	if !trashType.Valid() {
		return domainerrors.BadRequest(fmt.Sprintf("unknown trash type %q", trashType))
	}
	if err := u.rateRepo.DeactivateByType(ctx, trashType); err != nil {
		return err
	}
	audit := &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		ActorID:    adminID,
		Action:     "rate.deactivate",
		EntityType: "payment_rate",
		EntityID:   string(trashType),
		CreatedAt:  time.Now(),
	}
	return u.auditRepo.Create(ctx, audit)
}
