package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/domain/repositories"
	"kudichain.backend/pkg/utils"
)

// DropUsecase drives the trash record lifecycle from creation through
// payout release. Every transition is conditional on the record's
// version, so two racing writers can never both succeed.
type DropUsecase struct {
	dropRepo       repositories.TrashRecordRepository
	userRepo       repositories.UserRepository
	rateRepo       repositories.PaymentRateRepository
	factoryRepo    repositories.FactoryRepository
	wallets        *WalletUsecase
	uow            repositories.UnitOfWork
	vendorShareBps int64
}

// NewDropUsecase creates a new drop usecase. vendorShareBps is the
// vendor's cut of the committed payout in basis points.
func NewDropUsecase(
	dropRepo repositories.TrashRecordRepository,
	userRepo repositories.UserRepository,
	rateRepo repositories.PaymentRateRepository,
	factoryRepo repositories.FactoryRepository,
	wallets *WalletUsecase,
	uow repositories.UnitOfWork,
	vendorShareBps int64,
) *DropUsecase {
	return &DropUsecase{
		dropRepo:       dropRepo,
		userRepo:       userRepo,
		rateRepo:       rateRepo,
		factoryRepo:    factoryRepo,
		wallets:        wallets,
		uow:            uow,
		vendorShareBps: vendorShareBps,
	}
}

// Create registers a new drop in pending_vendor_confirmation. A
// collector names the receiving vendor; a vendor instead scans the
// collector's barcode. Creation is refused when the trash type has no
// active payment rate, so a drop can never reach confirmation unpriced.
func (u *DropUsecase) Create(ctx context.Context, actorID uuid.UUID, role entities.UserRole, input *entities.CreateDropInput) (*entities.TrashRecord, error) {
	if !RoleCan(role, DropActionCreate) {
		return nil, domainerrors.Forbidden("role cannot create drops")
	}
	trashType := entities.TrashType(input.TrashType)
	if !trashType.Valid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown trash type %q", input.TrashType))
	}
	weightGrams := utils.KgToGrams(input.WeightKg)
	if weightGrams <= 0 {
		return nil, domainerrors.BadRequest("weight must be positive")
	}

	if _, err := u.rateRepo.GetActiveByType(ctx, trashType); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ConfigurationError(fmt.Sprintf("no active payment rate for %s", trashType))
		}
		return nil, err
	}

	var collector, vendor *entities.User
	switch role {
	case entities.UserRoleCollector:
		if input.VendorID == "" {
			return nil, domainerrors.BadRequest("vendorId is required")
		}
		vendorID, err := uuid.Parse(input.VendorID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid vendor ID")
		}
		vendor, err = u.userRepo.GetByID(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		collector, err = u.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
	case entities.UserRoleVendor:
		if input.CollectorBarcode == "" {
			return nil, domainerrors.BadRequest("collectorBarcode is required")
		}
		var err error
		collector, err = u.userRepo.GetByBarcode(ctx, input.CollectorBarcode)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("no collector with that barcode")
			}
			return nil, err
		}
		vendor, err = u.userRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
	}
	if vendor.Role != entities.UserRoleVendor {
		return nil, domainerrors.BadRequest("receiving user is not a vendor")
	}
	if collector.Role != entities.UserRoleCollector {
		return nil, domainerrors.BadRequest("dropping user is not a collector")
	}

	record := &entities.TrashRecord{
		ID:          utils.GenerateUUIDv7(),
		CollectorID: collector.ID,
		VendorID:    vendor.ID,
		TrashType:   trashType,
		WeightGrams: weightGrams,
		Status:      entities.DropStatusPendingVendorConfirmation,
		KYCWarning:  collector.KYCStatus != entities.KYCApproved,
		Version:     1,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := u.dropRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Confirm moves a drop to vendor_confirmed. The vendor may correct the
// weight; the active per-kg rate and the resulting payout amounts are
// snapshotted here and never recomputed, so later rate changes only
// affect new confirmations.
func (u *DropUsecase) Confirm(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID, input *entities.ConfirmDropInput) (*entities.TrashRecord, error) {
	record, err := u.dropRepo.GetByID(ctx, dropID)
	if err != nil {
		return nil, err
	}
	if record.VendorID != actorID {
		return nil, domainerrors.Forbidden("drop belongs to a different vendor")
	}
	if !record.Status.CanTransition(entities.DropStatusVendorConfirmed) {
		return nil, invalidTransition(record.Status, entities.DropStatusVendorConfirmed)
	}

	if input.WeightKg > 0 {
		record.WeightGrams = utils.KgToGrams(input.WeightKg)
	}

	rate, err := u.rateRepo.GetActiveByType(ctx, record.TrashType)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ConfigurationError(fmt.Sprintf("no active payment rate for %s", record.TrashType))
		}
		return nil, err
	}

	record.RatePerKgKobo = rate.RatePerKgKobo
	record.CommittedPayoutKobo = record.WeightGrams * rate.RatePerKgKobo / 1000
	record.VendorPayoutKobo = record.CommittedPayoutKobo * u.vendorShareBps / 10000
	record.Status = entities.DropStatusVendorConfirmed
	record.ConfirmedAt = null.TimeFrom(time.Now())

	if err := u.dropRepo.Transition(ctx, record, expectedVersion(input.Version, record)); err != nil {
		return nil, err
	}
	return record, nil
}

// Ship dispatches a confirmed drop to a verified factory that accepts
// the drop's trash type.
func (u *DropUsecase) Ship(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID, input *entities.ShipDropInput) (*entities.TrashRecord, error) {
	record, err := u.dropRepo.GetByID(ctx, dropID)
	if err != nil {
		return nil, err
	}
	if record.VendorID != actorID {
		return nil, domainerrors.Forbidden("drop belongs to a different vendor")
	}
	if !record.Status.CanTransition(entities.DropStatusInTransit) {
		return nil, invalidTransition(record.Status, entities.DropStatusInTransit)
	}

	factoryID, err := uuid.Parse(input.FactoryID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid factory ID")
	}
	factory, err := u.factoryRepo.GetByID(ctx, factoryID)
	if err != nil {
		return nil, err
	}
	if !factory.Verified {
		return nil, domainerrors.BadRequest("factory is not verified")
	}
	if !factory.Accepts(record.TrashType) {
		return nil, domainerrors.BadRequest(fmt.Sprintf("factory does not accept %s", record.TrashType))
	}

	record.FactoryID = &factory.ID
	record.Status = entities.DropStatusInTransit
	record.ShippedAt = null.TimeFrom(time.Now())

	if err := u.dropRepo.Transition(ctx, record, expectedVersion(input.Version, record)); err != nil {
		return nil, err
	}
	return record, nil
}

// Receive marks an in-transit drop as arrived at the factory. Receipt
// does not pay anyone; payout is a separate explicit action.
func (u *DropUsecase) Receive(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID, input *entities.AdvanceDropInput) (*entities.TrashRecord, error) {
	record, _, err := u.loadForFactory(ctx, actorID, dropID)
	if err != nil {
		return nil, err
	}
	if !record.Status.CanTransition(entities.DropStatusFactoryReceived) {
		return nil, invalidTransition(record.Status, entities.DropStatusFactoryReceived)
	}

	record.Status = entities.DropStatusFactoryReceived
	record.ReceivedAt = null.TimeFrom(time.Now())

	if err := u.dropRepo.Transition(ctx, record, expectedVersion(input.Version, record)); err != nil {
		return nil, err
	}
	return record, nil
}

// ReleasePayout finalizes a received drop: the status change and the
// collector and vendor ledger credits commit in one transaction. The
// ledger references are derived from the drop ID, so a retried release
// can never double-credit.
func (u *DropUsecase) ReleasePayout(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID, input *entities.AdvanceDropInput) (*entities.TrashRecord, error) {
	record, _, err := u.loadForFactory(ctx, actorID, dropID)
	if err != nil {
		return nil, err
	}
	if !record.Status.CanTransition(entities.DropStatusPayoutReleased) {
		return nil, invalidTransition(record.Status, entities.DropStatusPayoutReleased)
	}

	record.Status = entities.DropStatusPayoutReleased
	record.PaidAt = null.TimeFrom(time.Now())

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.dropRepo.Transition(txCtx, record, expectedVersion(input.Version, record)); err != nil {
			return err
		}

		collectorWallet, err := u.wallets.walletRepo.GetByUserID(txCtx, record.CollectorID)
		if err != nil {
			return err
		}
		if _, err := u.wallets.recordInTx(txCtx, record.CollectorID, collectorWallet.ID, &entities.RecordTransactionInput{
			Type:          entities.TransactionTypeEarn,
			AmountKobo:    record.CommittedPayoutKobo,
			Reference:     fmt.Sprintf("drop:%s:collector", record.ID),
			Description:   fmt.Sprintf("payout for %s drop", record.TrashType),
			TrashRecordID: &record.ID,
		}); err != nil {
			return err
		}

		if record.VendorPayoutKobo > 0 {
			vendorWallet, err := u.wallets.walletRepo.GetByUserID(txCtx, record.VendorID)
			if err != nil {
				return err
			}
			if _, err := u.wallets.recordInTx(txCtx, record.VendorID, vendorWallet.ID, &entities.RecordTransactionInput{
				Type:          entities.TransactionTypeEarn,
				AmountKobo:    record.VendorPayoutKobo,
				Reference:     fmt.Sprintf("drop:%s:vendor", record.ID),
				Description:   fmt.Sprintf("vendor share for %s drop", record.TrashType),
				TrashRecordID: &record.ID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Cancel voids a drop from any non-terminal state. No ledger entries
// are ever written for a cancelled drop.
func (u *DropUsecase) Cancel(ctx context.Context, actorID uuid.UUID, role entities.UserRole, dropID uuid.UUID, input *entities.CancelDropInput) (*entities.TrashRecord, error) {
	if !RoleCan(role, DropActionCancel) {
		return nil, domainerrors.Forbidden("role cannot cancel drops")
	}
	record, err := u.dropRepo.GetByID(ctx, dropID)
	if err != nil {
		return nil, err
	}
	if err := u.checkCancelOwnership(ctx, actorID, role, record); err != nil {
		return nil, err
	}
	if !record.Status.CanTransition(entities.DropStatusCancelled) {
		return nil, invalidTransition(record.Status, entities.DropStatusCancelled)
	}

	record.Status = entities.DropStatusCancelled
	record.CancelReason = input.Reason
	record.CancelledAt = null.TimeFrom(time.Now())

	if err := u.dropRepo.Transition(ctx, record, expectedVersion(input.Version, record)); err != nil {
		return nil, err
	}
	return record, nil
}

// GetByID returns a drop visible to the actor.
func (u *DropUsecase) GetByID(ctx context.Context, actorID uuid.UUID, role entities.UserRole, dropID uuid.UUID) (*entities.TrashRecord, error) {
	record, err := u.dropRepo.GetByID(ctx, dropID)
	if err != nil {
		return nil, err
	}
	if err := u.checkReadAccess(ctx, actorID, role, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListForActor lists drops from the actor's side of the marketplace.
func (u *DropUsecase) ListForActor(ctx context.Context, actorID uuid.UUID, role entities.UserRole, status entities.DropStatus, page, limit int) ([]*entities.TrashRecord, int64, error) {
	offset := (page - 1) * limit
	switch role {
	case entities.UserRoleCollector:
		return u.dropRepo.ListByCollector(ctx, actorID, limit, offset)
	case entities.UserRoleVendor:
		return u.dropRepo.ListByVendor(ctx, actorID, status, limit, offset)
	case entities.UserRoleFactory:
		factory, err := u.factoryRepo.GetByOwner(ctx, actorID)
		if err != nil {
			return nil, 0, err
		}
		return u.dropRepo.ListByFactory(ctx, factory.ID, status, limit, offset)
	default:
		return nil, 0, domainerrors.Forbidden("role has no drop listing")
	}
}

// loadForFactory loads a drop and verifies the actor owns its assigned
// factory.
func (u *DropUsecase) loadForFactory(ctx context.Context, actorID uuid.UUID, dropID uuid.UUID) (*entities.TrashRecord, *entities.Factory, error) {
	record, err := u.dropRepo.GetByID(ctx, dropID)
	if err != nil {
		return nil, nil, err
	}
	factory, err := u.factoryRepo.GetByOwner(ctx, actorID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.Forbidden("actor has no registered factory")
		}
		return nil, nil, err
	}
	if record.FactoryID == nil || *record.FactoryID != factory.ID {
		return nil, nil, domainerrors.Forbidden("drop is assigned to a different factory")
	}
	return record, factory, nil
}

func (u *DropUsecase) checkCancelOwnership(ctx context.Context, actorID uuid.UUID, role entities.UserRole, record *entities.TrashRecord) error {
	switch role {
	case entities.UserRoleAdmin:
		return nil
	case entities.UserRoleVendor:
		if record.VendorID != actorID {
			return domainerrors.Forbidden("drop belongs to a different vendor")
		}
		return nil
	case entities.UserRoleFactory:
		factory, err := u.factoryRepo.GetByOwner(ctx, actorID)
		if err != nil {
			return domainerrors.Forbidden("actor has no registered factory")
		}
		if record.FactoryID == nil || *record.FactoryID != factory.ID {
			return domainerrors.Forbidden("drop is assigned to a different factory")
		}
		return nil
	default:
		return domainerrors.Forbidden("role cannot cancel drops")
	}
}

func (u *DropUsecase) checkReadAccess(ctx context.Context, actorID uuid.UUID, role entities.UserRole, record *entities.TrashRecord) error {
	switch role {
	case entities.UserRoleAdmin:
		return nil
	case entities.UserRoleCollector:
		if record.CollectorID != actorID {
			return domainerrors.Forbidden("not your drop")
		}
	case entities.UserRoleVendor:
		if record.VendorID != actorID {
			return domainerrors.Forbidden("not your drop")
		}
	case entities.UserRoleFactory:
		factory, err := u.factoryRepo.GetByOwner(ctx, actorID)
		if err != nil {
			return domainerrors.Forbidden("actor has no registered factory")
		}
		if record.FactoryID == nil || *record.FactoryID != factory.ID {
			return domainerrors.Forbidden("not your drop")
		}
	}
	return nil
}

// expectedVersion resolves the optimistic lock version for a
// transition: the client-supplied version when present, otherwise the
// version just read.
func expectedVersion(requested int64, record *entities.TrashRecord) int64 {
	if requested > 0 {
		return requested
	}
	return record.Version
}

func invalidTransition(from, to entities.DropStatus) *domainerrors.AppError {
	return domainerrors.Conflict(fmt.Sprintf("cannot move drop from %s to %s", from, to))
}
