package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/usecases"
)

type dropMocks struct {
	dropRepo    *MockTrashRecordRepository
	userRepo    *MockUserRepository
	rateRepo    *MockPaymentRateRepository
	factoryRepo *MockFactoryRepository
	walletRepo  *MockWalletRepository
	txRepo      *MockTransactionRepository
	uow         *MockUnitOfWork
}

func newDropUsecase(vendorShareBps int64) (*usecases.DropUsecase, *dropMocks) {
	m := &dropMocks{
		dropRepo:    new(MockTrashRecordRepository),
		userRepo:    new(MockUserRepository),
		rateRepo:    new(MockPaymentRateRepository),
		factoryRepo: new(MockFactoryRepository),
		walletRepo:  new(MockWalletRepository),
		txRepo:      new(MockTransactionRepository),
		uow:         new(MockUnitOfWork),
	}
	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Maybe()
	wallets := usecases.NewWalletUsecase(m.walletRepo, m.txRepo, new(MockAuditLogRepository), m.uow)
	uc := usecases.NewDropUsecase(m.dropRepo, m.userRepo, m.rateRepo, m.factoryRepo, wallets, m.uow, vendorShareBps)
	return uc, m
}

func activePlasticRate() *entities.PaymentRate {
	return &entities.PaymentRate{
		ID:             uuid.New(),
		TrashType:      entities.TrashTypePlastic,
		RatePerKgKobo:  5000, // ₦50 per kg
		RatePerTonKobo: 10_000_000,
		IsActive:       true,
	}
}

func TestCreateDrop_CollectorNamesVendor(t *testing.T) {
	uc, m := newDropUsecase(1000)

	collector := &entities.User{ID: uuid.New(), Role: entities.UserRoleCollector, KYCStatus: entities.KYCApproved}
	vendor := &entities.User{ID: uuid.New(), Role: entities.UserRoleVendor}

	m.rateRepo.On("GetActiveByType", mock.Anything, entities.TrashTypePlastic).Return(activePlasticRate(), nil)
	m.userRepo.On("GetByID", mock.Anything, vendor.ID).Return(vendor, nil)
	m.userRepo.On("GetByID", mock.Anything, collector.ID).Return(collector, nil)
	m.dropRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.TrashRecord")).Return(nil)

	record, err := uc.Create(context.Background(), collector.ID, entities.UserRoleCollector, &entities.CreateDropInput{
		VendorID:  vendor.ID.String(),
		TrashType: "plastic",
		WeightKg:  8.5,
	})

	assert.NoError(t, err)
	assert.Equal(t, entities.DropStatusPendingVendorConfirmation, record.Status)
	assert.Equal(t, int64(8500), record.WeightGrams)
	assert.Equal(t, int64(1), record.Version)
	assert.False(t, record.KYCWarning)
	assert.Zero(t, record.CommittedPayoutKobo, "payout is committed at confirmation, not creation")
	m.dropRepo.AssertExpectations(t)
}

func TestCreateDrop_VendorScansBarcode(t *testing.T) {
	uc, m := newDropUsecase(1000)

	collector := &entities.User{ID: uuid.New(), Role: entities.UserRoleCollector, BarcodeID: "KC-AB12C", KYCStatus: entities.KYCPending}
	vendor := &entities.User{ID: uuid.New(), Role: entities.UserRoleVendor}

	m.rateRepo.On("GetActiveByType", mock.Anything, entities.TrashTypePlastic).Return(activePlasticRate(), nil)
	m.userRepo.On("GetByBarcode", mock.Anything, "KC-AB12C").Return(collector, nil)
	m.userRepo.On("GetByID", mock.Anything, vendor.ID).Return(vendor, nil)
	m.dropRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.TrashRecord")).Return(nil)

	record, err := uc.Create(context.Background(), vendor.ID, entities.UserRoleVendor, &entities.CreateDropInput{
		CollectorBarcode: "KC-AB12C",
		TrashType:        "plastic",
		WeightKg:         8.5,
	})

	assert.NoError(t, err)
	assert.Equal(t, collector.ID, record.CollectorID)
	assert.Equal(t, vendor.ID, record.VendorID)
	assert.True(t, record.KYCWarning, "unapproved collector flags the drop")
}

func TestCreateDrop_BlockedWithoutActiveRate(t *testing.T) {
	uc, m := newDropUsecase(1000)

	m.rateRepo.On("GetActiveByType", mock.Anything, entities.TrashTypeGlass).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.Create(context.Background(), uuid.New(), entities.UserRoleCollector, &entities.CreateDropInput{
		VendorID:  uuid.New().String(),
		TrashType: "glass",
		WeightKg:  2,
	})

	assert.ErrorIs(t, err, domainerrors.ErrNoActiveRate)
	m.dropRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDrop_Validation(t *testing.T) {
	uc, m := newDropUsecase(1000)
	ctx := context.Background()

	_, err := uc.Create(ctx, uuid.New(), entities.UserRoleAdmin, &entities.CreateDropInput{
		TrashType: "plastic", WeightKg: 1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = uc.Create(ctx, uuid.New(), entities.UserRoleCollector, &entities.CreateDropInput{
		VendorID: uuid.New().String(), TrashType: "uranium", WeightKg: 1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	m.rateRepo.On("GetActiveByType", mock.Anything, entities.TrashTypePlastic).Return(activePlasticRate(), nil)

	_, err = uc.Create(ctx, uuid.New(), entities.UserRoleCollector, &entities.CreateDropInput{
		TrashType: "plastic", WeightKg: 1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput, "collector must name a vendor")

	m.userRepo.On("GetByBarcode", mock.Anything, "KC-MISSING").Return(nil, domainerrors.ErrNotFound)
	_, err = uc.Create(ctx, uuid.New(), entities.UserRoleVendor, &entities.CreateDropInput{
		CollectorBarcode: "KC-MISSING", TrashType: "plastic", WeightKg: 1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestConfirmDrop_SnapshotsRateAndPayout(t *testing.T) {
	uc, m := newDropUsecase(1000)

	vendorID := uuid.New()
	record := &entities.TrashRecord{
		ID:          uuid.New(),
		CollectorID: uuid.New(),
		VendorID:    vendorID,
		TrashType:   entities.TrashTypePlastic,
		WeightGrams: 8500,
		Status:      entities.DropStatusPendingVendorConfirmation,
		Version:     1,
	}

	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	m.rateRepo.On("GetActiveByType", mock.Anything, entities.TrashTypePlastic).Return(activePlasticRate(), nil)
	m.dropRepo.On("Transition", mock.Anything, record, int64(1)).Return(nil)

	got, err := uc.Confirm(context.Background(), vendorID, record.ID, &entities.ConfirmDropInput{})

	assert.NoError(t, err)
	assert.Equal(t, entities.DropStatusVendorConfirmed, got.Status)
	assert.Equal(t, int64(5000), got.RatePerKgKobo)
	// 8.5 kg at ₦50/kg is ₦425, i.e. 42500 kobo.
	assert.Equal(t, int64(42500), got.CommittedPayoutKobo)
	// Vendor share at 1000 bps is 10%.
	assert.Equal(t, int64(4250), got.VendorPayoutKobo)
	assert.True(t, got.ConfirmedAt.Valid)
}

func TestConfirmDrop_WeightCorrection(t *testing.T) {
	uc, m := newDropUsecase(0)

	vendorID := uuid.New()
	record := &entities.TrashRecord{
		ID:          uuid.New(),
		VendorID:    vendorID,
		TrashType:   entities.TrashTypePlastic,
		WeightGrams: 8500,
		Status:      entities.DropStatusPendingVendorConfirmation,
		Version:     1,
	}

	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	m.rateRepo.On("GetActiveByType", mock.Anything, entities.TrashTypePlastic).Return(activePlasticRate(), nil)
	m.dropRepo.On("Transition", mock.Anything, record, int64(1)).Return(nil)

	got, err := uc.Confirm(context.Background(), vendorID, record.ID, &entities.ConfirmDropInput{WeightKg: 10})

	assert.NoError(t, err)
	assert.Equal(t, int64(10000), got.WeightGrams)
	assert.Equal(t, int64(50000), got.CommittedPayoutKobo)
	assert.Zero(t, got.VendorPayoutKobo, "zero share bps means no vendor cut")
}

func TestConfirmDrop_Guards(t *testing.T) {
	uc, m := newDropUsecase(1000)
	ctx := context.Background()

	vendorID := uuid.New()
	confirmed := &entities.TrashRecord{
		ID:       uuid.New(),
		VendorID: vendorID,
		Status:   entities.DropStatusVendorConfirmed,
		Version:  2,
	}
	m.dropRepo.On("GetByID", mock.Anything, confirmed.ID).Return(confirmed, nil)

	_, err := uc.Confirm(ctx, uuid.New(), confirmed.ID, &entities.ConfirmDropInput{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden, "only the named vendor can confirm")

	_, err = uc.Confirm(ctx, vendorID, confirmed.ID, &entities.ConfirmDropInput{})
	assert.ErrorIs(t, err, domainerrors.ErrConflict, "already confirmed")
}

func TestConfirmDrop_StaleVersionConflict(t *testing.T) {
	uc, m := newDropUsecase(1000)

	vendorID := uuid.New()
	record := &entities.TrashRecord{
		ID:          uuid.New(),
		VendorID:    vendorID,
		TrashType:   entities.TrashTypePlastic,
		WeightGrams: 8500,
		Status:      entities.DropStatusPendingVendorConfirmation,
		Version:     2,
	}

	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	m.rateRepo.On("GetActiveByType", mock.Anything, entities.TrashTypePlastic).Return(activePlasticRate(), nil)
	m.dropRepo.On("Transition", mock.Anything, record, int64(1)).Return(domainerrors.ErrConflict)

	_, err := uc.Confirm(context.Background(), vendorID, record.ID, &entities.ConfirmDropInput{Version: 1})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestShipDrop_FactoryChecks(t *testing.T) {
	uc, m := newDropUsecase(1000)
	ctx := context.Background()

	vendorID := uuid.New()
	record := &entities.TrashRecord{
		ID:        uuid.New(),
		VendorID:  vendorID,
		TrashType: entities.TrashTypePlastic,
		Status:    entities.DropStatusVendorConfirmed,
		Version:   2,
	}
	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)

	unverified := &entities.Factory{ID: uuid.New(), AcceptedTrashTypes: "plastic", Verified: false}
	m.factoryRepo.On("GetByID", mock.Anything, unverified.ID).Return(unverified, nil)
	_, err := uc.Ship(ctx, vendorID, record.ID, &entities.ShipDropInput{FactoryID: unverified.ID.String()})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	paperOnly := &entities.Factory{ID: uuid.New(), AcceptedTrashTypes: "paper", Verified: true}
	m.factoryRepo.On("GetByID", mock.Anything, paperOnly.ID).Return(paperOnly, nil)
	_, err = uc.Ship(ctx, vendorID, record.ID, &entities.ShipDropInput{FactoryID: paperOnly.ID.String()})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	good := &entities.Factory{ID: uuid.New(), AcceptedTrashTypes: "plastic,metal", Verified: true}
	m.factoryRepo.On("GetByID", mock.Anything, good.ID).Return(good, nil)
	m.dropRepo.On("Transition", mock.Anything, record, int64(2)).Return(nil)

	got, err := uc.Ship(ctx, vendorID, record.ID, &entities.ShipDropInput{FactoryID: good.ID.String()})
	assert.NoError(t, err)
	assert.Equal(t, entities.DropStatusInTransit, got.Status)
	assert.Equal(t, good.ID, *got.FactoryID)
	assert.True(t, got.ShippedAt.Valid)
}

func TestReceiveDrop(t *testing.T) {
	uc, m := newDropUsecase(1000)

	ownerID := uuid.New()
	factory := &entities.Factory{ID: uuid.New(), OwnerUserID: ownerID, AcceptedTrashTypes: "plastic", Verified: true}
	record := &entities.TrashRecord{
		ID:        uuid.New(),
		FactoryID: &factory.ID,
		TrashType: entities.TrashTypePlastic,
		Status:    entities.DropStatusInTransit,
		Version:   3,
	}

	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	m.factoryRepo.On("GetByOwner", mock.Anything, ownerID).Return(factory, nil)
	m.dropRepo.On("Transition", mock.Anything, record, int64(3)).Return(nil)

	got, err := uc.Receive(context.Background(), ownerID, record.ID, &entities.AdvanceDropInput{})
	assert.NoError(t, err)
	assert.Equal(t, entities.DropStatusFactoryReceived, got.Status)
	assert.True(t, got.ReceivedAt.Valid)

	// Receipt never touches the ledger.
	m.txRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	m.walletRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestReceiveDrop_WrongFactory(t *testing.T) {
	uc, m := newDropUsecase(1000)

	otherFactoryID := uuid.New()
	ownerID := uuid.New()
	factory := &entities.Factory{ID: uuid.New(), OwnerUserID: ownerID}
	record := &entities.TrashRecord{
		ID:        uuid.New(),
		FactoryID: &otherFactoryID,
		Status:    entities.DropStatusInTransit,
		Version:   3,
	}

	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	m.factoryRepo.On("GetByOwner", mock.Anything, ownerID).Return(factory, nil)

	_, err := uc.Receive(context.Background(), ownerID, record.ID, &entities.AdvanceDropInput{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestReleasePayout_CreditsCollectorAndVendor(t *testing.T) {
	uc, m := newDropUsecase(1000)

	ownerID := uuid.New()
	factory := &entities.Factory{ID: uuid.New(), OwnerUserID: ownerID}
	collectorID := uuid.New()
	vendorID := uuid.New()
	record := &entities.TrashRecord{
		ID:                  uuid.New(),
		CollectorID:         collectorID,
		VendorID:            vendorID,
		FactoryID:           &factory.ID,
		TrashType:           entities.TrashTypePlastic,
		WeightGrams:         8500,
		Status:              entities.DropStatusFactoryReceived,
		RatePerKgKobo:       5000,
		CommittedPayoutKobo: 42500,
		VendorPayoutKobo:    4250,
		Version:             4,
	}
	collectorRef := "drop:" + record.ID.String() + ":collector"
	vendorRef := "drop:" + record.ID.String() + ":vendor"

	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	m.factoryRepo.On("GetByOwner", mock.Anything, ownerID).Return(factory, nil)
	m.dropRepo.On("Transition", mock.Anything, record, int64(4)).Return(nil)

	collectorWallet := &entities.Wallet{ID: uuid.New(), UserID: collectorID}
	vendorWallet := &entities.Wallet{ID: uuid.New(), UserID: vendorID}
	m.walletRepo.On("GetByUserID", mock.Anything, collectorID).Return(collectorWallet, nil)
	m.walletRepo.On("GetByUserID", mock.Anything, vendorID).Return(vendorWallet, nil)
	m.txRepo.On("GetByReference", mock.Anything, collectorRef).Return(nil, domainerrors.ErrNotFound)
	m.txRepo.On("GetByReference", mock.Anything, vendorRef).Return(nil, domainerrors.ErrNotFound)
	m.txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Reference == collectorRef && tx.AmountKobo == 42500 && tx.Type == entities.TransactionTypeEarn
	})).Return(nil)
	m.txRepo.On("Append", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.Reference == vendorRef && tx.AmountKobo == 4250
	})).Return(nil)
	m.walletRepo.On("ApplyDelta", mock.Anything, collectorID, int64(42500)).Return(nil)
	m.walletRepo.On("ApplyDelta", mock.Anything, vendorID, int64(4250)).Return(nil)

	got, err := uc.ReleasePayout(context.Background(), ownerID, record.ID, &entities.AdvanceDropInput{})

	assert.NoError(t, err)
	assert.Equal(t, entities.DropStatusPayoutReleased, got.Status)
	assert.True(t, got.PaidAt.Valid)
	m.walletRepo.AssertExpectations(t)
	m.txRepo.AssertExpectations(t)
}

func TestReleasePayout_ReplayedReferenceDoesNotDoubleCredit(t *testing.T) {
	uc, m := newDropUsecase(0)

	ownerID := uuid.New()
	factory := &entities.Factory{ID: uuid.New(), OwnerUserID: ownerID}
	collectorID := uuid.New()
	record := &entities.TrashRecord{
		ID:                  uuid.New(),
		CollectorID:         collectorID,
		VendorID:            uuid.New(),
		FactoryID:           &factory.ID,
		TrashType:           entities.TrashTypePlastic,
		Status:              entities.DropStatusFactoryReceived,
		CommittedPayoutKobo: 42500,
		Version:             4,
	}
	collectorRef := "drop:" + record.ID.String() + ":collector"

	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	m.factoryRepo.On("GetByOwner", mock.Anything, ownerID).Return(factory, nil)
	m.dropRepo.On("Transition", mock.Anything, record, int64(4)).Return(nil)
	m.walletRepo.On("GetByUserID", mock.Anything, collectorID).Return(&entities.Wallet{ID: uuid.New(), UserID: collectorID}, nil)
	m.txRepo.On("GetByReference", mock.Anything, collectorRef).Return(&entities.Transaction{
		ID: uuid.New(), Reference: collectorRef, AmountKobo: 42500,
	}, nil)

	_, err := uc.ReleasePayout(context.Background(), ownerID, record.ID, &entities.AdvanceDropInput{})

	assert.NoError(t, err)
	m.txRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	m.walletRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelDrop_WritesNoLedgerEntries(t *testing.T) {
	uc, m := newDropUsecase(1000)

	vendorID := uuid.New()
	record := &entities.TrashRecord{
		ID:                  uuid.New(),
		VendorID:            vendorID,
		Status:              entities.DropStatusVendorConfirmed,
		CommittedPayoutKobo: 42500,
		Version:             2,
	}

	m.dropRepo.On("GetByID", mock.Anything, record.ID).Return(record, nil)
	m.dropRepo.On("Transition", mock.Anything, record, int64(2)).Return(nil)

	got, err := uc.Cancel(context.Background(), vendorID, entities.UserRoleVendor, record.ID, &entities.CancelDropInput{
		Reason: "collector never showed up",
	})

	assert.NoError(t, err)
	assert.Equal(t, entities.DropStatusCancelled, got.Status)
	assert.Equal(t, "collector never showed up", got.CancelReason)
	assert.True(t, got.CancelledAt.Valid)
	m.txRepo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	m.walletRepo.AssertNotCalled(t, "ApplyDelta", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelDrop_TerminalStatesRefuse(t *testing.T) {
	uc, m := newDropUsecase(1000)
	ctx := context.Background()

	paid := &entities.TrashRecord{ID: uuid.New(), Status: entities.DropStatusPayoutReleased, Version: 5}
	m.dropRepo.On("GetByID", mock.Anything, paid.ID).Return(paid, nil)

	_, err := uc.Cancel(ctx, uuid.New(), entities.UserRoleAdmin, paid.ID, &entities.CancelDropInput{})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	cancelled := &entities.TrashRecord{ID: uuid.New(), Status: entities.DropStatusCancelled, Version: 2}
	m.dropRepo.On("GetByID", mock.Anything, cancelled.ID).Return(cancelled, nil)

	_, err = uc.Cancel(ctx, uuid.New(), entities.UserRoleAdmin, cancelled.ID, &entities.CancelDropInput{})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	_, err = uc.Cancel(ctx, uuid.New(), entities.UserRoleCollector, paid.ID, &entities.CancelDropInput{})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden, "collectors cannot cancel")
}

func TestListForActor(t *testing.T) {
	uc, m := newDropUsecase(1000)
	ctx := context.Background()

	collectorID := uuid.New()
	m.dropRepo.On("ListByCollector", mock.Anything, collectorID, 20, 0).
		Return([]*entities.TrashRecord{{ID: uuid.New()}}, int64(1), nil)

	records, total, err := uc.ListForActor(ctx, collectorID, entities.UserRoleCollector, "", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, records, 1)

	ownerID := uuid.New()
	factory := &entities.Factory{ID: uuid.New(), OwnerUserID: ownerID}
	m.factoryRepo.On("GetByOwner", mock.Anything, ownerID).Return(factory, nil)
	m.dropRepo.On("ListByFactory", mock.Anything, factory.ID, entities.DropStatusInTransit, 20, 0).
		Return([]*entities.TrashRecord{}, int64(0), nil)

	_, _, err = uc.ListForActor(ctx, ownerID, entities.UserRoleFactory, entities.DropStatusInTransit, 1, 20)
	assert.NoError(t, err)

	_, _, err = uc.ListForActor(ctx, uuid.New(), entities.UserRoleAdmin, "", 1, 20)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
