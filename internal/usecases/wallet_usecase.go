package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/domain/repositories"
	"kudichain.backend/pkg/utils"
)

// WalletUsecase maintains the per-user balance as a cached value over
// the append-only transaction ledger.
type WalletUsecase struct {
	walletRepo repositories.WalletRepository
	txRepo     repositories.TransactionRepository
	auditRepo  repositories.AuditLogRepository
	uow        repositories.UnitOfWork
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(
	walletRepo repositories.WalletRepository,
	txRepo repositories.TransactionRepository,
	auditRepo repositories.AuditLogRepository,
	uow repositories.UnitOfWork,
) *WalletUsecase {
	return &WalletUsecase{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		auditRepo:  auditRepo,
		uow:        uow,
	}
}

// RecordTransaction appends a ledger entry and adjusts the cached
// balance in one local transaction. It is idempotent on the reference:
// replaying a reference returns the original entry and leaves the
// balance untouched.
func (u *WalletUsecase) RecordTransaction(ctx context.Context, userID uuid.UUID, input *entities.RecordTransactionInput) (*entities.Transaction, error) {
	if input.AmountKobo <= 0 {
		return nil, domainerrors.BadRequest("transaction amount must be positive")
	}
	if !input.Type.Valid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown transaction type %q", input.Type))
	}
	if input.Reference == "" {
		return nil, domainerrors.BadRequest("transaction reference is required")
	}

	var out *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.txRepo.GetByReference(txCtx, input.Reference)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		wallet, err := u.walletRepo.GetByUserID(txCtx, userID)
		if err != nil {
			return err
		}

		entry := &entities.Transaction{
			ID:            utils.GenerateUUIDv7(),
			WalletID:      wallet.ID,
			UserID:        userID,
			Type:          input.Type,
			AmountKobo:    input.AmountKobo,
			Reference:     input.Reference,
			Description:   input.Description,
			TaskID:        input.TaskID,
			TrashRecordID: input.TrashRecordID,
			CreatedAt:     time.Now(),
		}
		if err := u.txRepo.Append(txCtx, entry); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				// Lost the race to a concurrent submit of the same
				// reference; surface the winning entry.
				existing, getErr := u.txRepo.GetByReference(txCtx, input.Reference)
				if getErr != nil {
					return getErr
				}
				out = existing
				return nil
			}
			return err
		}

		if err := u.walletRepo.ApplyDelta(txCtx, userID, input.Type.SignedAmount(input.AmountKobo)); err != nil {
			return err
		}
		out = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Redeem debits the wallet, failing on insufficient balance.
func (u *WalletUsecase) Redeem(ctx context.Context, userID uuid.UUID, input *entities.RedeemInput) (*entities.Transaction, error) {
	amountKobo := utils.NairaToKobo(input.AmountNaira)
	if amountKobo <= 0 {
		return nil, domainerrors.BadRequest("redeem amount must be positive")
	}

	var out *entities.Transaction
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		wallet, err := u.walletRepo.GetByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		if wallet.BalanceKobo < amountKobo {
			return domainerrors.ErrInsufficientFunds
		}

		entry, err := u.recordInTx(txCtx, userID, wallet.ID, &entities.RecordTransactionInput{
			Type:        entities.TransactionTypeRedeem,
			AmountKobo:  amountKobo,
			Reference:   input.Reference,
			Description: "wallet redemption",
		})
		if err != nil {
			return err
		}
		out = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Adjust applies an admin bonus or penalty and records an audit entry.
func (u *WalletUsecase) Adjust(ctx context.Context, adminID uuid.UUID, input *entities.AdjustWalletInput) (*entities.Transaction, error) {
	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid user ID")
	}
	txType := entities.TransactionType(input.Type)
	if txType != entities.TransactionTypeBonus && txType != entities.TransactionTypePenalty {
		return nil, domainerrors.BadRequest("adjustment type must be bonus or penalty")
	}

	entry, err := u.RecordTransaction(ctx, userID, &entities.RecordTransactionInput{
		Type:        txType,
		AmountKobo:  utils.NairaToKobo(input.AmountNaira),
		Reference:   input.Reference,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	audit := &entities.AuditLog{
		ID:         utils.GenerateUUIDv7(),
		ActorID:    adminID,
		Action:     "wallet." + input.Type,
		EntityType: "transaction",
		EntityID:   entry.ID.String(),
		Detail:     fmt.Sprintf(`{"userId":%q,"amountKobo":%d}`, userID, entry.AmountKobo),
		CreatedAt:  time.Now(),
	}
	if err := u.auditRepo.Create(ctx, audit); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetBalance returns the cached wallet balance.
func (u *WalletUsecase) GetBalance(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	return u.walletRepo.GetByUserID(ctx, userID)
}

// GetTransactions lists a user's ledger entries.
func (u *WalletUsecase) GetTransactions(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Transaction, int64, error) {
	offset := (page - 1) * limit
	return u.txRepo.ListByUser(ctx, userID, limit, offset)
}

// VerifyBalance recomputes the signed ledger sum and compares it with
// the cached balance. Used by admin diagnostics.
func (u *WalletUsecase) VerifyBalance(ctx context.Context, userID uuid.UUID) (bool, int64, int64, error) {
	wallet, err := u.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, 0, 0, err
	}
	sum, err := u.txRepo.SignedSum(ctx, userID)
	if err != nil {
		return false, 0, 0, err
	}
	return wallet.BalanceKobo == sum, wallet.BalanceKobo, sum, nil
}

// recordInTx appends an entry and applies its delta inside an already
// open transaction context.
func (u *WalletUsecase) recordInTx(txCtx context.Context, userID, walletID uuid.UUID, input *entities.RecordTransactionInput) (*entities.Transaction, error) {
	if input.Reference == "" {
		return nil, domainerrors.BadRequest("transaction reference is required")
	}
	existing, err := u.txRepo.GetByReference(txCtx, input.Reference)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	entry := &entities.Transaction{
		ID:            utils.GenerateUUIDv7(),
		WalletID:      walletID,
		UserID:        userID,
		Type:          input.Type,
		AmountKobo:    input.AmountKobo,
		Reference:     input.Reference,
		Description:   input.Description,
		TaskID:        input.TaskID,
		TrashRecordID: input.TrashRecordID,
		CreatedAt:     time.Now(),
	}
	if err := u.txRepo.Append(txCtx, entry); err != nil {
		return nil, err
	}
	if err := u.walletRepo.ApplyDelta(txCtx, userID, input.Type.SignedAmount(input.AmountKobo)); err != nil {
		return nil, err
	}
	return entry, nil
}
