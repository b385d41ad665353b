package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	m := &models.Wallet{
		ID:          wallet.ID,
		UserID:      wallet.UserID,
		BalanceKobo: wallet.BalanceKobo,
		CreatedAt:   wallet.CreatedAt,
		UpdatedAt:   wallet.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByUserID gets a wallet by owner
func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrWalletNotFound
		}
		return nil, err
	}
	return &entities.Wallet{
		ID:          m.ID,
		UserID:      m.UserID,
		BalanceKobo: m.BalanceKobo,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// ApplyDelta adjusts the cached balance with a single atomic UPDATE so
// concurrent ledger appends for the same user serialize in the store.
func (r *WalletRepository) ApplyDelta(ctx context.Context, userID uuid.UUID, deltaKobo int64) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance_kobo": gorm.Expr("balance_kobo + ?", deltaKobo),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWalletNotFound
	}
	return nil
}

// TransactionRepository implements append-only ledger operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Append inserts a ledger entry. The unique index on reference turns a
// duplicate submission into ErrAlreadyExists.
func (r *TransactionRepository) Append(ctx context.Context, tx *entities.Transaction) error {
	m := transactionToModel(tx)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByReference gets a ledger entry by its idempotency reference
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("reference = ?", reference).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return transactionToEntity(&m), nil
}

// ListByUser lists a user's ledger entries, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txModels []models.Transaction
	query := db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&txModels).Error; err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(txModels))
	for i := range txModels {
		txs = append(txs, transactionToEntity(&txModels[i]))
	}
	return txs, total, nil
}

// SignedSum returns the signed sum of a user's ledger entries. Debit
// types count negative; the result must always equal the cached wallet
// balance.
func (r *TransactionRepository) SignedSum(ctx context.Context, userID uuid.UUID) (int64, error) {
	var sum *int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Select("SUM(CASE WHEN type IN ('redeem','penalty') THEN -amount_kobo ELSE amount_kobo END)").
		Where("user_id = ?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

// TotalByType sums amounts platform-wide for one entry type
func (r *TransactionRepository) TotalByType(ctx context.Context, txType entities.TransactionType) (int64, error) {
	var sum *int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Select("SUM(amount_kobo)").
		Where("type = ?", string(txType)).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func transactionToModel(t *entities.Transaction) *models.Transaction {
	return &models.Transaction{
		ID:            t.ID,
		WalletID:      t.WalletID,
		UserID:        t.UserID,
		Type:          string(t.Type),
		AmountKobo:    t.AmountKobo,
		Reference:     t.Reference,
		Description:   t.Description,
		TaskID:        t.TaskID,
		TrashRecordID: t.TrashRecordID,
		CreatedAt:     t.CreatedAt,
	}
}

func transactionToEntity(m *models.Transaction) *entities.Transaction {
	return &entities.Transaction{
		ID:            m.ID,
		WalletID:      m.WalletID,
		UserID:        m.UserID,
		Type:          entities.TransactionType(m.Type),
		AmountKobo:    m.AmountKobo,
		Reference:     m.Reference,
		Description:   m.Description,
		TaskID:        m.TaskID,
		TrashRecordID: m.TrashRecordID,
		CreatedAt:     m.CreatedAt,
	}
}
