package repositories

import (
	"context"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations. The balance is only
// mutated through ApplyDelta, a single atomic statement, so concurrent
// ledger appends never read-modify-write in application code.
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Wallet, error)
	// ApplyDelta runs `balance = balance + delta` for the user's wallet.
	ApplyDelta(ctx context.Context, userID uuid.UUID, deltaKobo int64) error
}

// TransactionRepository defines append-only ledger operations.
type TransactionRepository interface {
	Append(ctx context.Context, tx *entities.Transaction) error
	GetByReference(ctx context.Context, reference string) (*entities.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error)
	// SignedSum returns the signed sum of the user's ledger entries.
	SignedSum(ctx context.Context, userID uuid.UUID) (int64, error)
	// TotalByType sums amounts platform-wide for one entry type.
	TotalByType(ctx context.Context, txType entities.TransactionType) (int64, error)
}
