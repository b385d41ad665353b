package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet holds a user's KOBO token balance. The balance is a cached
// value derived from the transaction ledger: it is only ever mutated as
// a side effect of appending a Transaction.
type Wallet struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	BalanceKobo int64     `json:"balanceKobo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TransactionType represents ledger entry types
type TransactionType string

const (
	TransactionTypeEarn    TransactionType = "earn"
	TransactionTypeRedeem  TransactionType = "redeem"
	TransactionTypeBonus   TransactionType = "bonus"
	TransactionTypePenalty TransactionType = "penalty"
	TransactionTypeRefund  TransactionType = "refund"
)

// Valid reports whether the type is a known ledger entry type.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionTypeEarn, TransactionTypeRedeem, TransactionTypeBonus,
		TransactionTypePenalty, TransactionTypeRefund:
		return true
	}
	return false
}

// SignedAmount returns the balance effect of an entry of this type:
// positive for credits (earn, bonus, refund), negative for debits
// (redeem, penalty).
func (t TransactionType) SignedAmount(amountKobo int64) int64 {
	switch t {
	case TransactionTypeRedeem, TransactionTypePenalty:
		return -amountKobo
	default:
		return amountKobo
	}
}

// Transaction is an immutable, append-only ledger entry. AmountKobo is
// always positive; the sign of the balance effect comes from Type.
// Reference is unique across the ledger and makes RecordTransaction
// idempotent.
type Transaction struct {
	ID            uuid.UUID       `json:"id"`
	WalletID      uuid.UUID       `json:"walletId"`
	UserID        uuid.UUID       `json:"userId"`
	Type          TransactionType `json:"type"`
	AmountKobo    int64           `json:"amountKobo"`
	Reference     string          `json:"reference"`
	Description   string          `json:"description,omitempty"`
	TaskID        *uuid.UUID      `json:"taskId,omitempty"`
	TrashRecordID *uuid.UUID      `json:"trashRecordId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// RecordTransactionInput represents input for appending a ledger entry.
type RecordTransactionInput struct {
	Type          TransactionType
	AmountKobo    int64
	Reference     string
	Description   string
	TaskID        *uuid.UUID
	TrashRecordID *uuid.UUID
}

// RedeemInput represents a user cashing out wallet balance.
type RedeemInput struct {
	AmountNaira float64 `json:"amountNaira" binding:"required,gt=0"`
	Reference   string  `json:"reference" binding:"required"`
}

// AdjustWalletInput represents an admin bonus or penalty.
type AdjustWalletInput struct {
	UserID      string  `json:"userId" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	AmountNaira float64 `json:"amountNaira" binding:"required,gt=0"`
	Reference   string  `json:"reference" binding:"required"`
	Description string  `json:"description"`
}
