package repositories

import (
	"context"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
)

// PaymentRateRepository defines payment rate data operations.
type PaymentRateRepository interface {
	Create(ctx context.Context, rate *entities.PaymentRate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentRate, error)
	// GetActiveByType returns the single active rate for a trash type,
	// or ErrNotFound when none is configured.
	GetActiveByType(ctx context.Context, trashType entities.TrashType) (*entities.PaymentRate, error)
	Update(ctx context.Context, rate *entities.PaymentRate) error
	// DeactivateByType clears the active flag on all rates for a type.
	DeactivateByType(ctx context.Context, trashType entities.TrashType) error
	List(ctx context.Context, activeOnly bool) ([]*entities.PaymentRate, error)
}
