package repositories

import (
	"context"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
)

// VendorProfileRepository defines vendor profile data operations
type VendorProfileRepository interface {
	Upsert(ctx context.Context, profile *entities.VendorProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.VendorProfile, error)
	List(ctx context.Context, state string) ([]*entities.VendorProfile, error)
	SetVerified(ctx context.Context, userID uuid.UUID, verified bool) error
}

// FactoryRepository defines factory data operations
type FactoryRepository interface {
	Create(ctx context.Context, factory *entities.Factory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Factory, error)
	GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*entities.Factory, error)
	Update(ctx context.Context, factory *entities.Factory) error
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	List(ctx context.Context, verifiedOnly bool) ([]*entities.Factory, error)
}
