package repositories

import (
	"context"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// GetByBarcode resolves a scanned collector barcode to the user.
	GetByBarcode(ctx context.Context, barcodeID string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateKYC(ctx context.Context, user *entities.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, role entities.UserRole, search string) ([]*entities.User, error)
	CountByRole(ctx context.Context) (map[entities.UserRole]int64, error)
}
