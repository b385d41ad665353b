package repositories

import (
	"context"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
)

// TrashRecordRepository defines trash drop data operations.
type TrashRecordRepository interface {
	Create(ctx context.Context, record *entities.TrashRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TrashRecord, error)
	// Transition persists a status change conditionally on the record's
	// current version; a stale version yields ErrConflict and no write.
	Transition(ctx context.Context, record *entities.TrashRecord, expectedVersion int64) error
	ListByCollector(ctx context.Context, collectorID uuid.UUID, limit, offset int) ([]*entities.TrashRecord, int64, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, status entities.DropStatus, limit, offset int) ([]*entities.TrashRecord, int64, error)
	ListByFactory(ctx context.Context, factoryID uuid.UUID, status entities.DropStatus, limit, offset int) ([]*entities.TrashRecord, int64, error)
	CountByStatus(ctx context.Context) (map[entities.DropStatus]int64, error)
	// TotalWeightByType sums received weight per trash type for stats.
	TotalWeightByType(ctx context.Context) (map[entities.TrashType]int64, error)
}
