package repositories

import (
	"context"

	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
)

// TaskRepository defines task data operations.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	// Claim binds a collector to a task only while it is still
	// available and unheld; a lost race yields ErrConflict.
	Claim(ctx context.Context, taskID, collectorID uuid.UUID) error
	UpdateStatus(ctx context.Context, task *entities.Task) error
	ListAvailable(ctx context.Context, trashType entities.TrashType) ([]*entities.Task, error)
	ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]*entities.Task, error)
	ListByCollector(ctx context.Context, collectorID uuid.UUID) ([]*entities.Task, error)
}
