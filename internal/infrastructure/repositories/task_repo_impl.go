package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/infrastructure/models"
)

// TaskRepository implements task data operations
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	m := taskToModel(task)
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var m models.Task
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return taskToEntity(&m), nil
}

// Claim binds a collector to a task with a conditional update so only
// one collector can ever hold it. A lost race leaves the row untouched.
func (r *TaskRepository) Claim(ctx context.Context, taskID, collectorID uuid.UUID) error {
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Task{}).
		Where("id = ? AND status = ? AND collector_id IS NULL", taskID, string(entities.TaskStatusAvailable)).
		Updates(map[string]interface{}{
			"collector_id": collectorID,
			"status":       string(entities.TaskStatusAccepted),
			"accepted_at":  now,
			"updated_at":   now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Task{}).
			Where("id = ?", taskID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrConflict
	}
	return nil
}

// UpdateStatus persists a task status change
func (r *TaskRepository) UpdateStatus(ctx context.Context, task *entities.Task) error {
	updates := map[string]interface{}{
		"status":     string(task.Status),
		"updated_at": time.Now(),
	}
	if task.CompletedAt.Valid {
		updates["completed_at"] = task.CompletedAt.Time
	}
	if task.VerifiedAt.Valid {
		updates["verified_at"] = task.VerifiedAt.Time
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Task{}).
		Where("id = ?", task.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListAvailable lists unclaimed tasks, optionally by trash type
func (r *TaskRepository) ListAvailable(ctx context.Context, trashType entities.TrashType) ([]*entities.Task, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("status = ?", string(entities.TaskStatusAvailable)).
		Order("created_at DESC")
	if trashType != "" {
		query = query.Where("trash_type = ?", string(trashType))
	}
	return r.findAll(query)
}

// ListByFactory lists tasks posted by a factory
func (r *TaskRepository) ListByFactory(ctx context.Context, factoryID uuid.UUID) ([]*entities.Task, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("factory_id = ?", factoryID).
		Order("created_at DESC")
	return r.findAll(query)
}

// ListByCollector lists tasks held by a collector
func (r *TaskRepository) ListByCollector(ctx context.Context, collectorID uuid.UUID) ([]*entities.Task, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).
		Where("collector_id = ?", collectorID).
		Order("created_at DESC")
	return r.findAll(query)
}

func (r *TaskRepository) findAll(query *gorm.DB) ([]*entities.Task, error) {
	var taskModels []models.Task
	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}
	tasks := make([]*entities.Task, 0, len(taskModels))
	for i := range taskModels {
		tasks = append(tasks, taskToEntity(&taskModels[i]))
	}
	return tasks, nil
}

func taskToModel(t *entities.Task) *models.Task {
	m := &models.Task{
		ID:                   t.ID,
		FactoryID:            t.FactoryID,
		CollectorID:          t.CollectorID,
		TrashType:            string(t.TrashType),
		EstimatedWeightGrams: t.EstimatedWeightGrams,
		RewardKobo:           t.RewardKobo,
		Location:             t.Location,
		Description:          t.Description,
		Status:               string(t.Status),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
	m.AcceptedAt = t.AcceptedAt.Ptr()
	m.CompletedAt = t.CompletedAt.Ptr()
	m.VerifiedAt = t.VerifiedAt.Ptr()
	return m
}

func taskToEntity(m *models.Task) *entities.Task {
	return &entities.Task{
		ID:                   m.ID,
		FactoryID:            m.FactoryID,
		CollectorID:          m.CollectorID,
		TrashType:            entities.TrashType(m.TrashType),
		EstimatedWeightGrams: m.EstimatedWeightGrams,
		RewardKobo:           m.RewardKobo,
		Location:             m.Location,
		Description:          m.Description,
		Status:               entities.TaskStatus(m.Status),
		AcceptedAt:           null.TimeFromPtr(m.AcceptedAt),
		CompletedAt:          null.TimeFromPtr(m.CompletedAt),
		VerifiedAt:           null.TimeFromPtr(m.VerifiedAt),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}
