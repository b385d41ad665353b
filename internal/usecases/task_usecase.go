package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/domain/repositories"
	"kudichain.backend/pkg/utils"
)

// TaskUsecase manages factory-posted collection jobs. Claiming a task
// is a conditional update, so only one of several racing collectors
// gets it. The reward is credited on verification through the same
// idempotent ledger path as drop payouts.
type TaskUsecase struct {
	taskRepo    repositories.TaskRepository
	factoryRepo repositories.FactoryRepository
	wallets     *WalletUsecase
	uow         repositories.UnitOfWork
}

// NewTaskUsecase creates a new task usecase
func NewTaskUsecase(
	taskRepo repositories.TaskRepository,
	factoryRepo repositories.FactoryRepository,
	wallets *WalletUsecase,
	uow repositories.UnitOfWork,
) *TaskUsecase {
	return &TaskUsecase{
		taskRepo:    taskRepo,
		factoryRepo: factoryRepo,
		wallets:     wallets,
		uow:         uow,
	}
}

// Create posts a new task from the actor's factory.
func (u *TaskUsecase) Create(ctx context.Context, actorID uuid.UUID, input *entities.CreateTaskInput) (*entities.Task, error) {
	factory, err := u.requireFactory(ctx, actorID)
	if err != nil {
		return nil, err
	}
	trashType := entities.TrashType(input.TrashType)
	if !trashType.Valid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown trash type %q", input.TrashType))
	}

	task := &entities.Task{
		ID:                   utils.GenerateUUIDv7(),
		FactoryID:            factory.ID,
		TrashType:            trashType,
		EstimatedWeightGrams: utils.KgToGrams(input.EstimatedWeightKg),
		RewardKobo:           utils.NairaToKobo(input.RewardNaira),
		Location:             input.Location,
		Description:          input.Description,
		Status:               entities.TaskStatusAvailable,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
	if task.RewardKobo <= 0 {
		return nil, domainerrors.BadRequest("reward must be positive")
	}
	if err := u.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Accept claims an available task for a collector. Losing the claim
// race yields a conflict, never a double assignment.
func (u *TaskUsecase) Accept(ctx context.Context, collectorID uuid.UUID, taskID uuid.UUID) (*entities.Task, error) {
	if err := u.taskRepo.Claim(ctx, taskID, collectorID); err != nil {
		return nil, err
	}
	return u.taskRepo.GetByID(ctx, taskID)
}

// Start moves an accepted task to in_progress.
func (u *TaskUsecase) Start(ctx context.Context, collectorID uuid.UUID, taskID uuid.UUID) (*entities.Task, error) {
	return u.collectorTransition(ctx, collectorID, taskID, entities.TaskStatusInProgress, func(task *entities.Task) {})
}

// Complete marks the collector's work done, awaiting factory
// verification.
func (u *TaskUsecase) Complete(ctx context.Context, collectorID uuid.UUID, taskID uuid.UUID) (*entities.Task, error) {
	return u.collectorTransition(ctx, collectorID, taskID, entities.TaskStatusCompleted, func(task *entities.Task) {
		task.CompletedAt = null.TimeFrom(time.Now())
	})
}

// Verify is the factory's sign-off: the status change and the reward
// credit commit together. The ledger reference is derived from the
// task ID, so a retried verify cannot pay twice.
func (u *TaskUsecase) Verify(ctx context.Context, actorID uuid.UUID, taskID uuid.UUID) (*entities.Task, error) {
	factory, err := u.requireFactory(ctx, actorID)
	if err != nil {
		return nil, err
	}
	task, err := u.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.FactoryID != factory.ID {
		return nil, domainerrors.Forbidden("task belongs to a different factory")
	}
	if !task.Status.CanTransition(entities.TaskStatusVerified) {
		return nil, domainerrors.Conflict(fmt.Sprintf("cannot verify task in %s", task.Status))
	}
	if task.CollectorID == nil {
		return nil, domainerrors.Conflict("task has no collector")
	}

	task.Status = entities.TaskStatusVerified
	task.VerifiedAt = null.TimeFrom(time.Now())

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.taskRepo.UpdateStatus(txCtx, task); err != nil {
			return err
		}
		wallet, err := u.wallets.walletRepo.GetByUserID(txCtx, *task.CollectorID)
		if err != nil {
			return err
		}
		_, err = u.wallets.recordInTx(txCtx, *task.CollectorID, wallet.ID, &entities.RecordTransactionInput{
			Type:        entities.TransactionTypeEarn,
			AmountKobo:  task.RewardKobo,
			Reference:   fmt.Sprintf("task:%s:reward", task.ID),
			Description: fmt.Sprintf("reward for %s collection task", task.TrashType),
			TaskID:      &task.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Cancel voids a task. The posting factory may cancel any non-terminal
// task; the holding collector may cancel one they claimed.
func (u *TaskUsecase) Cancel(ctx context.Context, actorID uuid.UUID, role entities.UserRole, taskID uuid.UUID) (*entities.Task, error) {
	task, err := u.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	switch role {
	case entities.UserRoleFactory:
		factory, err := u.requireFactory(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if task.FactoryID != factory.ID {
			return nil, domainerrors.Forbidden("task belongs to a different factory")
		}
	case entities.UserRoleCollector:
		if task.CollectorID == nil || *task.CollectorID != actorID {
			return nil, domainerrors.Forbidden("task is not held by you")
		}
	case entities.UserRoleAdmin:
	default:
		return nil, domainerrors.Forbidden("role cannot cancel tasks")
	}
	if !task.Status.CanTransition(entities.TaskStatusCancelled) {
		return nil, domainerrors.Conflict(fmt.Sprintf("cannot cancel task in %s", task.Status))
	}

	task.Status = entities.TaskStatusCancelled
	if err := u.taskRepo.UpdateStatus(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// ListAvailable returns open tasks, optionally filtered by trash type.
func (u *TaskUsecase) ListAvailable(ctx context.Context, trashType entities.TrashType) ([]*entities.Task, error) {
	if trashType != "" && !trashType.Valid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("unknown trash type %q", trashType))
	}
	return u.taskRepo.ListAvailable(ctx, trashType)
}

// ListForActor lists tasks from the actor's side.
func (u *TaskUsecase) ListForActor(ctx context.Context, actorID uuid.UUID, role entities.UserRole) ([]*entities.Task, error) {
	switch role {
	case entities.UserRoleCollector:
		return u.taskRepo.ListByCollector(ctx, actorID)
	case entities.UserRoleFactory:
		factory, err := u.requireFactory(ctx, actorID)
		if err != nil {
			return nil, err
		}
		return u.taskRepo.ListByFactory(ctx, factory.ID)
	default:
		return nil, domainerrors.Forbidden("role has no task listing")
	}
}

func (u *TaskUsecase) collectorTransition(ctx context.Context, collectorID uuid.UUID, taskID uuid.UUID, next entities.TaskStatus, apply func(*entities.Task)) (*entities.Task, error) {
	task, err := u.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CollectorID == nil || *task.CollectorID != collectorID {
		return nil, domainerrors.Forbidden("task is not held by you")
	}
	if !task.Status.CanTransition(next) {
		return nil, domainerrors.Conflict(fmt.Sprintf("cannot move task from %s to %s", task.Status, next))
	}
	task.Status = next
	apply(task)
	if err := u.taskRepo.UpdateStatus(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *TaskUsecase) requireFactory(ctx context.Context, actorID uuid.UUID) (*entities.Factory, error) {
	factory, err := u.factoryRepo.GetByOwner(ctx, actorID)
	if err != nil {
		return nil, domainerrors.Forbidden("actor has no registered factory")
	}
	if !factory.Verified {
		return nil, domainerrors.Forbidden("factory is not verified")
	}
	return factory, nil
}
