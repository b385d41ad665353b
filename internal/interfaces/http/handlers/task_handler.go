package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"kudichain.backend/internal/domain/entities"
	domainerrors "kudichain.backend/internal/domain/errors"
	"kudichain.backend/internal/interfaces/http/response"
)

type TaskService interface {
	Create(ctx context.Context, actorID uuid.UUID, input *entities.CreateTaskInput) (*entities.Task, error)
	Accept(ctx context.Context, collectorID uuid.UUID, taskID uuid.UUID) (*entities.Task, error)
	Start(ctx context.Context, collectorID uuid.UUID, taskID uuid.UUID) (*entities.Task, error)
	Complete(ctx context.Context, collectorID uuid.UUID, taskID uuid.UUID) (*entities.Task, error)
	Verify(ctx context.Context, actorID uuid.UUID, taskID uuid.UUID) (*entities.Task, error)
	Cancel(ctx context.Context, actorID uuid.UUID, role entities.UserRole, taskID uuid.UUID) (*entities.Task, error)
	ListAvailable(ctx context.Context, trashType entities.TrashType) ([]*entities.Task, error)
	ListForActor(ctx context.Context, actorID uuid.UUID, role entities.UserRole) ([]*entities.Task, error)
}

// TaskHandler handles collection task endpoints
type TaskHandler struct {
	taskUsecase TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskUsecase TaskService) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase}
}

// Create posts a new task
// POST /api/v1/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	actorID, _, ok := actor(c)
	if !ok {
		return
	}

	var input entities.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	task, err := h.taskUsecase.Create(c.Request.Context(), actorID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"task": task})
}

// Accept claims an available task
// POST /api/v1/tasks/:id/accept
func (h *TaskHandler) Accept(c *gin.Context) {
	h.transition(c, func(ctx context.Context, actorID, taskID uuid.UUID) (*entities.Task, error) {
		return h.taskUsecase.Accept(ctx, actorID, taskID)
	})
}

// Start moves an accepted task to in_progress
// POST /api/v1/tasks/:id/start
func (h *TaskHandler) Start(c *gin.Context) {
	h.transition(c, h.taskUsecase.Start)
}

// Complete marks the collector's work done
// POST /api/v1/tasks/:id/complete
func (h *TaskHandler) Complete(c *gin.Context) {
	h.transition(c, h.taskUsecase.Complete)
}

// Verify signs off a completed task and credits the reward
// POST /api/v1/tasks/:id/verify
func (h *TaskHandler) Verify(c *gin.Context) {
	h.transition(c, h.taskUsecase.Verify)
}

// Cancel voids a task
// POST /api/v1/tasks/:id/cancel
func (h *TaskHandler) Cancel(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid task ID"))
		return
	}

	task, err := h.taskUsecase.Cancel(c.Request.Context(), actorID, role, taskID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}

// ListAvailable returns open tasks
// GET /api/v1/tasks/available
func (h *TaskHandler) ListAvailable(c *gin.Context) {
	trashType := entities.TrashType(c.Query("trashType"))
	tasks, err := h.taskUsecase.ListAvailable(c.Request.Context(), trashType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

// List returns the caller's tasks
// GET /api/v1/tasks
func (h *TaskHandler) List(c *gin.Context) {
	actorID, role, ok := actor(c)
	if !ok {
		return
	}

	tasks, err := h.taskUsecase.ListForActor(c.Request.Context(), actorID, role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *TaskHandler) transition(c *gin.Context, op func(context.Context, uuid.UUID, uuid.UUID) (*entities.Task, error)) {
	actorID, _, ok := actor(c)
	if !ok {
		return
	}
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid task ID"))
		return
	}

	task, err := op(c.Request.Context(), actorID, taskID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"task": task})
}
