package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TaskStatus represents the lifecycle of a factory-posted job.
type TaskStatus string

const (
	TaskStatusAvailable  TaskStatus = "available"
	TaskStatusAccepted   TaskStatus = "accepted"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusVerified   TaskStatus = "verified"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

var taskTransitions = map[TaskStatus]TaskStatus{
	TaskStatusAvailable:  TaskStatusAccepted,
	TaskStatusAccepted:   TaskStatusInProgress,
	TaskStatusInProgress: TaskStatusCompleted,
	TaskStatusCompleted:  TaskStatusVerified,
}

// CanTransition reports whether moving from s to next follows the task
// lifecycle. Cancellation is allowed from any non-terminal state.
func (s TaskStatus) CanTransition(next TaskStatus) bool {
	if next == TaskStatusCancelled {
		return s != TaskStatusVerified && s != TaskStatusCancelled
	}
	return taskTransitions[s] == next
}

// Task is a factory-posted collection job. At most one collector holds
// an accepted task; the claim is a conditional update on the available
// status.
type Task struct {
	ID                   uuid.UUID  `json:"id"`
	FactoryID            uuid.UUID  `json:"factoryId"`
	CollectorID          *uuid.UUID `json:"collectorId,omitempty"`
	TrashType            TrashType  `json:"trashType"`
	EstimatedWeightGrams int64      `json:"estimatedWeightGrams"`
	RewardKobo           int64      `json:"rewardKobo"`
	Location             string     `json:"location"`
	Description          string     `json:"description,omitempty"`
	Status               TaskStatus `json:"status"`
	AcceptedAt           null.Time  `json:"acceptedAt,omitempty"`
	CompletedAt          null.Time  `json:"completedAt,omitempty"`
	VerifiedAt           null.Time  `json:"verifiedAt,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`

	Factory *Factory `json:"factory,omitempty"`
}

// CreateTaskInput represents a factory posting a job.
type CreateTaskInput struct {
	TrashType         string  `json:"trashType" binding:"required"`
	EstimatedWeightKg float64 `json:"estimatedWeightKg" binding:"required,gt=0"`
	RewardNaira       float64 `json:"rewardNaira" binding:"required,gt=0"`
	Location          string  `json:"location" binding:"required"`
	Description       string  `json:"description"`
}
