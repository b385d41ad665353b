package entities

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records an admin-side mutation for traceability.
type AuditLog struct {
	ID         uuid.UUID `json:"id"`
	ActorID    uuid.UUID `json:"actorId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Detail     string    `json:"detail,omitempty"` // JSON blob
	CreatedAt  time.Time `json:"createdAt"`
}
