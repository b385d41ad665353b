package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Factory is a processing site owned by a factory-role user. It only
// receives drops of trash types it accepts, and only once verified by
// an admin.
type Factory struct {
	ID                 uuid.UUID `json:"id"`
	OwnerUserID        uuid.UUID `json:"ownerUserId"`
	Name               string    `json:"name"`
	AcceptedTrashTypes string    `json:"acceptedTrashTypes"` // comma separated
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Address            string    `json:"address,omitempty"`
	State              string    `json:"state"`
	Verified           bool      `json:"verified"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Accepts reports whether the factory takes the given trash type.
func (f *Factory) Accepts(t TrashType) bool {
	for _, part := range strings.Split(f.AcceptedTrashTypes, ",") {
		if TrashType(strings.TrimSpace(part)) == t {
			return true
		}
	}
	return false
}

// RegisterFactoryInput represents creating a factory.
type RegisterFactoryInput struct {
	Name               string   `json:"name" binding:"required,min=2,max=150"`
	AcceptedTrashTypes []string `json:"acceptedTrashTypes" binding:"required,min=1"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	Address            string   `json:"address"`
	State              string   `json:"state" binding:"required"`
}
