package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FactoryID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	CollectorID          *uuid.UUID `gorm:"type:uuid;index"`
	TrashType            string     `gorm:"type:varchar(20);not null;index"`
	EstimatedWeightGrams int64      `gorm:"not null"`
	RewardKobo           int64      `gorm:"not null"`
	Location             string     `gorm:"type:varchar(255);not null"`
	Description          string     `gorm:"type:varchar(1000)"`
	Status               string     `gorm:"type:varchar(20);not null;index"`
	AcceptedAt           *time.Time
	CompletedAt          *time.Time
	VerifiedAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}
