package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRate struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrashType      string     `gorm:"type:varchar(20);not null;index"`
	RatePerKgKobo  int64      `gorm:"not null"`
	RatePerTonKobo int64      `gorm:"not null"`
	IsActive       bool       `gorm:"not null;default:false;index"`
	UpdatedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
