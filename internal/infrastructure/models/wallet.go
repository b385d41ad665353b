package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Wallet struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BalanceKobo int64     `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

type Transaction struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	WalletID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type          string     `gorm:"type:varchar(20);not null;index"`
	AmountKobo    int64      `gorm:"not null"`
	Reference     string     `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description   string     `gorm:"type:varchar(255)"`
	TaskID        *uuid.UUID `gorm:"type:uuid;index"`
	TrashRecordID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
}
