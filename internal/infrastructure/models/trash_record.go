package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrashRecord struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CollectorID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	VendorID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	FactoryID           *uuid.UUID `gorm:"type:uuid;index"`
	TrashType           string     `gorm:"type:varchar(20);not null;index"`
	WeightGrams         int64      `gorm:"not null"`
	Status              string     `gorm:"type:varchar(40);not null;index"`
	RatePerKgKobo       int64      `gorm:"not null;default:0"`
	CommittedPayoutKobo int64      `gorm:"not null;default:0"`
	VendorPayoutKobo    int64      `gorm:"not null;default:0"`
	KYCWarning          bool       `gorm:"default:false"`
	CancelReason        string     `gorm:"type:varchar(255)"`
	Version             int64      `gorm:"not null;default:1"`
	ConfirmedAt         *time.Time
	ShippedAt           *time.Time
	ReceivedAt          *time.Time
	PaidAt              *time.Time
	CancelledAt         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}
