package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName  string    `gorm:"type:varchar(150);not null"`
	BankName      string    `gorm:"type:varchar(100)"`
	AccountNumber string    `gorm:"type:varchar(20)"`
	AccountName   string    `gorm:"type:varchar(150)"`
	State         string    `gorm:"type:varchar(60);not null;index"`
	LGA           string    `gorm:"type:varchar(60);not null"`
	Ward          string    `gorm:"type:varchar(60)"`
	Verified      bool      `gorm:"default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

type Factory struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerUserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name               string    `gorm:"type:varchar(150);not null"`
	AcceptedTrashTypes string    `gorm:"type:varchar(255);not null"`
	Latitude           float64
	Longitude          float64
	Address            string `gorm:"type:varchar(255)"`
	State              string `gorm:"type:varchar(60);index"`
	Verified           bool   `gorm:"default:false;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
