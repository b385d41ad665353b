package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name             string    `gorm:"type:varchar(150);not null"`
	Phone            string    `gorm:"type:varchar(30)"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	Role             string    `gorm:"type:varchar(20);not null;index"`
	BarcodeID        string    `gorm:"type:varchar(40);index"`
	KYCStatus        string    `gorm:"type:varchar(20);not null;default:'pending'"`
	IDType           string    `gorm:"type:varchar(40)"`
	IDNumber         string    `gorm:"type:varchar(80)"`
	IDVerified       bool      `gorm:"default:false"`
	VerifiedFullName string    `gorm:"type:varchar(150)"`
	KYCReviewedAt    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
