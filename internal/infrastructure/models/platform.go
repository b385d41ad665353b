package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupportTicket struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Subject    string     `gorm:"type:varchar(200);not null"`
	Message    string     `gorm:"type:varchar(4000);not null"`
	Status     string     `gorm:"type:varchar(20);not null;index"`
	AdminReply string     `gorm:"type:varchar(4000)"`
	RepliedBy  *uuid.UUID `gorm:"type:uuid"`
	RepliedAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"type:varchar(80);not null;index"`
	EntityType string    `gorm:"type:varchar(60);not null;index"`
	EntityID   string    `gorm:"type:varchar(60)"`
	Detail     string    `gorm:"type:varchar(4000)"`
	CreatedAt  time.Time
}

type BlogPost struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Slug        string    `gorm:"type:varchar(150);not null;uniqueIndex"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Body        string    `gorm:"type:text;not null"`
	Published   bool      `gorm:"default:false;index"`
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
