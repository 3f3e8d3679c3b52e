package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string
	Bio          string
	Company      string
	Title        string
	Location     string
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time
}

type ProjectModel struct {
	ID           string `gorm:"primaryKey"`
	OwnerID      string `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Topic        string `gorm:"not null"`
	Description  string
	DocumentType string    `gorm:"not null"`
	Status       string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

type ContentItemModel struct {
	ID          string         `gorm:"primaryKey"`
	ProjectID   string         `gorm:"not null;index"`
	OrderIndex  int            `gorm:"not null"`
	Title       string         `gorm:"not null"`
	Text        string         `gorm:"type:text"`
	Bullets     datatypes.JSON `gorm:"type:jsonb"`
	GeneratedAt *time.Time
}

type PendingRefinementModel struct {
	ItemID      string `gorm:"primaryKey"`
	ProjectID   string `gorm:"not null;index"`
	Instruction string `gorm:"type:text;not null"`
	Text        string `gorm:"type:text"`
	Bullets     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time `gorm:"not null"`
}

type FeedbackModel struct {
	ID        string `gorm:"primaryKey"`
	ProjectID string `gorm:"not null;index"`
	ItemID    string `gorm:"not null;index"`
	Liked     *bool
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index"`
}
