package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Limits on user supplied entry fields.
const (
	TitleMaxLen   = 100
	ContentMaxLen = 5000
)

// DiaryEntry represents a single private diary entry. OwnerID is set at
// creation and never reassigned.
type DiaryEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	Content   string    `json:"content" gorm:"size:5000;not null"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Owner User `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (e *DiaryEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
