package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UserID        uuid.UUID  `gorm:"type:uuid;index" json:"user_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid" json:"appointment_id"`

	Title   string `gorm:"size:150" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	Type    string `gorm:"size:30" json:"type"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
