package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage stores a sanitized contact-form submission alongside the
// email dispatch, so staff can review intake even if SMTP is down.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;not null"`
	Phone     string    `gorm:"column:phone"`
	Message   string    `gorm:"column:message;not null"`
	ClientIP  string    `gorm:"column:client_ip"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (m *ContactMessage) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
