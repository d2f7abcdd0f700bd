package models

import (
	"gorm.io/gorm"
)

// Notification is a one-way message queued to a single recipient. Rows are
// created as side effects of task assignment, status changes, comments,
// attendance marking and meeting scheduling; the only state transition is
// unread to read, performed by the recipient.
type Notification struct {
	gorm.Model

	RecipientID uint   `gorm:"not null;index" json:"recipient_id"`
	Message     string `gorm:"type:text;not null" json:"message"`
	IsRead      bool   `gorm:"default:false" json:"is_read"`

	// Relations
	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
