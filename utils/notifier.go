package utils

import (
	"gorm.io/gorm"

	"teamtrack/models"
)

// Notify inserts a notification row using the given handle, which may be a
// transaction so the insert commits or rolls back with the caller's write.
func Notify(tx *gorm.DB, recipientID uint, message string) error {
	notification := models.Notification{
		RecipientID: recipientID,
		Message:     message,
	}
	return tx.Create(&notification).Error
}

// EmailCopy sends a best-effort email copy of a notification after the
// owning transaction has committed. Failures are logged, never returned.
func EmailCopy(recipient *models.User, subject, message string) {
	go func(email string) {
		if err := SendNotificationEmail(email, subject, message); err != nil {
			LogError("notification_email_failed", err, map[string]interface{}{
				"recipient": email,
			})
		}
	}(recipient.Email)
}
