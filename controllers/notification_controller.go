package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamtrack/models"
)

type NotificationController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewNotificationController(db *gorm.DB, logger *log.Logger) *NotificationController {
	return &NotificationController{DB: db, Logger: logger}
}

// GetNotifications lists the caller's notifications newest-first.
func (nc *NotificationController) GetNotifications(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var notifications []models.Notification
	if err := nc.DB.Where("recipient_id = ?", user.ID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		nc.Logger.Printf("Failed to fetch notifications for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch notifications",
		})
	}

	var unread int64
	if err := nc.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", user.ID, false).
		Count(&unread).Error; err != nil {
		nc.Logger.Printf("Failed to count unread notifications for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch notifications",
		})
	}

	return c.JSON(fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkRead marks one notification read. The lookup is scoped to the
// caller, so another user's notification is simply not found.
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var notification models.Notification
	if err := nc.DB.Where("recipient_id = ?", user.ID).
		First(&notification, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Notification not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch notification",
		})
	}

	if !notification.IsRead {
		if err := nc.DB.Model(&notification).Update("is_read", true).Error; err != nil {
			nc.Logger.Printf("Failed to mark notification %d read: %v", notification.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update notification",
			})
		}
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

// MarkAllRead marks every unread notification owned by the caller.
func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	result := nc.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", user.ID, false).
		Update("is_read", true)
	if result.Error != nil {
		nc.Logger.Printf("Failed to mark notifications read for user %d: %v", user.ID, result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update notifications",
		})
	}

	return c.JSON(fiber.Map{
		"message":      "All notifications marked as read",
		"updated_rows": result.RowsAffected,
	})
}
