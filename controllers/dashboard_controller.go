package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamtrack/models"
	"teamtrack/policy"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type teamCount struct {
	Team  string `json:"team"`
	Count int64  `json:"count"`
}

// GetDashboardStats returns role-shaped summary statistics: org-wide
// numbers for project managers, personal numbers for members.
func (dc *DashboardController) GetDashboardStats(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if policy.IsProjectManager(user) {
		return dc.managerStats(c, user)
	}
	return dc.memberStats(c, user)
}

func (dc *DashboardController) managerStats(c *fiber.Ctx, user *models.User) error {
	var byStatus []statusCount
	if err := dc.DB.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		dc.Logger.Printf("Failed to aggregate task statuses: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}

	var byTeam []teamCount
	if err := dc.DB.Model(&models.Task{}).
		Select("team, COUNT(*) as count").
		Group("team").
		Scan(&byTeam).Error; err != nil {
		dc.Logger.Printf("Failed to aggregate task teams: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}

	today := time.Now().Format("2006-01-02")
	var presentToday int64
	dc.DB.Model(&models.AttendanceRecord{}).
		Where("date = ? AND status = ?", today, models.AttendancePresent).
		Count(&presentToday)

	var totalMembers int64
	dc.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&totalMembers)

	var upcomingMeetings int64
	dc.DB.Model(&models.Meeting{}).
		Where("scheduled_at > ?", time.Now()).
		Count(&upcomingMeetings)

	return c.JSON(fiber.Map{
		"role":              "manager",
		"tasks_by_status":   byStatus,
		"tasks_by_team":     byTeam,
		"present_today":     presentToday,
		"total_members":     totalMembers,
		"upcoming_meetings": upcomingMeetings,
	})
}

func (dc *DashboardController) memberStats(c *fiber.Ctx, user *models.User) error {
	var byStatus []statusCount
	if err := dc.DB.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Where("assigned_to_id = ?", user.ID).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		dc.Logger.Printf("Failed to aggregate tasks for user %d: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch dashboard stats",
		})
	}

	var unread int64
	dc.DB.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", user.ID, false).
		Count(&unread)

	return c.JSON(fiber.Map{
		"role":                 "member",
		"tasks_by_status":      byStatus,
		"unread_notifications": unread,
	})
}
