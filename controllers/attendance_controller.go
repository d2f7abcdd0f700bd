package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"teamtrack/models"
	"teamtrack/policy"
	"teamtrack/utils"
)

type AttendanceController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewAttendanceController(db *gorm.DB, logger *log.Logger) *AttendanceController {
	return &AttendanceController{DB: db, Logger: logger}
}

type MarkAttendanceRequest struct {
	Date           string `json:"date" validate:"required"`
	PresentUserIDs []uint `json:"present_user_ids"`
}

// GetAttendance lists attendance records grouped by date, newest first.
func (ac *AttendanceController) GetAttendance(c *fiber.Ctx) error {
	var records []models.AttendanceRecord
	if err := ac.DB.Preload("Member").
		Order("date DESC").
		Find(&records).Error; err != nil {
		ac.Logger.Printf("Failed to fetch attendance records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch attendance records",
		})
	}

	byDate := make(map[string][]models.AttendanceRecord)
	for _, record := range records {
		key := record.Date.Format("2006-01-02")
		byDate[key] = append(byDate[key], record)
	}

	var totalMembers int64
	if err := ac.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&totalMembers).Error; err != nil {
		ac.Logger.Printf("Failed to count members: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch attendance records",
		})
	}

	return c.JSON(fiber.Map{
		"attendance_by_date": byDate,
		"total_members":      totalMembers,
		"total_records":      len(records),
	})
}

// MarkAttendance upserts one record per active user for the given date:
// Present when the user id appears in the request set, Absent otherwise.
// Re-marking a date replaces its statuses wholesale. Managers only.
func (ac *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if !policy.CanMarkAttendance(user) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only managers can mark attendance",
		})
	}

	var req MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
	}

	present := make(map[uint]bool, len(req.PresentUserIDs))
	for _, id := range req.PresentUserIDs {
		present[id] = true
	}

	var members []models.User
	if err := ac.DB.Where("is_active = ?", true).Find(&members).Error; err != nil {
		ac.Logger.Printf("Failed to fetch members: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch members",
		})
	}

	presentCount := 0
	for _, member := range members {
		if present[member.ID] {
			presentCount++
		}
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		for _, member := range members {
			status := models.AttendanceAbsent
			if present[member.ID] {
				status = models.AttendancePresent
			}

			record := models.AttendanceRecord{
				MemberID: member.ID,
				Date:     date,
				Status:   status,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "member_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
			}).Create(&record).Error; err != nil {
				return err
			}

			// Do not notify the marking manager about themselves
			if member.ID != user.ID {
				note := fmt.Sprintf("Your attendance for %s was marked %s by %s",
					req.Date, status, user.Name)
				if err := utils.Notify(tx, member.ID, note); err != nil {
					return err
				}
			}
		}

		summary := fmt.Sprintf("Attendance marked for %s: %d of %d members present",
			req.Date, presentCount, len(members))
		return utils.Notify(tx, user.ID, summary)
	})
	if err != nil {
		ac.Logger.Printf("Failed to mark attendance for %s: %v", req.Date, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark attendance",
		})
	}

	ac.Logger.Printf("Attendance marked for %s by user %d (%d present / %d total)",
		req.Date, user.ID, presentCount, len(members))

	return c.JSON(fiber.Map{
		"message":       fmt.Sprintf("Attendance marked for %s", req.Date),
		"present_count": presentCount,
		"total_count":   len(members),
	})
}
