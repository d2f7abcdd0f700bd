package controller

import (
	"errors"
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

type MeetingController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewMeetingController(db *gorm.DB, logger *log.Logger) *MeetingController {
	return &MeetingController{DB: db, Logger: logger}
}

type CreateMeetingRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description"`
	ScheduledAt     string `json:"scheduled_at" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=1"`
	Location        string `json:"location" validate:"omitempty,max=200"`
	MeetingURL      string `json:"meeting_url" validate:"omitempty,url"`
}

type MarkMeetingAttendanceRequest struct {
	UserID  uint `json:"user_id" validate:"required"`
	Present bool `json:"present"`
}

// GetMeetings lists meetings the caller organizes or attends, newest
// first. Project managers only.
func (mc *MeetingController) GetMeetings(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if !policy.CanManageMeetings(user) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only Project Managers can access meetings",
		})
	}

	var meetings []models.Meeting
	if err := mc.DB.Preload("Organizer").Preload("Attendance").Preload("Attendance.User").
		Where("organizer_id = ? OR id IN (?)", user.ID,
			mc.DB.Model(&models.MeetingAttendance{}).Select("meeting_id").Where("user_id = ?", user.ID)).
		Order("scheduled_at DESC").
		Find(&meetings).Error; err != nil {
		mc.Logger.Printf("Failed to fetch meetings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch meetings",
		})
	}

	return c.JSON(fiber.Map{"meetings": meetings})
}

// CreateMeeting schedules a meeting, adds the organizer as a present
// attendee, and notifies every other active user. Project managers only.
func (mc *MeetingController) CreateMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if !policy.CanManageMeetings(user) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only Project Managers can create meetings",
		})
	}

	var req CreateMeetingRequest
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

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid scheduled_at, expected RFC3339 timestamp",
		})
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 60
	}

	meeting := models.Meeting{
		Title:           req.Title,
		Description:     req.Description,
		OrganizerID:     user.ID,
		ScheduledAt:     scheduledAt,
		DurationMinutes: duration,
		Location:        req.Location,
		MeetingURL:      req.MeetingURL,
	}

	var others []models.User
	if err := mc.DB.Where("is_active = ? AND id <> ?", true, user.ID).Find(&others).Error; err != nil {
		mc.Logger.Printf("Failed to fetch members: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create meeting",
		})
	}

	note := ""
	err = mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&meeting).Error; err != nil {
			return err
		}

		// Organizer counts as a present attendee
		markedBy := user.ID
		attendance := models.MeetingAttendance{
			MeetingID:  meeting.ID,
			UserID:     user.ID,
			Present:    true,
			MarkedByID: &markedBy,
		}
		if err := tx.Create(&attendance).Error; err != nil {
			return err
		}

		note = fmt.Sprintf("New meeting scheduled: %q by %s on %s",
			meeting.Title, user.Name, meeting.ScheduledAt.Format("January 2, 2006 at 15:04"))
		for _, member := range others {
			if err := utils.Notify(tx, member.ID, note); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		mc.Logger.Printf("Failed to create meeting: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create meeting",
		})
	}

	for i := range others {
		utils.EmailCopy(&others[i], "New meeting scheduled", note)
	}
	mc.Logger.Printf("Meeting %d created by user %d, %d members notified",
		meeting.ID, user.ID, len(others))

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("Meeting created, notifications sent to %d team members", len(others)),
		"meeting": meeting,
	})
}

// GetMeeting returns one meeting with its attendance records. Project
// managers only.
func (mc *MeetingController) GetMeeting(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if !policy.CanManageMeetings(user) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only Project Managers can access meeting details",
		})
	}

	var meeting models.Meeting
	if err := mc.DB.Preload("Organizer").Preload("Attendance").Preload("Attendance.User").
		First(&meeting, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Meeting not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch meeting",
		})
	}

	return c.JSON(meeting)
}

// MarkMeetingAttendance upserts one attendance row per (meeting, user),
// recording who marked it. Project managers only.
func (mc *MeetingController) MarkMeetingAttendance(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if !policy.CanManageMeetings(user) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only Project Managers can mark attendance",
		})
	}

	var meeting models.Meeting
	if err := mc.DB.First(&meeting, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Meeting not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch meeting",
		})
	}

	var req MarkMeetingAttendanceRequest
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

	var attendee models.User
	if err := mc.DB.First(&attendee, req.UserID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user selected",
		})
	}

	markedBy := user.ID
	record := models.MeetingAttendance{
		MeetingID:  meeting.ID,
		UserID:     attendee.ID,
		Present:    req.Present,
		MarkedByID: &markedBy,
	}
	if err := mc.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"present", "marked_by_id", "updated_at"}),
	}).Create(&record).Error; err != nil {
		mc.Logger.Printf("Failed to mark attendance for meeting %d: %v", meeting.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark attendance",
		})
	}

	var count int64
	mc.DB.Model(&models.MeetingAttendance{}).
		Where("meeting_id = ? AND present = ?", meeting.ID, true).
		Count(&count)

	return c.JSON(fiber.Map{
		"message":          "Attendance marked successfully",
		"attendance_count": count,
	})
}
