package controller

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamtrack/config"
	"teamtrack/models"
	"teamtrack/policy"
	"teamtrack/utils"
)

type CommentController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewCommentController(db *gorm.DB, logger *log.Logger) *CommentController {
	return &CommentController{DB: db, Logger: logger}
}

// GetComments lists a task's comments newest-first.
func (cc *CommentController) GetComments(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var task models.Task
	if err := cc.DB.First(&task, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch task",
		})
	}

	if !policy.CanViewTask(user, &task) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You do not have permission to view this task",
		})
	}

	var comments []models.TaskComment
	if err := cc.DB.Preload("Author").
		Where("task_id = ?", task.ID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		cc.Logger.Printf("Failed to fetch comments for task %d: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch comments",
		})
	}

	return c.JSON(fiber.Map{"comments": comments})
}

// AddComment posts a comment (multipart form: comment_type, message,
// optional attachment). Only the assignee or the assigner may post; the
// other party is notified when one exists and differs from the commenter.
func (cc *CommentController) AddComment(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var task models.Task
	if err := cc.DB.First(&task, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch task",
		})
	}

	if !policy.CanCommentOnTask(user, &task) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only comment on tasks assigned to you or created by you",
		})
	}

	commentType := c.FormValue("comment_type", models.CommentTypeGeneral)
	if !models.IsValidCommentType(commentType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment type",
		})
	}

	message := strings.TrimSpace(c.FormValue("message"))
	if message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Please enter a comment message",
		})
	}

	var attachmentPath string
	if file, err := c.FormFile("attachment"); err == nil && file != nil {
		saved, err := cc.saveAttachment(c, file.Filename, task.ID)
		if err != nil {
			cc.Logger.Printf("Failed to store attachment: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to store attachment",
			})
		}
		attachmentPath = saved
	}

	comment := models.TaskComment{
		TaskID:      task.ID,
		AuthorID:    user.ID,
		CommentType: commentType,
		Message:     message,
		Attachment:  attachmentPath,
	}

	// Notify the other party on the task, if there is one
	var recipientID *uint
	if task.AssignedToID == user.ID && task.AssignedByID != nil && *task.AssignedByID != user.ID {
		recipientID = task.AssignedByID
	} else if task.AssignedByID != nil && *task.AssignedByID == user.ID && task.AssignedToID != user.ID {
		other := task.AssignedToID
		recipientID = &other
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		if recipientID != nil {
			preview := message
			if len(preview) > 50 {
				preview = preview[:50] + "..."
			}
			note := fmt.Sprintf("New comment on task %q by %s: %s", task.Title, user.Name, preview)
			return utils.Notify(tx, *recipientID, note)
		}
		return nil
	})
	if err != nil {
		cc.Logger.Printf("Failed to add comment to task %d: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add comment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// saveAttachment writes the uploaded file under the media root and returns
// its path relative to that root.
func (cc *CommentController) saveAttachment(c *fiber.Ctx, filename string, taskID uint) (string, error) {
	// Strip any client-supplied directory components
	base := filepath.Base(filename)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("invalid attachment filename")
	}

	dir := filepath.Join(config.AppConfig.MediaRoot, "task_attachments")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	stored := fmt.Sprintf("%d_%d_%s", taskID, time.Now().UnixNano(), base)
	file, err := c.FormFile("attachment")
	if err != nil {
		return "", err
	}
	if err := c.SaveFile(file, filepath.Join(dir, stored)); err != nil {
		return "", err
	}

	return filepath.Join("task_attachments", stored), nil
}
