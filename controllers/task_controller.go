package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamtrack/models"
	"teamtrack/policy"
	"teamtrack/utils"
)

type TaskController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTaskController(db *gorm.DB, logger *log.Logger) *TaskController {
	return &TaskController{DB: db, Logger: logger}
}

type CreateTaskRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description"`
	AssignedToID uint   `json:"assigned_to_id" validate:"required"`
	Team         string `json:"team" validate:"omitempty"`
	Priority     string `json:"priority" validate:"omitempty"`
	DueDate      string `json:"due_date" validate:"omitempty"`
}

type UpdateTaskRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=200"`
	Description  *string `json:"description"`
	Status       *string `json:"status"`
	Priority     *string `json:"priority"`
	Team         *string `json:"team"`
	DueDate      *string `json:"due_date"`
	AssignedToID *uint   `json:"assigned_to_id"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// parseDueDate accepts an ISO date; empty clears the due date.
func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTasks lists tasks: project managers see every task, members only
// their own. Supports search/status/priority filters and pagination.
func (tc *TaskController) GetTasks(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	query := tc.DB.Model(&models.Task{}).
		Preload("AssignedTo").
		Preload("AssignedBy")

	if !policy.IsProjectManager(user) {
		query = query.Where("assigned_to_id = ?", user.ID)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		tc.Logger.Printf("Failed to count tasks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch tasks",
		})
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 10)
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	var tasks []models.Task
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&tasks).Error; err != nil {
		tc.Logger.Printf("Failed to fetch tasks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch tasks",
		})
	}

	return c.JSON(fiber.Map{
		"tasks":    tasks,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

// CreateTask creates a task and the assignee's notification in a single
// transaction. Project managers only.
func (tc *TaskController) CreateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	if !policy.CanCreateTask(user) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only Project Managers can create tasks",
		})
	}

	var req CreateTaskRequest
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

	team := req.Team
	if team == "" {
		team = models.TeamTech
	}
	if !models.IsValidTeam(team) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid team",
		})
	}

	priority := req.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.IsValidTaskPriority(priority) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid priority",
		})
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid due date, expected YYYY-MM-DD",
		})
	}

	var assignee models.User
	if err := tc.DB.First(&assignee, req.AssignedToID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user selected",
		})
	}
	if !assignee.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot assign tasks to an inactive user",
		})
	}

	assignedByID := user.ID
	task := models.Task{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: assignee.ID,
		AssignedByID: &assignedByID,
		Team:         team,
		Priority:     priority,
		Status:       models.TaskStatusPending,
		DueDate:      dueDate,
	}

	message := fmt.Sprintf("New task assigned: %q by %s (Team: %s)", task.Title, user.Name, team)

	// Task insert and notification commit or roll back together
	err = tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return utils.Notify(tx, assignee.ID, message)
	})
	if err != nil {
		tc.Logger.Printf("Failed to create task: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create task",
		})
	}

	utils.EmailCopy(&assignee, "New task assigned", message)
	tc.Logger.Printf("Task %d created by user %d for user %d", task.ID, user.ID, assignee.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Task created successfully",
		"task":    task,
	})
}

// GetTask returns a single task visible to the assignee, the assigner, or
// a project manager.
func (tc *TaskController) GetTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var task models.Task
	if err := tc.DB.Preload("AssignedTo").Preload("AssignedBy").
		First(&task, c.Params("id")).Error; err != nil {
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

	return c.JSON(task)
}

// UpdateTask performs a full edit. Project managers or the assignee may
// edit; only project managers may reassign. Moving into COMPLETED
// notifies the assigner.
func (tc *TaskController) UpdateTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var task models.Task
	if err := tc.DB.First(&task, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch task",
		})
	}

	if !policy.CanEditTask(user, &task) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only edit tasks assigned to you or you must be a Project Manager",
		})
	}

	var req UpdateTaskRequest
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

	oldStatus := task.Status

	if req.Title != nil && *req.Title != "" {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !models.IsValidTaskStatus(*req.Status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status",
			})
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !models.IsValidTaskPriority(*req.Priority) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid priority",
			})
		}
		task.Priority = *req.Priority
	}
	if req.Team != nil {
		if !models.IsValidTeam(*req.Team) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid team",
			})
		}
		task.Team = *req.Team
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid due date, expected YYYY-MM-DD",
			})
		}
		task.DueDate = dueDate
	}

	// Reassignment is reserved to project managers
	if req.AssignedToID != nil && policy.CanReassignTask(user) {
		var assignee models.User
		if err := tc.DB.First(&assignee, *req.AssignedToID).Error; err == nil {
			task.AssignedToID = assignee.ID
		}
	}

	completed := oldStatus != models.TaskStatusCompleted &&
		task.Status == models.TaskStatusCompleted

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		if completed && task.AssignedByID != nil {
			var assignedTo models.User
			if err := tx.First(&assignedTo, task.AssignedToID).Error; err != nil {
				return err
			}
			message := fmt.Sprintf("Task %q has been completed by %s", task.Title, assignedTo.Name)
			return utils.Notify(tx, *task.AssignedByID, message)
		}
		return nil
	})
	if err != nil {
		tc.Logger.Printf("Failed to update task %d: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask removes a task. Project managers only.
func (tc *TaskController) DeleteTask(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var task models.Task
	if err := tc.DB.First(&task, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch task",
		})
	}

	if !policy.CanDeleteTask(user, &task) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only Project Managers can delete tasks",
		})
	}

	if err := tc.DB.Delete(&task).Error; err != nil {
		tc.Logger.Printf("Failed to delete task %d: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete task",
		})
	}

	tc.Logger.Printf("Task %d deleted by user %d", task.ID, user.ID)
	return c.JSON(fiber.Map{"message": "Task deleted successfully"})
}

// UpdateTaskStatus lets the assignee move their task to any declared
// status. The assigner is notified of the old and new values unless they
// are the acting user.
func (tc *TaskController) UpdateTaskStatus(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)

	var task models.Task
	if err := tc.DB.First(&task, c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch task",
		})
	}

	if !policy.CanUpdateTaskStatus(user, &task) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update tasks assigned to you",
		})
	}

	var req UpdateTaskStatusRequest
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
	if !models.IsValidTaskStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status selected",
		})
	}

	oldStatus := task.Status
	task.Status = req.Status

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		// Do not notify the assigner about their own change
		if task.AssignedByID != nil && *task.AssignedByID != user.ID {
			message := fmt.Sprintf("Task %q status changed from %s to %s by %s",
				task.Title, oldStatus, task.Status, user.Name)
			return utils.Notify(tx, *task.AssignedByID, message)
		}
		return nil
	})
	if err != nil {
		tc.Logger.Printf("Failed to update task %d status: %v", task.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update task status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Task status updated",
		"task":    task,
	})
}
