package models

import (
	"time"

	"gorm.io/gorm"
)

// Task status values
const (
	TaskStatusPending    = "PENDING"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusReview     = "REVIEW"
	TaskStatusCompleted  = "COMPLETED"
	TaskStatusBlocked    = "BLOCKED"
)

// Task priority values
const (
	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM"
	TaskPriorityHigh   = "HIGH"
)

// TaskStatuses lists every valid task status.
var TaskStatuses = []string{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusReview,
	TaskStatusCompleted,
	TaskStatusBlocked,
}

// TaskPriorities lists every valid task priority.
var TaskPriorities = []string{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
}

// IsValidTaskStatus reports whether status is one of the declared values.
func IsValidTaskStatus(status string) bool {
	for _, s := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidTaskPriority reports whether priority is one of the declared values.
func IsValidTaskPriority(priority string) bool {
	for _, p := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

// Task is an assignable unit of work. Only Project Managers create tasks;
// the assignee may update status and comment, full edits and deletion stay
// with Project Managers.
type Task struct {
	gorm.Model

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	// AssignedBy is nullable so deleting the assigning user leaves the
	// task in place with the reference cleared.
	AssignedToID uint  `gorm:"not null;index" json:"assigned_to_id"`
	AssignedByID *uint `gorm:"index" json:"assigned_by_id,omitempty"`

	Team     string     `gorm:"not null;default:'TECH'" json:"team"`
	Status   string     `gorm:"not null;default:'PENDING'" json:"status"`
	Priority string     `gorm:"not null;default:'MEDIUM'" json:"priority"`
	DueDate  *time.Time `json:"due_date,omitempty"`

	// Relations
	AssignedTo User          `gorm:"foreignKey:AssignedToID" json:"assigned_to,omitempty"`
	AssignedBy *User         `gorm:"foreignKey:AssignedByID;constraint:OnDelete:SET NULL" json:"assigned_by,omitempty"`
	Comments   []TaskComment `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

// TaskComment type values
const (
	CommentTypeGeneral  = "GENERAL"
	CommentTypeQuestion = "QUESTION"
	CommentTypeUpdate   = "UPDATE"
	CommentTypeBlocker  = "BLOCKER"
)

// CommentTypes lists every valid comment type.
var CommentTypes = []string{
	CommentTypeGeneral,
	CommentTypeQuestion,
	CommentTypeUpdate,
	CommentTypeBlocker,
}

// IsValidCommentType reports whether commentType is a declared value.
func IsValidCommentType(commentType string) bool {
	for _, ct := range CommentTypes {
		if ct == commentType {
			return true
		}
	}
	return false
}

// TaskComment is a note on a task posted by the assignee or the assigner.
// Attachment holds the stored file path relative to the media root.
type TaskComment struct {
	gorm.Model

	TaskID      uint   `gorm:"not null;index" json:"task_id"`
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`
	CommentType string `gorm:"not null;default:'GENERAL'" json:"comment_type"`
	Message     string `gorm:"type:text;not null" json:"message"`
	Attachment  string `json:"attachment,omitempty"`

	// Relations
	Task   Task `json:"-"`
	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
