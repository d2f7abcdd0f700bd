// Package policy centralizes every authorization decision in the system.
// Handlers never compare teams or IDs inline; they ask one of these
// predicates about (actor, resource, action) and act on the answer.
package policy

import (
	"teamtrack/models"
)

// IsProjectManager reports whether the actor holds the elevated role.
func IsProjectManager(actor *models.User) bool {
	return actor != nil && actor.IsProjectManager()
}

// CanViewTask allows the assignee, the assigner, or a project manager.
func CanViewTask(actor *models.User, task *models.Task) bool {
	if actor == nil || task == nil {
		return false
	}
	if IsProjectManager(actor) {
		return true
	}
	if task.AssignedToID == actor.ID {
		return true
	}
	return task.AssignedByID != nil && *task.AssignedByID == actor.ID
}

// CanEditTask allows a project manager or the assignee.
func CanEditTask(actor *models.User, task *models.Task) bool {
	if actor == nil || task == nil {
		return false
	}
	return IsProjectManager(actor) || task.AssignedToID == actor.ID
}

// CanDeleteTask allows project managers only.
func CanDeleteTask(actor *models.User, task *models.Task) bool {
	return actor != nil && task != nil && IsProjectManager(actor)
}

// CanCreateTask allows project managers only.
func CanCreateTask(actor *models.User) bool {
	return IsProjectManager(actor)
}

// CanUpdateTaskStatus allows the current assignee only.
func CanUpdateTaskStatus(actor *models.User, task *models.Task) bool {
	return actor != nil && task != nil && task.AssignedToID == actor.ID
}

// CanCommentOnTask allows the assignee or the assigner.
func CanCommentOnTask(actor *models.User, task *models.Task) bool {
	if actor == nil || task == nil {
		return false
	}
	if task.AssignedToID == actor.ID {
		return true
	}
	return task.AssignedByID != nil && *task.AssignedByID == actor.ID
}

// CanReassignTask allows project managers only.
func CanReassignTask(actor *models.User) bool {
	return IsProjectManager(actor)
}

// CanMarkAttendance allows managers and staff.
func CanMarkAttendance(actor *models.User) bool {
	return actor != nil && (actor.IsProjectManager() || actor.IsStaff)
}

// CanManageMeetings allows project managers only.
func CanManageMeetings(actor *models.User) bool {
	return IsProjectManager(actor)
}
