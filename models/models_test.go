package models_test

import (
	"testing"

	"teamtrack/models"
)

func TestIsValidTeam(t *testing.T) {
	for _, team := range models.Teams {
		if !models.IsValidTeam(team) {
			t.Errorf("IsValidTeam(%q) = false, want true", team)
		}
	}
	for _, team := range []string{"", "tech", "SALES", "PROJECT MANAGER"} {
		if models.IsValidTeam(team) {
			t.Errorf("IsValidTeam(%q) = true, want false", team)
		}
	}
}

func TestIsValidTaskStatus(t *testing.T) {
	valid := []string{
		models.TaskStatusPending,
		models.TaskStatusInProgress,
		models.TaskStatusReview,
		models.TaskStatusCompleted,
		models.TaskStatusBlocked,
	}
	for _, s := range valid {
		if !models.IsValidTaskStatus(s) {
			t.Errorf("IsValidTaskStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "pending", "DONE", "CANCELLED"} {
		if models.IsValidTaskStatus(s) {
			t.Errorf("IsValidTaskStatus(%q) = true, want false", s)
		}
	}
}

func TestIsValidTaskPriority(t *testing.T) {
	for _, p := range []string{models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh} {
		if !models.IsValidTaskPriority(p) {
			t.Errorf("IsValidTaskPriority(%q) = false, want true", p)
		}
	}
	for _, p := range []string{"", "medium", "URGENT"} {
		if models.IsValidTaskPriority(p) {
			t.Errorf("IsValidTaskPriority(%q) = true, want false", p)
		}
	}
}

func TestUserIsProjectManager(t *testing.T) {
	pm := models.User{Team: models.TeamProjectManager}
	if !pm.IsProjectManager() {
		t.Error("project manager team member should be a project manager")
	}

	admin := models.User{Team: models.TeamTech, IsAdmin: true}
	if !admin.IsProjectManager() {
		t.Error("admin should count as a project manager regardless of team")
	}

	member := models.User{Team: models.TeamMarketing}
	if member.IsProjectManager() {
		t.Error("plain member should not be a project manager")
	}
}

func TestAttendanceIsPresent(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{models.AttendancePresent, true},
		{models.AttendanceLate, false},
		{models.AttendanceAbsent, false},
		{"", false},
	}
	for _, tt := range tests {
		record := models.AttendanceRecord{Status: tt.status}
		if got := record.IsPresent(); got != tt.want {
			t.Errorf("IsPresent() with status %q = %v, want %v", tt.status, got, tt.want)
		}
	}
}
