package controller_test

import (
	"net/http"
	"testing"
	"time"

	"teamtrack/models"
)

func TestDashboardManagerStats(t *testing.T) {
	app, db := setupTestApp(t)
	pm := createUser(t, db, "pm@example.com", "Priya", models.TeamProjectManager, true)
	alex := createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)
	createUser(t, db, "gone@example.com", "Gone", models.TeamTech, false)

	pmID := pm.ID
	for _, task := range []models.Task{
		{Title: "t1", AssignedToID: alex.ID, AssignedByID: &pmID, Team: models.TeamTech, Status: models.TaskStatusPending, Priority: models.TaskPriorityMedium},
		{Title: "t2", AssignedToID: alex.ID, AssignedByID: &pmID, Team: models.TeamTech, Status: models.TaskStatusPending, Priority: models.TaskPriorityMedium},
		{Title: "t3", AssignedToID: alex.ID, AssignedByID: &pmID, Team: models.TeamDesign, Status: models.TaskStatusCompleted, Priority: models.TaskPriorityMedium},
	} {
		if err := db.Create(&task).Error; err != nil {
			t.Fatalf("failed to seed task: %v", err)
		}
	}

	meeting := models.Meeting{Title: "Planning", OrganizerID: pm.ID, ScheduledAt: time.Now().Add(24 * time.Hour), DurationMinutes: 60}
	if err := db.Create(&meeting).Error; err != nil {
		t.Fatalf("failed to seed meeting: %v", err)
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/stats", tokenFor(t, pm), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, body)
	}
	if body["role"] != "manager" {
		t.Fatalf("role = %v, want manager", body["role"])
	}

	byStatus := countsByKey(t, body["tasks_by_status"], "status")
	if byStatus[models.TaskStatusPending] != 2 || byStatus[models.TaskStatusCompleted] != 1 {
		t.Errorf("tasks_by_status = %v", byStatus)
	}
	byTeam := countsByKey(t, body["tasks_by_team"], "team")
	if byTeam[models.TeamTech] != 2 || byTeam[models.TeamDesign] != 1 {
		t.Errorf("tasks_by_team = %v", byTeam)
	}
	if members := body["total_members"].(float64); members != 2 {
		t.Errorf("total_members = %v, want 2 active", members)
	}
	if upcoming := body["upcoming_meetings"].(float64); upcoming != 1 {
		t.Errorf("upcoming_meetings = %v, want 1", upcoming)
	}
}

func TestDashboardMemberStats(t *testing.T) {
	app, db := setupTestApp(t)
	pm := createUser(t, db, "pm@example.com", "Priya", models.TeamProjectManager, true)
	alex := createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)
	bao := createUser(t, db, "b@example.com", "Bao", models.TeamTech, true)

	pmID := pm.ID
	for _, task := range []models.Task{
		{Title: "mine", AssignedToID: alex.ID, AssignedByID: &pmID, Team: models.TeamTech, Status: models.TaskStatusInProgress, Priority: models.TaskPriorityMedium},
		{Title: "someone elses", AssignedToID: bao.ID, AssignedByID: &pmID, Team: models.TeamTech, Status: models.TaskStatusInProgress, Priority: models.TaskPriorityMedium},
	} {
		if err := db.Create(&task).Error; err != nil {
			t.Fatalf("failed to seed task: %v", err)
		}
	}
	for _, n := range []models.Notification{
		{RecipientID: alex.ID, Message: "unread"},
		{RecipientID: alex.ID, Message: "read", IsRead: true},
	} {
		if err := db.Create(&n).Error; err != nil {
			t.Fatalf("failed to seed notification: %v", err)
		}
	}

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/dashboard/stats", tokenFor(t, alex), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, body)
	}
	if body["role"] != "member" {
		t.Fatalf("role = %v, want member", body["role"])
	}

	byStatus := countsByKey(t, body["tasks_by_status"], "status")
	if byStatus[models.TaskStatusInProgress] != 1 {
		t.Errorf("tasks_by_status = %v, member stats should only count own tasks", byStatus)
	}
	if unread := body["unread_notifications"].(float64); unread != 1 {
		t.Errorf("unread_notifications = %v, want 1", unread)
	}
}

// countsByKey flattens [{<key>: X, count: N}, ...] into map[X]N.
func countsByKey(t *testing.T, raw interface{}, key string) map[string]float64 {
	t.Helper()

	list, ok := raw.([]interface{})
	if !ok {
		t.Fatalf("expected a list of counts, got %T", raw)
	}
	out := make(map[string]float64, len(list))
	for _, item := range list {
		entry := item.(map[string]interface{})
		out[entry[key].(string)] = entry["count"].(float64)
	}
	return out
}
