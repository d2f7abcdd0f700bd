package controller_test

import (
	"net/http"
	"testing"

	"teamtrack/models"
)

func TestNotificationListScopedToOwner(t *testing.T) {
	app, db := setupTestApp(t)
	alex := createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)
	bao := createUser(t, db, "b@example.com", "Bao", models.TeamTech, true)

	for _, n := range []models.Notification{
		{RecipientID: alex.ID, Message: "for alex 1"},
		{RecipientID: alex.ID, Message: "for alex 2"},
		{RecipientID: bao.ID, Message: "for bao"},
	} {
		if err := db.Create(&n).Error; err != nil {
			t.Fatalf("failed to seed notification: %v", err)
		}
	}

	_, body := doJSON(t, app, http.MethodGet, "/api/v1/notifications", tokenFor(t, alex), nil)
	list, ok := body["notifications"].([]interface{})
	if !ok {
		t.Fatalf("notifications missing from response: %v", body)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 notifications for alex, got %d", len(list))
	}
	if unread := body["unread_count"].(float64); unread != 2 {
		t.Errorf("unread_count = %v, want 2", unread)
	}
}

func TestMarkReadOwnNotification(t *testing.T) {
	app, db := setupTestApp(t)
	alex := createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)

	note := models.Notification{RecipientID: alex.ID, Message: "hello"}
	if err := db.Create(&note).Error; err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/notifications/1/read", tokenFor(t, alex), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var updated models.Notification
	if err := db.First(&updated, note.ID).Error; err != nil {
		t.Fatalf("notification missing: %v", err)
	}
	if !updated.IsRead {
		t.Error("notification should be read")
	}
}

func TestCannotMarkAnotherUsersNotification(t *testing.T) {
	app, db := setupTestApp(t)
	alex := createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)
	bao := createUser(t, db, "b@example.com", "Bao", models.TeamTech, true)

	note := models.Notification{RecipientID: alex.ID, Message: "private"}
	if err := db.Create(&note).Error; err != nil {
		t.Fatalf("failed to seed notification: %v", err)
	}

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/notifications/1/read", tokenFor(t, bao), nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for foreign notification, got %d", resp.StatusCode)
	}

	var unchanged models.Notification
	if err := db.First(&unchanged, note.ID).Error; err != nil {
		t.Fatalf("notification missing: %v", err)
	}
	if unchanged.IsRead {
		t.Error("foreign mark-read mutated the row")
	}
}

func TestMarkAllReadOnlyTouchesOwnRows(t *testing.T) {
	app, db := setupTestApp(t)
	alex := createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)
	bao := createUser(t, db, "b@example.com", "Bao", models.TeamTech, true)

	for _, n := range []models.Notification{
		{RecipientID: alex.ID, Message: "one"},
		{RecipientID: alex.ID, Message: "two"},
		{RecipientID: bao.ID, Message: "three"},
	} {
		if err := db.Create(&n).Error; err != nil {
			t.Fatalf("failed to seed notification: %v", err)
		}
	}

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/notifications/read-all", tokenFor(t, alex), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if rows := body["updated_rows"].(float64); rows != 2 {
		t.Errorf("updated_rows = %v, want 2", rows)
	}

	if n := countRows(t, db, &models.Notification{}, "recipient_id = ? AND is_read = ?", bao.ID, false); n != 1 {
		t.Errorf("bao's notification should remain unread")
	}
}
