package controller_test

import (
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"teamtrack/models"
)

func TestRegisterAndLogin(t *testing.T) {
	app, db := setupTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"email":    "new@example.com",
		"password": "longenough",
		"name":     "Noor",
		"team":     models.TeamDesign,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %v", resp.StatusCode, body)
	}
	if body["access_token"] == "" || body["refresh_token"] == "" {
		t.Fatal("register should return both tokens")
	}
	userMap, ok := body["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("user missing from response: %v", body)
	}
	if _, leaked := userMap["password_hash"]; leaked {
		t.Error("password hash must never appear in responses")
	}
	if userMap["team"] != models.TeamDesign {
		t.Errorf("team = %v, want %s", userMap["team"], models.TeamDesign)
	}

	var stored models.User
	if err := db.Where("email = ?", "new@example.com").First(&stored).Error; err != nil {
		t.Fatalf("user missing: %v", err)
	}
	if stored.PasswordHash == "longenough" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough")); err != nil {
		t.Errorf("stored hash does not match the password: %v", err)
	}

	resp, body = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "new@example.com",
		"password": "longenough",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login expected 200, got %d: %v", resp.StatusCode, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("login should return an access token")
	}

	resp, body = doJSON(t, app, http.MethodGet, "/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me expected 200, got %d: %v", resp.StatusCode, body)
	}
	if body["email"] != "new@example.com" {
		t.Errorf("me email = %v", body["email"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app, db := setupTestApp(t)
	createUser(t, db, "taken@example.com", "Alex", models.TeamTech, true)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", "", map[string]interface{}{
		"email":    "taken@example.com",
		"password": "longenough",
		"name":     "Copy",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	app, db := setupTestApp(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing email", map[string]interface{}{"password": "longenough", "name": "X"}},
		{"malformed email", map[string]interface{}{"email": "nope", "password": "longenough", "name": "X"}},
		{"short password", map[string]interface{}{"email": "a@example.com", "password": "short", "name": "X"}},
		{"missing name", map[string]interface{}{"email": "a@example.com", "password": "longenough"}},
		{"unknown team", map[string]interface{}{"email": "a@example.com", "password": "longenough", "name": "X", "team": "SALES"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPost, "/auth/register", "", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}

	if n := countRows(t, db, &models.User{}, "1 = 1"); n != 0 {
		t.Errorf("user rows = %d, want 0", n)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, db := setupTestApp(t)
	createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "a@example.com",
		"password": "wrong-password",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	app, db := setupTestApp(t)
	createUser(t, db, "gone@example.com", "Gone", models.TeamTech, false)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "gone@example.com",
		"password": "password123",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}

func TestRefreshTokenFlow(t *testing.T) {
	app, db := setupTestApp(t)
	createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)

	_, body := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "a@example.com",
		"password": "password123",
	})
	refresh, _ := body["refresh_token"].(string)
	if refresh == "" {
		t.Fatal("login should return a refresh token")
	}

	resp, body := doJSON(t, app, http.MethodPost, "/auth/refresh", "", map[string]interface{}{
		"refresh_token": refresh,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, body)
	}
	if body["access_token"] == "" || body["refresh_token"] == "" {
		t.Error("refresh should return a new token pair")
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/refresh", "", map[string]interface{}{
		"refresh_token": "not.a.token",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("garbage refresh token expected 401, got %d", resp.StatusCode)
	}
}

func TestChangePassword(t *testing.T) {
	app, db := setupTestApp(t)
	alex := createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)

	resp, _ := doJSON(t, app, http.MethodPost, "/auth/change-password", tokenFor(t, alex), map[string]interface{}{
		"current_password": "wrong",
		"new_password":     "replacement1",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong current password expected 401, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/change-password", tokenFor(t, alex), map[string]interface{}{
		"current_password": "password123",
		"new_password":     "replacement1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]interface{}{
		"email":    "a@example.com",
		"password": "replacement1",
	})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("login with new password expected 200, got %d", resp.StatusCode)
	}
}

func TestUpdateProfile(t *testing.T) {
	app, db := setupTestApp(t)
	alex := createUser(t, db, "a@example.com", "Alex", models.TeamTech, true)

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/profile", tokenFor(t, alex), map[string]interface{}{
		"name": "Alexandra",
		"team": models.TeamMarketing,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", resp.StatusCode, body)
	}

	var updated models.User
	if err := db.First(&updated, alex.ID).Error; err != nil {
		t.Fatalf("user missing: %v", err)
	}
	if updated.Name != "Alexandra" || updated.Team != models.TeamMarketing {
		t.Errorf("profile not updated: name=%q team=%q", updated.Name, updated.Team)
	}

	resp, _ = doJSON(t, app, http.MethodPut, "/api/v1/profile", tokenFor(t, alex), map[string]interface{}{
		"team": "SALES",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown team expected 400, got %d", resp.StatusCode)
	}
}
