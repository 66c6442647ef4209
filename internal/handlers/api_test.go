package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskmate/taskmate-backend/internal/config"
	"github.com/taskmate/taskmate-backend/internal/handlers"
	"github.com/taskmate/taskmate-backend/internal/models"
	"github.com/taskmate/taskmate-backend/internal/routes"
	"github.com/taskmate/taskmate-backend/internal/services"
	"github.com/taskmate/taskmate-backend/internal/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Task{},
		&models.TaskHelper{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		PublicBaseURL:    "http://localhost:8080",
		MaxUploadBytes:   4 * 1024 * 1024,
	}

	store, err := storage.NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	authService := services.NewAuthService(db, cfg)
	profileService := services.NewProfileService(db)
	taskService := services.NewTaskService(db)
	helperService := services.NewHelperService(db, profileService)
	sessionService := services.NewSessionService(profileService)
	mediaService := services.NewMediaService(store, cfg.PublicBaseURL, cfg.MaxUploadBytes)

	app := fiber.New()
	routes.Setup(app, cfg, store.Root(),
		handlers.NewAuthHandler(authService),
		handlers.NewSessionHandler(sessionService),
		handlers.NewTaskHandler(taskService),
		handlers.NewHelperHandler(helperService),
		handlers.NewProfileHandler(profileService, mediaService),
		handlers.NewHealthHandler(),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}

	var parsed map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("%s %s: invalid JSON response %q", method, path, raw)
		}
	}
	return resp, parsed
}

func registerAndSetup(t *testing.T, app *fiber.App, email, phone, name string) string {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"email":            email,
		"password":         "secret1",
		"confirm_password": "secret1",
		"display_name":     name,
		"phone_number":     phone,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register: status = %d, body = %v", resp.StatusCode, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatal("register: missing access token")
	}

	resp, body = doJSON(t, app, "POST", "/api/profile", token, map[string]string{
		"display_name": name,
		"phone_number": phone,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create profile: status = %d, body = %v", resp.StatusCode, body)
	}
	return token
}

func TestRegistrationFlow(t *testing.T) {
	app := newTestApp(t)

	token := registerAndSetup(t, app, "a@x.com", "+15551230000", "Ann")

	// Session gate reports the authenticated state once the profile exists.
	resp, body := doJSON(t, app, "GET", "/api/session", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("session: status = %d", resp.StatusCode)
	}
	if body["state"] != "authenticated" {
		t.Errorf("session state = %v, want authenticated", body["state"])
	}

	// A fresh account sees zero Work tasks.
	resp, body = doJSON(t, app, "GET", "/api/tasks?category=Work", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list tasks: status = %d", resp.StatusCode)
	}
	if total, _ := body["total"].(float64); total != 0 {
		t.Errorf("expected 0 Work tasks, got %v", total)
	}
}

func TestSessionStates(t *testing.T) {
	app := newTestApp(t)

	// No token at all.
	resp, body := doJSON(t, app, "GET", "/api/session", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("session: status = %d", resp.StatusCode)
	}
	if body["state"] != "unauthenticated" {
		t.Errorf("state = %v, want unauthenticated", body["state"])
	}

	// Registered but the profile step never ran.
	resp, regBody := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"email":            "b@x.com",
		"password":         "secret1",
		"confirm_password": "secret1",
		"display_name":     "Bea",
		"phone_number":     "+15557654321",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register: status = %d", resp.StatusCode)
	}
	token := regBody["access_token"].(string)

	resp, body = doJSON(t, app, "GET", "/api/session", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("session: status = %d", resp.StatusCode)
	}
	if body["state"] != "profile_incomplete" {
		t.Errorf("state = %v, want profile_incomplete", body["state"])
	}
	if body["redirect_to"] != "/profile/setup" {
		t.Errorf("redirect = %v, want /profile/setup", body["redirect_to"])
	}
}

func TestTaskLifecycleOverAPI(t *testing.T) {
	app := newTestApp(t)
	token := registerAndSetup(t, app, "a@x.com", "+15551230000", "Ann")

	// Unauthenticated access is rejected.
	resp, _ := doJSON(t, app, "GET", "/api/tasks?category=Shopping", "", nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("unauthenticated list: status = %d, want 401", resp.StatusCode)
	}

	resp, created := doJSON(t, app, "POST", "/api/tasks", token, map[string]string{
		"title":    "Buy milk",
		"category": "Shopping",
		"priority": "Low",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create task: status = %d, body = %v", resp.StatusCode, created)
	}
	taskID := created["id"].(string)

	resp, listed := doJSON(t, app, "GET", "/api/tasks?category=Shopping", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list: status = %d", resp.StatusCode)
	}
	tasks := listed["tasks"].([]interface{})
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	task := tasks[0].(map[string]interface{})
	if task["title"] != "Buy milk" || task["completed"] != false || task["priority"] != "Low" {
		t.Errorf("unexpected task: %v", task)
	}

	resp, _ = doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%s/status", taskID), token, map[string]bool{"completed": true})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("complete: status = %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "DELETE", "/api/tasks/"+taskID, token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: status = %d", resp.StatusCode)
	}

	resp, listed = doJSON(t, app, "GET", "/api/tasks?category=Shopping", token, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list after delete: status = %d", resp.StatusCode)
	}
	if total, _ := listed["total"].(float64); total != 0 {
		t.Errorf("expected 0 tasks after delete, got %v", total)
	}
}

func TestHelperFlowOverAPI(t *testing.T) {
	app := newTestApp(t)
	owner := registerAndSetup(t, app, "a@x.com", "+15551230000", "Ann")
	registerAndSetup(t, app, "b@x.com", "+15557654321", "Bob")

	resp, created := doJSON(t, app, "POST", "/api/tasks", owner, map[string]string{
		"title":    "Paint fence",
		"category": "Personal",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create task: status = %d", resp.StatusCode)
	}
	taskID := created["id"].(string)

	// Inviting a phone number nobody registered fails without a record.
	resp, body := doJSON(t, app, "POST", "/api/tasks/"+taskID+"/helpers", owner, map[string]string{
		"phone_number": "+15550009999",
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("unknown phone: status = %d, body = %v", resp.StatusCode, body)
	}

	resp, helper := doJSON(t, app, "POST", "/api/tasks/"+taskID+"/helpers", owner, map[string]string{
		"phone_number": "+15557654321",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("add helper: status = %d, body = %v", resp.StatusCode, helper)
	}
	if helper["display_name"] != "Bob" || helper["status"] != "pending" {
		t.Errorf("unexpected helper: %v", helper)
	}
	helperID := helper["id"].(string)

	resp, updated := doJSON(t, app, "PUT", "/api/tasks/"+taskID+"/helpers/"+helperID, owner, map[string]string{
		"status": "accepted",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("update helper: status = %d", resp.StatusCode)
	}
	if updated["status"] != "accepted" {
		t.Errorf("status = %v, want accepted", updated["status"])
	}
}

func TestProfilePictureUpload(t *testing.T) {
	app := newTestApp(t)
	token := registerAndSetup(t, app, "a@x.com", "+15551230000", "Ann")

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("picture", "profile.png")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	if _, err := part.Write(png); err != nil {
		t.Fatalf("part write error = %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/api/profile/picture", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("upload: status = %d, body = %s", resp.StatusCode, raw)
	}

	var uploaded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("invalid upload response: %v", err)
	}
	url, _ := uploaded["url"].(string)
	if url == "" {
		t.Fatal("missing picture URL")
	}

	// The URL lands in the profile.
	respProfile, profile := doJSON(t, app, "GET", "/api/profile", token, nil)
	if respProfile.StatusCode != fiber.StatusOK {
		t.Fatalf("get profile: status = %d", respProfile.StatusCode)
	}
	if profile["profile_picture_url"] != url {
		t.Errorf("profile picture url = %v, want %v", profile["profile_picture_url"], url)
	}
}
