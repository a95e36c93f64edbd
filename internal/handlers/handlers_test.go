package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecosortapp/ecosort/internal/classifier"
	"github.com/ecosortapp/ecosort/internal/geo"
	"github.com/ecosortapp/ecosort/internal/handlers"
	"github.com/ecosortapp/ecosort/internal/models"
	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/ecosortapp/ecosort/internal/types"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserPoints{},
		&models.PointTransaction{},
		&models.WasteReport{},
		&models.CarbonFootprintEntry{},
		&models.Complaint{},
		&models.ComplaintUpvote{},
		&models.Event{},
		&models.EventParticipant{},
		&models.AuthorityNotification{},
		&models.NotificationDLQ{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestApp creates a fiber app with the global error mapping.
func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var appErr *types.AppError
			if errors.As(err, &appErr) {
				code = appErr.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error(), "ok": false})
		},
	})
}

// asUser injects an authenticated user without going through the authorizer.
func asUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		c.Locals("userEmail", userID+"@example.com")
		return c.Next()
	}
}

type stubClassifier struct {
	result classifier.Result
	err    error
}

func (s *stubClassifier) ClassifyImage(ctx context.Context, image []byte, mimeType string) (classifier.Result, error) {
	return s.result, s.err
}

type stubStore struct{}

func (stubStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return "http://store.local/bucket/" + objectName, nil
}

func (stubStore) Remove(ctx context.Context, objectName string) error { return nil }

type stubLocator struct{}

func (stubLocator) Lookup(ctx context.Context) (geo.Position, error) {
	return geo.Position{Latitude: 1, Longitude: 2, Accuracy: 5}, nil
}

// TestGetLeaderboardRoute tests GET /api/leaderboard end to end
func TestGetLeaderboardRoute(t *testing.T) {
	db := setupTestDB(t)
	db.Create(&models.User{ID: "u1", Email: "u1@example.com"})
	db.Create(&models.UserPoints{UserID: "u1", Points: 700, Level: 1})

	app := newTestApp()
	handler := &handlers.GamificationHandler{DB: db}
	app.Get("/api/leaderboard", handler.GetLeaderboard)

	req := httptest.NewRequest("GET", "/api/leaderboard", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var entries []services.LeaderboardEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(entries) != 1 || entries[0].Points != 700 {
		t.Errorf("Unexpected leaderboard: %+v", entries)
	}
}

// TestGetPointsRoute tests GET /api/points for a fresh user
func TestGetPointsRoute(t *testing.T) {
	db := setupTestDB(t)

	app := newTestApp()
	handler := &handlers.GamificationHandler{DB: db}
	app.Get("/api/points", asUser("u1"), handler.GetPoints)

	req := httptest.NewRequest("GET", "/api/points", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var standing services.AwardResult
	if err := json.NewDecoder(resp.Body).Decode(&standing); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if standing.Points != 0 || standing.Level != 1 {
		t.Errorf("Expected zero-state standing, got %+v", standing)
	}
}

// TestCreateAndUpvoteComplaintRoute tests the complaint flow over HTTP
func TestCreateAndUpvoteComplaintRoute(t *testing.T) {
	db := setupTestDB(t)
	svc := &services.ComplaintService{DB: db, Geo: stubLocator{}}
	handler := &handlers.CommunityHandler{Complaints: svc, Events: &services.EventService{DB: db}}

	app := newTestApp()
	app.Post("/api/complaints", asUser("owner"), handler.CreateComplaint)
	app.Post("/api/complaints/:id/upvote", asUser("voter"), handler.UpvoteComplaint)
	app.Get("/api/complaints", handler.ListComplaints)

	body, _ := json.Marshal(services.ComplaintInput{
		Title: "Overflow", Description: "Bin overflowing", Location: "Main st",
	})
	req := httptest.NewRequest("POST", "/api/complaints", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var complaint models.Complaint
	if err := json.NewDecoder(resp.Body).Decode(&complaint); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	req = httptest.NewRequest("POST", "/api/complaints/"+complaint.ID+"/upvote", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	// Second upvote from the same voter conflicts
	req = httptest.NewRequest("POST", "/api/complaints/"+complaint.ID+"/upvote", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != 409 {
		t.Errorf("Expected status 409 for duplicate upvote, got %d", resp.StatusCode)
	}

	// Unknown complaint is a 404
	req = httptest.NewRequest("POST", "/api/complaints/nope/upvote", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404 for unknown complaint, got %d", resp.StatusCode)
	}
}

// TestEventRoutes tests event creation and join rules over HTTP
func TestEventRoutes(t *testing.T) {
	db := setupTestDB(t)
	handler := &handlers.CommunityHandler{
		Complaints: &services.ComplaintService{DB: db, Geo: stubLocator{}},
		Events:     &services.EventService{DB: db},
	}

	app := newTestApp()
	app.Post("/api/events", asUser("organizer"), handler.CreateEvent)
	app.Post("/api/events/:id/join", asUser("organizer"), handler.JoinEvent)
	app.Get("/api/events", handler.ListEvents)

	input := fiber.Map{
		"title":            "Cleanup",
		"description":      "River bank cleanup",
		"location":         "River park",
		"date":             time.Now().Add(24 * time.Hour).Format(time.RFC3339),
		"max_participants": 20,
	}
	body, _ := json.Marshal(input)
	req := httptest.NewRequest("POST", "/api/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var event models.Event
	if err := json.NewDecoder(resp.Body).Decode(&event); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// Organizer cannot join their own event
	req = httptest.NewRequest("POST", "/api/events/"+event.ID+"/join", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != 403 {
		t.Errorf("Expected status 403 for own-event join, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/events", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	var events []models.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 event, got %d", len(events))
	}
}

// TestCreateReportRoute tests the multipart upload flow
func TestCreateReportRoute(t *testing.T) {
	db := setupTestDB(t)
	svc := &services.ReportService{
		DB:    db,
		Store: stubStore{},
		Classifier: &stubClassifier{result: classifier.Result{
			Classification:  "Recyclable",
			Confidence:      0.9,
			Recommendations: []string{"Rinse it"},
		}},
	}
	handler := &handlers.ReportHandler{Service: svc}

	app := newTestApp()
	app.Post("/api/reports", asUser("u1"), handler.CreateReport)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, _ := writer.CreateFormFile("image", "bottle.jpg")
	_, _ = part.Write([]byte("fake-image-bytes"))
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/reports", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var report models.WasteReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if report.Classification != "Recyclable" {
		t.Errorf("Expected Recyclable classification, got %q", report.Classification)
	}

	// Missing file is a 400
	req = httptest.NewRequest("POST", "/api/reports", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400 for missing image, got %d", resp.StatusCode)
	}
}

// TestVerifyImplementationRoute tests the admin award endpoint
func TestVerifyImplementationRoute(t *testing.T) {
	db := setupTestDB(t)
	handler := &handlers.GamificationHandler{DB: db}

	app := newTestApp()
	app.Post("/api/admin/verify", asUser("admin"), handler.VerifyImplementation)

	body, _ := json.Marshal(fiber.Map{"user_id": "u1", "reference_id": "suggestion-9"})
	req := httptest.NewRequest("POST", "/api/admin/verify", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	standing, err := services.GetUserPoints(db, "u1")
	if err != nil {
		t.Fatalf("GetUserPoints failed: %v", err)
	}
	if standing.Points != 300 {
		t.Errorf("Expected 300 points after verification, got %d", standing.Points)
	}

	var txs []models.PointTransaction
	db.Where("user_id = ?", "u1").Find(&txs)
	if len(txs) != 1 || txs[0].Reason != fmt.Sprintf("%s: %s", services.ActionVerifiedImplementation, "suggestion-9") {
		t.Errorf("Unexpected transactions: %+v", txs)
	}
}
