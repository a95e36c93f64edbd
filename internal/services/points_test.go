package services_test

import (
	"testing"

	"github.com/ecosortapp/ecosort/internal/models"
	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/glebarez/sqlite"
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

// TestLevelForPoints tests level derivation at the threshold boundaries
func TestLevelForPoints(t *testing.T) {
	cases := []struct {
		points int64
		level  int
	}{
		{0, 1},
		{1, 1},
		{999, 1},
		{1000, 2},
		{2499, 2},
		{2500, 3},
		{5000, 4},
		{10000, 5},
		{20000, 6},
		{35000, 7},
		{50000, 8},
		{75000, 9},
		{99999, 9},
		{100000, 10},
		{1000000, 10},
	}

	for _, tc := range cases {
		if got := services.LevelForPoints(tc.points); got != tc.level {
			t.Errorf("LevelForPoints(%d) = %d, want %d", tc.points, got, tc.level)
		}
	}
}

// TestAwardPoints tests that an award creates the standing and the audit row
func TestAwardPoints(t *testing.T) {
	db := setupTestDB(t)

	result, err := services.AwardPoints(db, "user-1", services.ActionWasteReport, "report-1")
	if err != nil {
		t.Fatalf("AwardPoints failed: %v", err)
	}
	if result.Points != 100 {
		t.Errorf("Expected 100 points, got %d", result.Points)
	}
	if result.Level != 1 {
		t.Errorf("Expected level 1, got %d", result.Level)
	}

	var txs []models.PointTransaction
	if err := db.Where("user_id = ?", "user-1").Find(&txs).Error; err != nil {
		t.Fatalf("Failed to query transactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("Expected exactly 1 transaction, got %d", len(txs))
	}
	if txs[0].Points != 100 {
		t.Errorf("Expected transaction of 100 points, got %d", txs[0].Points)
	}
	if txs[0].Reason != "waste_report: report-1" {
		t.Errorf("Unexpected transaction reason: %q", txs[0].Reason)
	}
}

// TestAwardPointsAccumulates tests that repeated awards accumulate and level up
func TestAwardPointsAccumulates(t *testing.T) {
	db := setupTestDB(t)

	// 2 events at 500 points reach the 1000 point threshold
	if _, err := services.AwardPoints(db, "user-1", services.ActionEcoEvent, "event-1"); err != nil {
		t.Fatalf("AwardPoints failed: %v", err)
	}
	result, err := services.AwardPoints(db, "user-1", services.ActionEcoEvent, "event-2")
	if err != nil {
		t.Fatalf("AwardPoints failed: %v", err)
	}

	if result.Points != 1000 {
		t.Errorf("Expected 1000 points, got %d", result.Points)
	}
	if result.Level != 2 {
		t.Errorf("Expected level 2 at 1000 points, got %d", result.Level)
	}

	var count int64
	db.Model(&models.PointTransaction{}).Where("user_id = ?", "user-1").Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 transactions, got %d", count)
	}
}

// TestAwardPointsUnknownAction tests rejection of actions outside the table
func TestAwardPointsUnknownAction(t *testing.T) {
	db := setupTestDB(t)

	_, err := services.AwardPoints(db, "user-1", "bogus_action", "x")
	if err == nil {
		t.Fatal("Expected error for unknown action")
	}

	var count int64
	db.Model(&models.PointTransaction{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no transactions after rejected award, got %d", count)
	}
}

// TestGetUserPointsAbsent tests the zero-state standing
func TestGetUserPointsAbsent(t *testing.T) {
	db := setupTestDB(t)

	standing, err := services.GetUserPoints(db, "nobody")
	if err != nil {
		t.Fatalf("GetUserPoints failed: %v", err)
	}
	if standing.Points != 0 || standing.Level != 1 {
		t.Errorf("Expected 0 points level 1, got %d points level %d", standing.Points, standing.Level)
	}
}

// TestLeaderboard tests ordering, the top-10 window and the tie break
func TestLeaderboard(t *testing.T) {
	db := setupTestDB(t)

	// 12 users with distinct point totals
	for i := 0; i < 12; i++ {
		userID := string(rune('a'+i)) + "-user"
		db.Create(&models.User{ID: userID, Email: userID + "@example.com"})
		db.Create(&models.UserPoints{UserID: userID, Points: int64(100 * (i + 1)), Level: 1})
	}

	entries, err := services.Leaderboard(db)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}

	if len(entries) != 10 {
		t.Fatalf("Expected 10 entries, got %d", len(entries))
	}
	if entries[0].Points != 1200 {
		t.Errorf("Expected top entry with 1200 points, got %d", entries[0].Points)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Points > entries[i-1].Points {
			t.Errorf("Leaderboard not sorted at index %d: %d > %d", i, entries[i].Points, entries[i-1].Points)
		}
	}
	if entries[0].Email != "l-user@example.com" {
		t.Errorf("Expected joined email for top entry, got %q", entries[0].Email)
	}
}

// TestLeaderboardTieBreak tests deterministic ordering for equal totals
func TestLeaderboardTieBreak(t *testing.T) {
	db := setupTestDB(t)

	db.Create(&models.UserPoints{UserID: "bbb", Points: 500, Level: 1})
	db.Create(&models.UserPoints{UserID: "aaa", Points: 500, Level: 1})

	entries, err := services.Leaderboard(db)
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "aaa" || entries[1].UserID != "bbb" {
		t.Errorf("Expected tie broken by user_id ascending, got %s, %s", entries[0].UserID, entries[1].UserID)
	}
}
