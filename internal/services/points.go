package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ecosortapp/ecosort/internal/metrics"
	"github.com/ecosortapp/ecosort/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// Point-earning action kinds and their fixed award values.
const (
	ActionWasteReport            = "waste_report"
	ActionEcoEvent               = "eco_event"
	ActionVerifiedImplementation = "verified_implementation"
	ActionComplaintUpvote        = "complaint_upvote"
)

var pointValues = map[string]int{
	ActionWasteReport:            100,
	ActionEcoEvent:               500,
	ActionVerifiedImplementation: 300,
	ActionComplaintUpvote:        50,
}

// Cumulative point thresholds; index+1 is the level the threshold opens.
var levelThresholds = []int64{0, 1000, 2500, 5000, 10000, 20000, 35000, 50000, 75000, 100000}

// MaxLevel is the level cap.
const MaxLevel = 10

// ErrUnknownAction rejects awards for action kinds outside the fixed table.
var ErrUnknownAction = errors.New("unknown point action")

// LevelForPoints derives the level for a cumulative point total: the 1-based
// index of the first threshold strictly greater than the total, clamped to
// MaxLevel. A total of exactly 0 is level 1.
func LevelForPoints(points int64) int {
	for i, threshold := range levelThresholds {
		if points < threshold {
			return i
		}
	}
	return MaxLevel
}

// AwardResult is the user's standing after an award.
type AwardResult struct {
	Points int64 `json:"points"`
	Level  int   `json:"level"`
}

// AwardPoints credits the fixed value for the action kind to the user and
// appends the audit transaction. The increment, level update and transaction
// insert commit atomically; no reader observes one without the other. The
// points column is bumped with a relative UPDATE so concurrent awards for the
// same user cannot lose updates.
func AwardPoints(db *gorm.DB, userID, action, referenceID string) (AwardResult, error) {
	var result AwardResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = awardPointsTx(tx, userID, action, referenceID)
		return err
	})
	if err != nil {
		return AwardResult{}, err
	}

	metrics.PointsAwarded.WithLabelValues(action).Inc()
	return result, nil
}

// awardPointsTx performs the award inside an existing transaction so other
// services can make the credit part of their own atomic unit.
func awardPointsTx(tx *gorm.DB, userID, action, referenceID string) (AwardResult, error) {
	value, ok := pointValues[action]
	if !ok {
		return AwardResult{}, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	now := time.Now().UTC()

	res := tx.Model(&models.UserPoints{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"points":     gorm.Expr("points + ?", value),
			"updated_at": now,
		})
	if res.Error != nil {
		return AwardResult{}, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Create(&models.UserPoints{
			UserID:    userID,
			Points:    int64(value),
			Level:     LevelForPoints(int64(value)),
			UpdatedAt: now,
		}).Error; err != nil {
			return AwardResult{}, err
		}
	}

	var up models.UserPoints
	if err := tx.Where("user_id = ?", userID).First(&up).Error; err != nil {
		return AwardResult{}, err
	}

	level := LevelForPoints(up.Points)
	if up.Level != level {
		if err := tx.Model(&models.UserPoints{}).
			Where("user_id = ?", userID).
			Update("level", level).Error; err != nil {
			return AwardResult{}, err
		}
	}

	if err := tx.Create(&models.PointTransaction{
		UserID: userID,
		Points: value,
		Reason: fmt.Sprintf("%s: %s", action, referenceID),
	}).Error; err != nil {
		return AwardResult{}, err
	}

	return AwardResult{Points: up.Points, Level: level}, nil
}

// LeaderboardEntry is one ranked row joined with display identity.
type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Points int64  `json:"points"`
	Level  int    `json:"level"`
}

// leaderboardSize is the fixed top-N window; there is no pagination beyond it.
const leaderboardSize = 10

// Leaderboard returns the top users by descending point total. Ties break on
// user_id ascending so the order is deterministic across stores.
func Leaderboard(db *gorm.DB) ([]LeaderboardEntry, error) {
	var entries []LeaderboardEntry

	err := db.Model(&models.UserPoints{}).
		Clauses(hints.Comment("select", "leaderboard")).
		Select("user_points.user_id, user_points.points, user_points.level, users.email").
		Joins("LEFT JOIN users ON users.id = user_points.user_id").
		Order("user_points.points DESC, user_points.user_id ASC").
		Limit(leaderboardSize).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// GetUserPoints returns the user's standing; absent record means 0 points, level 1.
func GetUserPoints(db *gorm.DB, userID string) (AwardResult, error) {
	var up models.UserPoints
	err := db.Where("user_id = ?", userID).First(&up).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AwardResult{Points: 0, Level: 1}, nil
		}
		return AwardResult{}, err
	}
	return AwardResult{Points: up.Points, Level: up.Level}, nil
}

// GetPointTransactions lists the user's award history, newest first.
func GetPointTransactions(db *gorm.DB, userID string, limit int) ([]models.PointTransaction, error) {
	var txs []models.PointTransaction
	if limit <= 0 {
		limit = 50
	}
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}
