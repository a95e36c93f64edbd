package models

import "time"

// User is a local projection of the external identity provider's user record.
// It is upserted on first authenticated request and only exists so leaderboard
// and transaction queries can join a display identity.
type User struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPoints holds the cumulative point total and derived level for one user.
// Points are monotonically non-decreasing; level is always derivable from points.
type UserPoints struct {
	UserID    string `gorm:"type:char(36);primaryKey"`
	Points    int64  `gorm:"not null;default:0;index:idx_user_points_points"`
	Level     int    `gorm:"not null;default:1"`
	UpdatedAt time.Time
}

// PointTransaction is an append-only audit record for a single point award.
// Rows are never mutated or deleted.
type PointTransaction struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:char(36);not null;index"`
	Points    int    `gorm:"not null"`
	Reason    string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

// TableName overrides the table name for UserPoints
func (UserPoints) TableName() string {
	return "user_points"
}
