package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authority status values for an escalated complaint.
const (
	AuthorityStatusPending    = "pending"
	AuthorityStatusInProgress = "in_progress"
	AuthorityStatusResolved   = "resolved"
)

// Complaint is a community-reported waste issue. The upvotes column is a
// denormalized count of complaint_upvotes rows; the join table is the source
// of truth and the column is refreshed from it in the same transaction.
type Complaint struct {
	ID                string `gorm:"type:char(36);primaryKey"`
	UserID            string `gorm:"type:char(36);not null;index"`
	Title             string `gorm:"size:255;not null"`
	Description       string `gorm:"type:text;not null"`
	Location          string `gorm:"size:255;not null"`
	Status            string `gorm:"size:32;not null;default:open"`
	Upvotes           int    `gorm:"not null;default:0;index"`
	MediaURLs         JSON
	AuthorityNotified bool   `gorm:"not null;default:false"`
	AuthorityStatus   string `gorm:"size:32"`
	AuthorityLocation JSON
	AuthorityUpdates  JSON
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BeforeCreate assigns the complaint ID
func (c *Complaint) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ComplaintUpvote enforces the one-upvote-per-user rule at the data layer:
// at most one row per (complaint_id, user_id) pair.
type ComplaintUpvote struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	ComplaintID string `gorm:"type:char(36);not null;index:idx_complaint_upvote,unique"`
	UserID      string `gorm:"type:char(36);not null;index:idx_complaint_upvote,unique"`
	CreatedAt   time.Time
}

// Event is a community eco event. current_participants mirrors the count of
// event_participants rows and never exceeds max_participants.
type Event struct {
	ID                  string `gorm:"type:char(36);primaryKey"`
	UserID              string `gorm:"type:char(36);not null;index"`
	Title               string `gorm:"size:255;not null"`
	Description         string `gorm:"type:text;not null"`
	Location            string `gorm:"size:255;not null"`
	Date                time.Time
	MaxParticipants     int `gorm:"not null"`
	CurrentParticipants int `gorm:"not null;default:0"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// BeforeCreate assigns the event ID
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

// EventParticipant joins users to the events they attend.
type EventParticipant struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	EventID   string `gorm:"type:char(36);not null;index:idx_event_participant,unique"`
	UserID    string `gorm:"type:char(36);not null;index:idx_event_participant,unique"`
	CreatedAt time.Time
}
