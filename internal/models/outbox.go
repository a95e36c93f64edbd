package models

import "time"

// AuthorityNotification is an outbox row written in the same transaction as a
// complaint escalation. A background worker delivers unprocessed rows to the
// authority webhook.
type AuthorityNotification struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ComplaintID string `gorm:"type:char(36);not null;index"`
	Payload     JSON
	Processed   bool `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
}

// NotificationDLQ holds authority notifications that failed delivery. Rows are
// retried until resolved.
type NotificationDLQ struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	NotificationID int64  `gorm:"index"`
	ComplaintID    string `gorm:"type:char(36)"`
	ErrorMsg       string `gorm:"type:text"`
	Payload        JSON
	CreatedAt      time.Time
	RetriedAt      *time.Time
	Resolved       bool `gorm:"not null;default:false;index"`
}

// TableName overrides the table name for NotificationDLQ
func (NotificationDLQ) TableName() string {
	return "notification_dlq"
}
