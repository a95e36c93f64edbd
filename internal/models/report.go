package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WasteReport is created on successful classification of an uploaded image.
// Immutable after creation except for deletion by its owner.
type WasteReport struct {
	ID              string  `gorm:"type:char(36);primaryKey"`
	UserID          string  `gorm:"type:char(36);not null;index"`
	ImageURL        string  `gorm:"size:512;not null"`
	ObjectKey       string  `gorm:"size:512;not null"`
	Classification  string  `gorm:"size:64;not null"`
	Confidence      float64 `gorm:"not null"`
	Recommendations JSON
	CarbonFootprint float64 `gorm:"not null"`
	CreatedAt       time.Time
}

// BeforeCreate assigns the report ID
func (r *WasteReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// CarbonFootprintEntry records the deterministic carbon impact of one WasteReport.
type CarbonFootprintEntry struct {
	ID                   uint64 `gorm:"primaryKey;autoIncrement"`
	UserID               string `gorm:"type:char(36);not null;index"`
	WasteReportID        string `gorm:"type:char(36);not null;index"`
	CarbonImpact         float64
	ReductionSuggestions JSON
	CreatedAt            time.Time
}

// TableName overrides the table name for CarbonFootprintEntry
func (CarbonFootprintEntry) TableName() string {
	return "carbon_footprints"
}
