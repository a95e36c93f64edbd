package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/ecosortapp/ecosort/internal/carbon"
	"github.com/ecosortapp/ecosort/internal/classifier"
	"github.com/ecosortapp/ecosort/internal/metrics"
	"github.com/ecosortapp/ecosort/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotOwner rejects mutations on records the caller does not own.
var ErrNotOwner = errors.New("not the owner")

// WasteClassifier classifies an image payload.
type WasteClassifier interface {
	ClassifyImage(ctx context.Context, image []byte, mimeType string) (classifier.Result, error)
}

// ReportService runs the waste report pipeline: blob upload, classification,
// carbon accounting, persistence and point award.
type ReportService struct {
	DB         *gorm.DB
	Store      ObjectStore
	Classifier WasteClassifier
}

// CreateReport uploads the image, classifies it, computes the carbon footprint
// and persists the report, footprint entry and point award in one transaction.
// If any step after the upload fails, the uploaded object is removed so no
// orphaned blobs accumulate.
func (s *ReportService) CreateReport(ctx context.Context, userID string, image io.Reader, size int64, filename, contentType string) (*models.WasteReport, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	ext := path.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	objectName := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), ext)

	imageURL, err := s.Store.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	report, err := s.finishReport(ctx, userID, objectName, imageURL, data, contentType)
	if err != nil {
		// Compensate the blob upload so a failed pipeline leaves no orphan.
		if rmErr := s.Store.Remove(ctx, objectName); rmErr != nil {
			log.Printf("Failed to remove orphaned object %s: %v", objectName, rmErr)
		}
		return nil, err
	}

	metrics.ReportsClassified.Inc()
	return report, nil
}

func (s *ReportService) finishReport(ctx context.Context, userID, objectName, imageURL string, data []byte, contentType string) (*models.WasteReport, error) {
	result, err := s.Classifier.ClassifyImage(ctx, data, contentType)
	if err != nil {
		metrics.ClassificationFailures.Inc()
		return nil, err
	}

	footprint := carbon.ForClassification(result.Classification)

	recJSON, err := json.Marshal(result.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recommendations: %w", err)
	}
	sugJSON, err := json.Marshal(footprint.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode suggestions: %w", err)
	}

	report := &models.WasteReport{
		UserID:          userID,
		ImageURL:        imageURL,
		ObjectKey:       objectName,
		Classification:  result.Classification,
		Confidence:      result.Confidence,
		Recommendations: models.JSON{JSON: datatypes.JSON(recJSON)},
		CarbonFootprint: footprint.Impact,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(report).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.CarbonFootprintEntry{
			UserID:               userID,
			WasteReportID:        report.ID,
			CarbonImpact:         footprint.Impact,
			ReductionSuggestions: models.JSON{JSON: datatypes.JSON(sugJSON)},
		}).Error; err != nil {
			return err
		}

		_, err := awardPointsTx(tx, userID, ActionWasteReport, report.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.PointsAwarded.WithLabelValues(ActionWasteReport).Inc()
	return report, nil
}

// ListReports returns the user's waste reports, newest first.
func (s *ReportService) ListReports(userID string) ([]models.WasteReport, error) {
	var reports []models.WasteReport
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// DeleteReport removes a report owned by the caller, including its stored image.
func (s *ReportService) DeleteReport(ctx context.Context, userID, reportID string) error {
	var report models.WasteReport
	if err := s.DB.Where("id = ?", reportID).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if report.UserID != userID {
		return ErrNotOwner
	}

	if err := s.DB.Delete(&models.WasteReport{}, "id = ?", reportID).Error; err != nil {
		return err
	}

	if err := s.Store.Remove(ctx, report.ObjectKey); err != nil {
		log.Printf("Failed to remove object %s for deleted report: %v", report.ObjectKey, err)
	}

	return nil
}

// CarbonStats summarizes a user's carbon footprint entries.
type CarbonStats struct {
	TotalImpact float64           `json:"total_impact"`
	Series      []CarbonDataPoint `json:"series"`
	Suggestions []string          `json:"suggestions"`
}

// CarbonDataPoint is one entry in the impact-over-time series.
type CarbonDataPoint struct {
	Date   time.Time `json:"date"`
	Impact float64   `json:"impact"`
}

// GetCarbonStats aggregates the user's footprint entries in chronological
// order and collects up to 5 unique reduction suggestions.
func (s *ReportService) GetCarbonStats(userID string) (CarbonStats, error) {
	var entries []models.CarbonFootprintEntry
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return CarbonStats{}, err
	}

	stats := CarbonStats{Series: make([]CarbonDataPoint, 0, len(entries)), Suggestions: []string{}}
	seen := make(map[string]struct{})

	for _, entry := range entries {
		stats.TotalImpact += entry.CarbonImpact
		stats.Series = append(stats.Series, CarbonDataPoint{Date: entry.CreatedAt, Impact: entry.CarbonImpact})

		var suggestions []string
		if err := json.Unmarshal(entry.ReductionSuggestions.JSON, &suggestions); err != nil {
			continue
		}
		for _, sug := range suggestions {
			if _, ok := seen[sug]; ok || len(stats.Suggestions) >= 5 {
				continue
			}
			seen[sug] = struct{}{}
			stats.Suggestions = append(stats.Suggestions, sug)
		}
	}

	return stats, nil
}
