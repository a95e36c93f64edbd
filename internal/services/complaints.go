package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ecosortapp/ecosort/internal/geo"
	"github.com/ecosortapp/ecosort/internal/metrics"
	"github.com/ecosortapp/ecosort/internal/models"
	"github.com/ecosortapp/ecosort/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// escalationThreshold is the upvote count at which a complaint is forwarded
// to the local authority.
const escalationThreshold = 15

// authorityUpdateMessage is appended to the complaint when it is escalated.
const authorityUpdateMessage = "Complaint forwarded to local waste management authority"

// Broadcaster pushes change events to connected realtime clients.
type Broadcaster interface {
	Broadcast(eventType string, data interface{})
}

// ComplaintService manages community complaints, upvotes and authority
// escalation.
type ComplaintService struct {
	DB  *gorm.DB
	Geo geo.Locator
	Hub Broadcaster
}

// ComplaintInput carries the fields a user supplies for a new complaint.
type ComplaintInput struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Location    string                 `json:"location"`
	MediaURLs   types.FlexList[string] `json:"media_urls"`
}

// CreateComplaint validates and persists a new complaint.
func (s *ComplaintService) CreateComplaint(userID string, input ComplaintInput) (*models.Complaint, error) {
	if input.Title == "" || input.Description == "" || input.Location == "" {
		return nil, &types.AppError{
			Code:    fiber.StatusBadRequest,
			Message: "Title, description and location are required",
			Type:    "community.complaint.invalid",
		}
	}

	media := input.MediaURLs.Slice()
	if media == nil {
		media = []string{}
	}
	mediaJSON, err := json.Marshal(media)
	if err != nil {
		return nil, err
	}

	complaint := &models.Complaint{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Status:      "open",
		MediaURLs:   models.JSON{JSON: datatypes.JSON(mediaJSON)},
	}

	if err := s.DB.Create(complaint).Error; err != nil {
		return nil, err
	}

	return complaint, nil
}

// ListComplaints returns all complaints ordered by upvote count descending,
// then newest first.
func (s *ComplaintService) ListComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Order("upvotes DESC, created_at DESC").Find(&complaints).Error
	return complaints, err
}

// GetComplaint fetches one complaint by ID.
func (s *ComplaintService) GetComplaint(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.Where("id = ?", id).First(&complaint).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &complaint, nil
}

// Upvote registers one upvote from the user on the complaint. A user cannot
// upvote their own complaint, nor the same complaint twice. The denormalized
// count is refreshed from the join table inside the same transaction, the
// award for the complaint owner is credited there too, and the new count is
// broadcast to realtime clients. Crossing the escalation threshold triggers
// the authority escalation after commit.
func (s *ComplaintService) Upvote(ctx context.Context, complaintID, userID string) (*models.Complaint, error) {
	complaint, err := s.GetComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	if complaint.UserID == userID {
		metrics.UpvotesRejected.Inc()
		return nil, &types.AppError{
			Code:    fiber.StatusForbidden,
			Message: "You cannot upvote your own complaint",
			Type:    "community.upvote.own",
		}
	}

	var existing int64
	if err := s.DB.Model(&models.ComplaintUpvote{}).
		Where("complaint_id = ? AND user_id = ?", complaintID, userID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		metrics.UpvotesRejected.Inc()
		return nil, &types.AppError{
			Code:    fiber.StatusConflict,
			Message: "You have already upvoted this complaint",
			Type:    "community.upvote.duplicate",
		}
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.ComplaintUpvote{
			ComplaintID: complaintID,
			UserID:      userID,
		}).Error; err != nil {
			return err
		}

		// Recount from the join table, the source of truth for upvotes.
		var count int64
		if err := tx.Model(&models.ComplaintUpvote{}).
			Where("complaint_id = ?", complaintID).
			Count(&count).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Complaint{}).
			Where("id = ?", complaintID).
			Update("upvotes", count).Error; err != nil {
			return err
		}

		complaint.Upvotes = int(count)

		_, err := awardPointsTx(tx, complaint.UserID, ActionComplaintUpvote, complaintID)
		return err
	})
	if err != nil {
		// The unique index backstops the pre-check under concurrency.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.UpvotesRejected.Inc()
			return nil, &types.AppError{
				Code:    fiber.StatusConflict,
				Message: "You have already upvoted this complaint",
				Type:    "community.upvote.duplicate",
			}
		}
		return nil, err
	}

	metrics.PointsAwarded.WithLabelValues(ActionComplaintUpvote).Inc()

	if s.Hub != nil {
		s.Hub.Broadcast("complaint_upvoted", fiber.Map{
			"complaint_id": complaintID,
			"upvotes":      complaint.Upvotes,
		})
	}

	if complaint.Upvotes >= escalationThreshold && !complaint.AuthorityNotified {
		// The upvote is already committed; a failed escalation must not
		// surface as a failed upvote. It can be retried explicitly.
		if err := s.Escalate(ctx, complaintID); err != nil {
			log.Printf("Escalation of complaint %s failed: %v", complaintID, err)
			return complaint, nil
		}
		return s.GetComplaint(complaintID)
	}

	return complaint, nil
}

// Escalate forwards a complaint to the local authority: it stamps the
// complaint with a fresh geolocation fix, appends the authority update and
// enqueues the webhook notification. All writes commit atomically; a failed
// geolocation lookup aborts the escalation and the complaint stays
// unescalated.
func (s *ComplaintService) Escalate(ctx context.Context, complaintID string) error {
	complaint, err := s.GetComplaint(complaintID)
	if err != nil {
		return err
	}

	if complaint.AuthorityNotified {
		return &types.AppError{
			Code:    fiber.StatusConflict,
			Message: "Complaint has already been forwarded to the authority",
			Type:    "community.escalation.duplicate",
		}
	}
	if complaint.Upvotes < escalationThreshold {
		return &types.AppError{
			Code:    fiber.StatusBadRequest,
			Message: fmt.Sprintf("Complaint needs %d upvotes before escalation", escalationThreshold),
			Type:    "community.escalation.threshold",
		}
	}

	pos, err := s.Geo.Lookup(ctx)
	if err != nil {
		return &types.AppError{
			Code:    fiber.StatusServiceUnavailable,
			Message: "Could not determine complaint location",
			Type:    "community.escalation.geolocation",
		}
	}

	posJSON, err := json.Marshal(pos)
	if err != nil {
		return err
	}

	update := fiber.Map{
		"message":   authorityUpdateMessage,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	var updates []fiber.Map
	if len(complaint.AuthorityUpdates.JSON) > 0 {
		if err := json.Unmarshal(complaint.AuthorityUpdates.JSON, &updates); err != nil {
			updates = nil
		}
	}
	updates = append(updates, update)
	updatesJSON, err := json.Marshal(updates)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(fiber.Map{
		"complaint_id": complaint.ID,
		"title":        complaint.Title,
		"description":  complaint.Description,
		"location":     complaint.Location,
		"upvotes":      complaint.Upvotes,
		"position":     pos,
	})
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Complaint{}).
			Where("id = ? AND authority_notified = ?", complaintID, false).
			Updates(map[string]interface{}{
				"authority_notified": true,
				"authority_status":   models.AuthorityStatusPending,
				"authority_location": models.JSON{JSON: datatypes.JSON(posJSON)},
				"authority_updates":  models.JSON{JSON: datatypes.JSON(updatesJSON)},
			}).Error; err != nil {
			return err
		}

		return tx.Create(&models.AuthorityNotification{
			ComplaintID: complaintID,
			Payload:     models.JSON{JSON: datatypes.JSON(payload)},
		}).Error
	})
	if err != nil {
		return err
	}

	metrics.Escalations.Inc()

	if s.Hub != nil {
		s.Hub.Broadcast("complaint_escalated", fiber.Map{
			"complaint_id": complaintID,
		})
	}

	return nil
}

// UpdateAuthorityStatus records the authority's progress on an escalated
// complaint and appends the given update message.
func (s *ComplaintService) UpdateAuthorityStatus(complaintID, status, message string) (*models.Complaint, error) {
	switch status {
	case models.AuthorityStatusPending, models.AuthorityStatusInProgress, models.AuthorityStatusResolved:
	default:
		return nil, &types.AppError{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid authority status",
			Type:    "community.authority.status",
		}
	}

	complaint, err := s.GetComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if !complaint.AuthorityNotified {
		return nil, &types.AppError{
			Code:    fiber.StatusBadRequest,
			Message: "Complaint has not been forwarded to the authority",
			Type:    "community.authority.notified",
		}
	}

	updates := map[string]interface{}{"authority_status": status}
	if message != "" {
		var history []fiber.Map
		if len(complaint.AuthorityUpdates.JSON) > 0 {
			if err := json.Unmarshal(complaint.AuthorityUpdates.JSON, &history); err != nil {
				history = nil
			}
		}
		history = append(history, fiber.Map{
			"message":   message,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		historyJSON, err := json.Marshal(history)
		if err != nil {
			return nil, err
		}
		updates["authority_updates"] = models.JSON{JSON: datatypes.JSON(historyJSON)}
	}
	if status == models.AuthorityStatusResolved {
		updates["status"] = "resolved"
	}

	if err := s.DB.Model(&models.Complaint{}).
		Where("id = ?", complaintID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetComplaint(complaintID)
}
