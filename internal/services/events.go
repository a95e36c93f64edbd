package services

import (
	"time"

	"github.com/ecosortapp/ecosort/internal/metrics"
	"github.com/ecosortapp/ecosort/internal/models"
	"github.com/ecosortapp/ecosort/internal/types"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EventService manages community eco events and participation.
type EventService struct {
	DB  *gorm.DB
	Hub Broadcaster
}

// EventInput carries the fields a user supplies for a new event.
type EventInput struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Location        string           `json:"location"`
	Date            time.Time        `json:"date"`
	MaxParticipants types.FlexUint64 `json:"max_participants"`
}

// CreateEvent validates and persists a new event and credits the organizer.
// The event date must be in the future and the capacity at least 1.
func (s *EventService) CreateEvent(userID string, input EventInput) (*models.Event, error) {
	if input.Title == "" || input.Description == "" || input.Location == "" {
		return nil, &types.AppError{
			Code:    fiber.StatusBadRequest,
			Message: "Title, description and location are required",
			Type:    "community.event.invalid",
		}
	}
	if !input.Date.After(time.Now()) {
		return nil, &types.AppError{
			Code:    fiber.StatusBadRequest,
			Message: "Event date must be in the future",
			Type:    "community.event.date",
		}
	}
	if input.MaxParticipants < 1 {
		return nil, &types.AppError{
			Code:    fiber.StatusBadRequest,
			Message: "Event capacity must be at least 1",
			Type:    "community.event.capacity",
		}
	}

	event := &models.Event{
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		Location:        input.Location,
		Date:            input.Date,
		MaxParticipants: int(input.MaxParticipants),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		_, err := awardPointsTx(tx, userID, ActionEcoEvent, event.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.PointsAwarded.WithLabelValues(ActionEcoEvent).Inc()

	if s.Hub != nil {
		s.Hub.Broadcast("event_created", fiber.Map{"event_id": event.ID})
	}

	return event, nil
}

// ListEvents returns all events ordered by date ascending.
func (s *EventService) ListEvents() ([]models.Event, error) {
	var events []models.Event
	err := s.DB.Order("date ASC").Find(&events).Error
	return events, err
}

// JoinEvent registers the user as a participant. Organizers cannot join their
// own event; full or past events and duplicate joins are rejected. The
// participant count is refreshed from the join table in the same transaction.
func (s *EventService) JoinEvent(eventID, userID string) (*models.Event, error) {
	var event models.Event
	if err := s.DB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if event.UserID == userID {
		return nil, &types.AppError{
			Code:    fiber.StatusForbidden,
			Message: "You cannot join your own event",
			Type:    "community.event.own",
		}
	}
	if !event.Date.After(time.Now()) {
		return nil, &types.AppError{
			Code:    fiber.StatusBadRequest,
			Message: "This event has already taken place",
			Type:    "community.event.past",
		}
	}
	if event.CurrentParticipants >= event.MaxParticipants {
		return nil, &types.AppError{
			Code:    fiber.StatusConflict,
			Message: "This event is full",
			Type:    "community.event.full",
		}
	}

	var existing int64
	if err := s.DB.Model(&models.EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, &types.AppError{
			Code:    fiber.StatusConflict,
			Message: "You have already joined this event",
			Type:    "community.event.duplicate",
		}
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.EventParticipant{
			EventID: eventID,
			UserID:  userID,
		}).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.EventParticipant{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}

		event.CurrentParticipants = int(count)

		return tx.Model(&models.Event{}).
			Where("id = ?", eventID).
			Update("current_participants", count).Error
	})
	if err != nil {
		return nil, err
	}

	if s.Hub != nil {
		s.Hub.Broadcast("event_joined", fiber.Map{
			"event_id":             eventID,
			"current_participants": event.CurrentParticipants,
		})
	}

	return &event, nil
}
