package handlers

import (
	"errors"
	"fmt"

	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/ecosortapp/ecosort/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// CommunityHandler handles complaint and event routes
type CommunityHandler struct {
	Complaints *services.ComplaintService
	Events     *services.EventService
}

// CreateComplaint handles POST /api/complaints
// @Summary File a complaint
// @Description Report a waste issue in the community
// @Tags Community
// @Accept json
// @Produce json
// @Param body body services.ComplaintInput true "Complaint"
// @Success 201 {object} models.Complaint
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /complaints [post]
func (h *CommunityHandler) CreateComplaint(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input services.ComplaintInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "community.complaint.body")
	}

	complaint, err := h.Complaints.CreateComplaint(userID, input)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, complaint, fiber.StatusCreated)
}

// ListComplaints handles GET /api/complaints
// @Summary List complaints
// @Description All complaints ordered by upvotes descending
// @Tags Community
// @Produce json
// @Success 200 {array} models.Complaint
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /complaints [get]
func (h *CommunityHandler) ListComplaints(c *fiber.Ctx) error {
	complaints, err := h.Complaints.ListComplaints()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "community.complaints.list")
	}

	return utils.SuccessResponse(c, complaints, fiber.StatusOK)
}

// UpvoteComplaint handles POST /api/complaints/:id/upvote
// @Summary Upvote a complaint
// @Description Register one upvote; crossing the threshold escalates the complaint
// @Tags Community
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} models.Complaint
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /complaints/{id}/upvote [post]
func (h *CommunityHandler) UpvoteComplaint(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	complaintID := c.Params("id")
	complaint, err := h.Complaints.Upvote(c.Context(), complaintID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Complaint '%s' not found", complaintID))
		}
		return err
	}

	return utils.SuccessResponse(c, complaint, fiber.StatusOK)
}

// EscalateComplaint handles POST /api/complaints/:id/escalate
// @Summary Escalate a complaint
// @Description Forward a complaint that reached the upvote threshold to the local authority
// @Tags Community
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} models.Complaint
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /complaints/{id}/escalate [post]
func (h *CommunityHandler) EscalateComplaint(c *fiber.Ctx) error {
	complaintID := c.Params("id")
	if err := h.Complaints.Escalate(c.Context(), complaintID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Complaint '%s' not found", complaintID))
		}
		return err
	}

	complaint, err := h.Complaints.GetComplaint(complaintID)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, complaint, fiber.StatusOK)
}

type authorityStatusInput struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UpdateAuthorityStatus handles PATCH /api/admin/complaints/:id/authority
// @Summary Update authority status
// @Description Record the authority's progress on an escalated complaint
// @Tags Community
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param body body authorityStatusInput true "Status update"
// @Success 200 {object} models.Complaint
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/complaints/{id}/authority [patch]
func (h *CommunityHandler) UpdateAuthorityStatus(c *fiber.Ctx) error {
	var input authorityStatusInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "community.authority.body")
	}

	complaintID := c.Params("id")
	complaint, err := h.Complaints.UpdateAuthorityStatus(complaintID, input.Status, input.Message)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Complaint '%s' not found", complaintID))
		}
		return err
	}

	return utils.SuccessResponse(c, complaint, fiber.StatusOK)
}

// CreateEvent handles POST /api/events
// @Summary Organize an eco event
// @Description Create a community event; the organizer is credited points
// @Tags Community
// @Accept json
// @Produce json
// @Param body body services.EventInput true "Event"
// @Success 201 {object} models.Event
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /events [post]
func (h *CommunityHandler) CreateEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input services.EventInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "community.event.body")
	}

	event, err := h.Events.CreateEvent(userID, input)
	if err != nil {
		return err
	}

	return utils.SuccessResponse(c, event, fiber.StatusCreated)
}

// ListEvents handles GET /api/events
// @Summary List events
// @Description All events ordered by date ascending
// @Tags Community
// @Produce json
// @Success 200 {array} models.Event
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /events [get]
func (h *CommunityHandler) ListEvents(c *fiber.Ctx) error {
	events, err := h.Events.ListEvents()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "community.events.list")
	}

	return utils.SuccessResponse(c, events, fiber.StatusOK)
}

// JoinEvent handles POST /api/events/:id/join
// @Summary Join an event
// @Description Register as a participant of an upcoming event
// @Tags Community
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.Event
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /events/{id}/join [post]
func (h *CommunityHandler) JoinEvent(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	eventID := c.Params("id")
	event, err := h.Events.JoinEvent(eventID, userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Event '%s' not found", eventID))
		}
		return err
	}

	return utils.SuccessResponse(c, event, fiber.StatusOK)
}
