package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ecosortapp/ecosort/internal/geo"
	"github.com/ecosortapp/ecosort/internal/models"
	"github.com/ecosortapp/ecosort/internal/services"
	"github.com/ecosortapp/ecosort/internal/types"
	"gorm.io/gorm"
)

type stubLocator struct {
	pos geo.Position
	err error
}

func (s *stubLocator) Lookup(ctx context.Context) (geo.Position, error) {
	return s.pos, s.err
}

type recordingHub struct {
	events []string
}

func (r *recordingHub) Broadcast(eventType string, data interface{}) {
	r.events = append(r.events, eventType)
}

func newComplaintService(t *testing.T, loc geo.Locator) (*services.ComplaintService, *recordingHub) {
	hub := &recordingHub{}
	return &services.ComplaintService{
		DB:  setupTestDB(t),
		Geo: loc,
		Hub: hub,
	}, hub
}

// TestCreateComplaint tests creation and required-field validation
func TestCreateComplaint(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{})

	complaint, err := svc.CreateComplaint("user-1", services.ComplaintInput{
		Title:       "Overflowing bin",
		Description: "Bin on 5th street has not been emptied",
		Location:    "5th street",
	})
	if err != nil {
		t.Fatalf("CreateComplaint failed: %v", err)
	}
	if complaint.ID == "" {
		t.Error("Expected complaint ID to be assigned")
	}
	if complaint.Status != "open" {
		t.Errorf("Expected status open, got %q", complaint.Status)
	}
	if complaint.Upvotes != 0 {
		t.Errorf("Expected 0 upvotes, got %d", complaint.Upvotes)
	}

	_, err = svc.CreateComplaint("user-1", services.ComplaintInput{Title: "no description"})
	if err == nil {
		t.Error("Expected validation error for missing fields")
	}
}

// TestUpvoteOwnComplaint tests that the reporter cannot upvote themselves
func TestUpvoteOwnComplaint(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{})

	complaint, err := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})
	if err != nil {
		t.Fatalf("CreateComplaint failed: %v", err)
	}

	_, err = svc.Upvote(context.Background(), complaint.ID, "owner")
	if err == nil {
		t.Fatal("Expected rejection of own-complaint upvote")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Type != "community.upvote.own" {
		t.Errorf("Expected community.upvote.own error, got %v", err)
	}
}

// TestUpvoteDuplicate tests one-upvote-per-user enforcement
func TestUpvoteDuplicate(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})

	if _, err := svc.Upvote(context.Background(), complaint.ID, "voter"); err != nil {
		t.Fatalf("First upvote failed: %v", err)
	}

	_, err := svc.Upvote(context.Background(), complaint.ID, "voter")
	if err == nil {
		t.Fatal("Expected duplicate upvote rejection")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Type != "community.upvote.duplicate" {
		t.Errorf("Expected community.upvote.duplicate error, got %v", err)
	}

	got, _ := svc.GetComplaint(complaint.ID)
	if got.Upvotes != 1 {
		t.Errorf("Expected 1 upvote after duplicate rejection, got %d", got.Upvotes)
	}
}

// TestUpvoteCountAndAward tests the refreshed count, broadcast and owner credit
func TestUpvoteCountAndAward(t *testing.T) {
	svc, hub := newComplaintService(t, &stubLocator{})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})

	for i := 0; i < 3; i++ {
		voter := fmt.Sprintf("voter-%d", i)
		updated, err := svc.Upvote(context.Background(), complaint.ID, voter)
		if err != nil {
			t.Fatalf("Upvote %d failed: %v", i, err)
		}
		if updated.Upvotes != i+1 {
			t.Errorf("Expected %d upvotes, got %d", i+1, updated.Upvotes)
		}
	}

	// The join table is the source of truth for the denormalized count
	var joinCount int64
	svc.DB.Model(&models.ComplaintUpvote{}).Where("complaint_id = ?", complaint.ID).Count(&joinCount)
	if joinCount != 3 {
		t.Errorf("Expected 3 join rows, got %d", joinCount)
	}

	// Each upvote credits the complaint owner
	standing, err := services.GetUserPoints(svc.DB, "owner")
	if err != nil {
		t.Fatalf("GetUserPoints failed: %v", err)
	}
	if standing.Points != 150 {
		t.Errorf("Expected 150 points for owner, got %d", standing.Points)
	}

	if len(hub.events) != 3 {
		t.Errorf("Expected 3 broadcast events, got %d", len(hub.events))
	}
}

// seedUpvotes inserts join rows and syncs the denormalized count.
func seedUpvotes(t *testing.T, svc *services.ComplaintService, complaintID string, n int) {
	for i := 0; i < n; i++ {
		if err := svc.DB.Create(&models.ComplaintUpvote{
			ComplaintID: complaintID,
			UserID:      fmt.Sprintf("seed-voter-%d", i),
		}).Error; err != nil {
			t.Fatalf("Failed to seed upvote: %v", err)
		}
	}
	if err := svc.DB.Model(&models.Complaint{}).
		Where("id = ?", complaintID).
		Update("upvotes", n).Error; err != nil {
		t.Fatalf("Failed to sync upvote count: %v", err)
	}
}

// TestUpvoteTriggersEscalation tests that the threshold upvote escalates
func TestUpvoteTriggersEscalation(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{
		pos: geo.Position{Latitude: 12.97, Longitude: 77.59, Accuracy: 10},
	})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})
	seedUpvotes(t, svc, complaint.ID, 14)

	updated, err := svc.Upvote(context.Background(), complaint.ID, "threshold-voter")
	if err != nil {
		t.Fatalf("Threshold upvote failed: %v", err)
	}

	if updated.Upvotes != 15 {
		t.Errorf("Expected 15 upvotes, got %d", updated.Upvotes)
	}
	if !updated.AuthorityNotified {
		t.Error("Expected complaint to be authority notified at 15 upvotes")
	}
	if updated.AuthorityStatus != models.AuthorityStatusPending {
		t.Errorf("Expected authority status pending, got %q", updated.AuthorityStatus)
	}
	if len(updated.AuthorityLocation.JSON) == 0 {
		t.Error("Expected authority location to be stamped")
	}

	var outbox []models.AuthorityNotification
	svc.DB.Where("complaint_id = ?", complaint.ID).Find(&outbox)
	if len(outbox) != 1 {
		t.Fatalf("Expected 1 outbox row, got %d", len(outbox))
	}
	if outbox[0].Processed {
		t.Error("Expected outbox row to start unprocessed")
	}
}

// TestThresholdUpvoteSurvivesGeoFailure tests that a failed auto-escalation
// does not turn a committed upvote into an error
func TestThresholdUpvoteSurvivesGeoFailure(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{err: geo.ErrUnavailable})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})
	seedUpvotes(t, svc, complaint.ID, 14)

	updated, err := svc.Upvote(context.Background(), complaint.ID, "threshold-voter")
	if err != nil {
		t.Fatalf("Threshold upvote failed: %v", err)
	}
	if updated.Upvotes != 15 {
		t.Errorf("Expected 15 upvotes, got %d", updated.Upvotes)
	}

	// The upvote and owner credit stay committed; the complaint itself is
	// left unescalated and can be escalated explicitly later.
	var joinCount int64
	svc.DB.Model(&models.ComplaintUpvote{}).Where("complaint_id = ?", complaint.ID).Count(&joinCount)
	if joinCount != 15 {
		t.Errorf("Expected 15 join rows, got %d", joinCount)
	}
	standing, _ := services.GetUserPoints(svc.DB, "owner")
	if standing.Points != 50 {
		t.Errorf("Expected 50 points for owner, got %d", standing.Points)
	}

	got, _ := svc.GetComplaint(complaint.ID)
	if got.AuthorityNotified {
		t.Error("Expected complaint to stay unescalated after geo failure")
	}
	var outboxCount int64
	svc.DB.Model(&models.AuthorityNotification{}).Count(&outboxCount)
	if outboxCount != 0 {
		t.Errorf("Expected no outbox rows, got %d", outboxCount)
	}
}

// TestDuplicateUpvoteRowTranslated tests that the unique index violation
// surfaces as gorm.ErrDuplicatedKey, the backstop behind the pre-check
func TestDuplicateUpvoteRowTranslated(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})

	row := models.ComplaintUpvote{ComplaintID: complaint.ID, UserID: "voter"}
	if err := svc.DB.Create(&row).Error; err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	dup := models.ComplaintUpvote{ComplaintID: complaint.ID, UserID: "voter"}
	err := svc.DB.Create(&dup).Error
	if err == nil {
		t.Fatal("Expected unique index violation")
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Errorf("Expected gorm.ErrDuplicatedKey, got %v", err)
	}
}

// TestEscalationBelowThreshold tests the gate on upvote count
func TestEscalationBelowThreshold(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})
	seedUpvotes(t, svc, complaint.ID, 5)

	err := svc.Escalate(context.Background(), complaint.ID)
	if err == nil {
		t.Fatal("Expected escalation rejection below threshold")
	}
	var appErr *types.AppError
	if !errors.As(err, &appErr) || appErr.Type != "community.escalation.threshold" {
		t.Errorf("Expected community.escalation.threshold error, got %v", err)
	}
}

// TestEscalationGeoFailureAborts tests that a failed lookup leaves no partial state
func TestEscalationGeoFailureAborts(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{err: geo.ErrUnavailable})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})
	seedUpvotes(t, svc, complaint.ID, 15)

	err := svc.Escalate(context.Background(), complaint.ID)
	if err == nil {
		t.Fatal("Expected escalation to fail without geolocation")
	}

	got, _ := svc.GetComplaint(complaint.ID)
	if got.AuthorityNotified {
		t.Error("Expected complaint to stay unescalated after geo failure")
	}

	var outboxCount int64
	svc.DB.Model(&models.AuthorityNotification{}).Count(&outboxCount)
	if outboxCount != 0 {
		t.Errorf("Expected no outbox rows after aborted escalation, got %d", outboxCount)
	}
}

// TestEscalateTwice tests that escalation is one-shot
func TestEscalateTwice(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{
		pos: geo.Position{Latitude: 1, Longitude: 2},
	})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})
	seedUpvotes(t, svc, complaint.ID, 15)

	if err := svc.Escalate(context.Background(), complaint.ID); err != nil {
		t.Fatalf("First escalation failed: %v", err)
	}
	err := svc.Escalate(context.Background(), complaint.ID)
	if err == nil {
		t.Fatal("Expected duplicate escalation rejection")
	}

	var outboxCount int64
	svc.DB.Model(&models.AuthorityNotification{}).Count(&outboxCount)
	if outboxCount != 1 {
		t.Errorf("Expected exactly 1 outbox row, got %d", outboxCount)
	}
}

// TestUpdateAuthorityStatus tests the admin progress updates
func TestUpdateAuthorityStatus(t *testing.T) {
	svc, _ := newComplaintService(t, &stubLocator{pos: geo.Position{Latitude: 1}})

	complaint, _ := svc.CreateComplaint("owner", services.ComplaintInput{
		Title: "t", Description: "d", Location: "l",
	})
	seedUpvotes(t, svc, complaint.ID, 15)
	if err := svc.Escalate(context.Background(), complaint.ID); err != nil {
		t.Fatalf("Escalation failed: %v", err)
	}

	updated, err := svc.UpdateAuthorityStatus(complaint.ID, models.AuthorityStatusResolved, "Cleaned up")
	if err != nil {
		t.Fatalf("UpdateAuthorityStatus failed: %v", err)
	}
	if updated.AuthorityStatus != models.AuthorityStatusResolved {
		t.Errorf("Expected resolved authority status, got %q", updated.AuthorityStatus)
	}
	if updated.Status != "resolved" {
		t.Errorf("Expected complaint status resolved, got %q", updated.Status)
	}

	if _, err := svc.UpdateAuthorityStatus(complaint.ID, "bogus", ""); err == nil {
		t.Error("Expected rejection of unknown authority status")
	}
}
