// Package workers runs the background delivery loops for authority
// notifications. Escalations write an outbox row in the escalating
// transaction; the notifier drains the outbox and posts each payload to the
// authority webhook, parking failures in the DLQ for periodic retry.
package workers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/ecosortapp/ecosort/internal/metrics"
	"github.com/ecosortapp/ecosort/internal/models"
	"gorm.io/gorm"
)

const (
	pollInterval   = 5 * time.Second
	retryInterval  = 30 * time.Second
	batchSize      = 50
	deliverTimeout = 10 * time.Second
)

// Notifier delivers authority notifications from the outbox to the webhook.
type Notifier struct {
	DB         *gorm.DB
	WebhookURL string
	HTTP       *http.Client
}

// NewNotifier creates a notifier for the given webhook endpoint.
func NewNotifier(db *gorm.DB, webhookURL string) *Notifier {
	return &Notifier{
		DB:         db,
		WebhookURL: webhookURL,
		HTTP:       &http.Client{Timeout: deliverTimeout},
	}
}

// Run polls the outbox until the context is cancelled.
func (n *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := n.ProcessOnce(ctx); err != nil {
				log.Printf("notifier error: %v", err)
			}
		}
	}
}

// ProcessOnce drains one batch of unprocessed outbox rows. Rows are marked
// processed before delivery is attempted so a crashing webhook cannot wedge
// the loop; failed deliveries land in the DLQ instead.
func (n *Notifier) ProcessOnce(ctx context.Context) error {
	var batch []models.AuthorityNotification
	err := n.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("processed = ?", false).
			Order("id ASC").
			Limit(batchSize).
			Find(&batch).Error; err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		ids := make([]int64, len(batch))
		for i, row := range batch {
			ids[i] = row.ID
		}
		return tx.Model(&models.AuthorityNotification{}).
			Where("id IN ?", ids).
			Update("processed", true).Error
	})
	if err != nil || len(batch) == 0 {
		return err
	}

	for _, row := range batch {
		if err := n.deliver(ctx, row.Payload.JSON); err != nil {
			metrics.NotificationsFailed.Inc()
			n.putDLQ(row, err.Error())
			log.Printf("DLQ notification_id=%d complaint=%s: %v", row.ID, row.ComplaintID, err)
			continue
		}
		metrics.NotificationsDelivered.Inc()
	}

	return nil
}

// deliver posts one payload to the authority webhook.
func (n *Notifier) deliver(ctx context.Context, payload []byte) error {
	if n.WebhookURL == "" {
		return fmt.Errorf("no authority webhook configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func (n *Notifier) putDLQ(row models.AuthorityNotification, reason string) {
	if err := n.DB.Create(&models.NotificationDLQ{
		NotificationID: row.ID,
		ComplaintID:    row.ComplaintID,
		ErrorMsg:       reason,
		Payload:        row.Payload,
	}).Error; err != nil {
		log.Printf("failed to record DLQ for notification %d: %v", row.ID, err)
		return
	}
	metrics.NotificationsDLQ.Inc()
}

// RetryDLQ periodically replays unresolved DLQ rows against the webhook.
func (n *Notifier) RetryDLQ(ctx context.Context) {
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := n.RetryOnce(ctx); err != nil {
				log.Printf("DLQ retry error: %v", err)
			}
		}
	}
}

// RetryOnce replays one batch of unresolved DLQ rows.
func (n *Notifier) RetryOnce(ctx context.Context) error {
	var dlqs []models.NotificationDLQ
	if err := n.DB.Where("resolved = ?", false).Limit(batchSize).Find(&dlqs).Error; err != nil {
		return err
	}

	for _, d := range dlqs {
		log.Printf("Retrying DLQ id=%d complaint=%s", d.ID, d.ComplaintID)
		if err := n.deliver(ctx, d.Payload.JSON); err != nil {
			metrics.NotificationsFailed.Inc()
			continue
		}
		now := time.Now()
		n.DB.Model(&models.NotificationDLQ{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
			"resolved":   true,
			"retried_at": &now,
		})
		metrics.NotificationsDelivered.Inc()
		log.Printf("DLQ id=%d resolved", d.ID)
	}

	return nil
}
