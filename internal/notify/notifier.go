// Package notify delivers push notifications about reviewed jobs to a
// configured webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ozleads/lead-engine/internal/config"
	"github.com/ozleads/lead-engine/internal/model"
)

// Notification is the webhook payload for one reviewed job.
type Notification struct {
	BusinessID string    `json:"business_id"`
	JobID      string    `json:"job_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Timestamp  time.Time `json:"timestamp"`
}

// Notifier posts job notifications to a webhook URL. Delivery is best
// effort: failures are logged and never propagated, so a dead webhook
// cannot stall job ingestion or review.
type Notifier struct {
	cfg    config.NotifyConfig
	client *http.Client
}

// NewNotifier creates a Notifier with the given config.
func NewNotifier(cfg config.NotifyConfig) *Notifier {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Notifier{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// JobReviewed sends a notification for a completed review. Returns true
// if the notification was delivered.
func (n *Notifier) JobReviewed(ctx context.Context, businessID string, job *model.Job, review *model.JobReview) bool {
	if n.cfg.WebhookURL == "" {
		return false
	}

	notif := Notification{
		BusinessID: businessID,
		JobID:      job.JobID,
		Title:      "New job lead",
		Body:       notificationBody(job, review),
		Timestamp:  time.Now().UTC(),
	}

	if err := n.sendWebhook(ctx, notif); err != nil {
		zap.L().Error("notify: failed to send notification",
			zap.String("job_id", job.JobID),
			zap.Error(err),
		)
		return false
	}
	zap.L().Info("notify: notification sent",
		zap.String("job_id", job.JobID),
	)
	return true
}

// notificationBody prefers the review's one-line summary and falls back
// to "<job name> in <suburb>" when the review produced none.
func notificationBody(job *model.Job, review *model.JobReview) string {
	if review != nil && review.NotificationSummary != "" {
		return review.NotificationSummary
	}

	name := job.Name
	if name == "" {
		name = "New job"
	}
	suburb := job.Suburb
	if suburb == "" {
		suburb = "your area"
	}
	return fmt.Sprintf("%s in %s", name, suburb)
}

// sendWebhook posts a single notification to the webhook URL.
func (n *Notifier) sendWebhook(ctx context.Context, notif Notification) error {
	payload, err := json.Marshal(notif)
	if err != nil {
		return eris.Wrap(err, "notify: marshal notification")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "notify: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "notify: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("notify: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
