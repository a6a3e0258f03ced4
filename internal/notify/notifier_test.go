package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozleads/lead-engine/internal/config"
	"github.com/ozleads/lead-engine/internal/model"
)

func TestJobReviewedUsesSummary(t *testing.T) {
	var got Notification
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(config.NotifyConfig{WebhookURL: srv.URL})
	job := &model.Job{JobID: "job-1", Name: "Kitchen repaint", Suburb: "Manly"}
	review := &model.JobReview{NotificationSummary: "Kitchen repaint in Manly, verified customer"}

	sent := n.JobReviewed(context.Background(), "biz-1", job, review)
	assert.True(t, sent)
	assert.Equal(t, "biz-1", got.BusinessID)
	assert.Equal(t, "job-1", got.JobID)
	assert.Equal(t, "Kitchen repaint in Manly, verified customer", got.Body)
}

func TestJobReviewedFailuresAreSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewNotifier(config.NotifyConfig{WebhookURL: srv.URL})
	sent := n.JobReviewed(context.Background(), "biz-1", &model.Job{JobID: "job-1"}, nil)
	assert.False(t, sent)
}

func TestJobReviewedNoWebhookConfigured(t *testing.T) {
	n := NewNotifier(config.NotifyConfig{})
	sent := n.JobReviewed(context.Background(), "biz-1", &model.Job{JobID: "job-1"}, nil)
	assert.False(t, sent)
}

func TestNotificationBodyFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		job    *model.Job
		review *model.JobReview
		want   string
	}{
		{
			"summary preferred",
			&model.Job{Name: "Deck restain", Suburb: "Dee Why"},
			&model.JobReview{NotificationSummary: "Deck restain in Dee Why, ASAP"},
			"Deck restain in Dee Why, ASAP",
		},
		{
			"name and suburb fallback",
			&model.Job{Name: "Deck restain", Suburb: "Dee Why"},
			&model.JobReview{},
			"Deck restain in Dee Why",
		},
		{
			"nil review",
			&model.Job{Name: "Deck restain", Suburb: "Dee Why"},
			nil,
			"Deck restain in Dee Why",
		},
		{
			"missing name",
			&model.Job{Suburb: "Dee Why"},
			nil,
			"New job in Dee Why",
		},
		{
			"missing suburb",
			&model.Job{Name: "Deck restain"},
			nil,
			"Deck restain in your area",
		},
		{
			"missing everything",
			&model.Job{},
			nil,
			"New job in your area",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notificationBody(tt.job, tt.review))
		})
	}
}
