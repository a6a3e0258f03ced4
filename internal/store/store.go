// Package store persists jobs and their attached reviews behind a
// driver-agnostic interface with SQLite and Postgres backends.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ozleads/lead-engine/internal/model"
)

// ErrNotFound is returned when a job does not exist.
var ErrNotFound = eris.New("store: job not found")

// Store defines persistence for the lead engine. Attaching a review is
// last-write-wins: a re-review replaces the prior one with no versioning.
type Store interface {
	// Jobs
	UpsertJob(ctx context.Context, businessID string, job *model.Job) error
	GetJob(ctx context.Context, businessID, jobID string) (*model.Job, error)
	ListJobs(ctx context.Context, businessID string, statuses []model.JobStatus) ([]model.Job, error)
	UpdateJobStatus(ctx context.Context, businessID, jobID string, status model.JobStatus) error
	SkipJob(ctx context.Context, businessID, jobID, reason string) error

	// Reviews
	AttachReview(ctx context.Context, businessID, jobID string, review *model.JobReview) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// statusStrings converts a status set for use in queries.
func statusStrings(statuses []model.JobStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
