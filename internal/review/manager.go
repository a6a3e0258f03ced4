package review

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ozleads/lead-engine/internal/model"
)

// Outcome is the terminal result of one background review.
type Outcome struct {
	JobID  string
	Review *model.JobReview
	Err    error
}

// Handle is a future for one in-flight review. Done is closed when the
// review finishes; Outcome is valid only after that. Callers that do not
// care may simply drop the handle — the review runs regardless, and there
// is no way to cancel it once started.
type Handle struct {
	JobID string
	done  chan struct{}

	outcome Outcome
}

// Done returns a channel closed when the review completes or fails.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the review finishes and returns its outcome.
func (h *Handle) Wait() Outcome {
	<-h.done
	return h.outcome
}

// OnComplete receives the terminal outcome of a background review. It is
// where callers persist the review and dispatch notifications; errors from
// those side effects stay with the caller.
type OnComplete func(Outcome)

// Manager launches fire-and-forget reviews. Each review runs in its own
// goroutine detached from the triggering request; one review's failure
// never touches another's. Close waits for in-flight reviews to drain.
type Manager struct {
	pipeline *Pipeline
	wg       sync.WaitGroup
}

// NewManager creates a Manager over the given pipeline.
func NewManager(pipeline *Pipeline) *Manager {
	return &Manager{pipeline: pipeline}
}

// ReviewAsync starts a background review and returns its handle
// immediately. The review detaches from the caller's context: ingestion
// returning must not abort it, so it runs under context.Background()
// bounded only by the pipeline timeout. onComplete, if non-nil, runs in
// the review goroutine after the outcome is recorded.
func (m *Manager) ReviewAsync(businessID string, job *model.Job, onComplete OnComplete) *Handle {
	h := &Handle{JobID: job.JobID, done: make(chan struct{})}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer close(h.done)

		review, err := m.pipeline.ReviewJob(context.Background(), businessID, job)
		h.outcome = Outcome{JobID: job.JobID, Review: review, Err: err}
		if err != nil {
			zap.L().Error("review: background review failed",
				zap.String("job_id", job.JobID),
				zap.Error(err),
			)
		}

		if onComplete != nil {
			onComplete(h.outcome)
		}
	}()

	return h
}

// Close waits for all in-flight reviews to finish. New reviews started
// during the wait are also drained.
func (m *Manager) Close() {
	m.wg.Wait()
}
