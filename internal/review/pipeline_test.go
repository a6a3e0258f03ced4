package review

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozleads/lead-engine/internal/config"
	"github.com/ozleads/lead-engine/internal/model"
	"github.com/ozleads/lead-engine/pkg/anthropic"
)

// fakeAI records requests and replays a canned reply per call.
type fakeAI struct {
	mu       sync.Mutex
	requests []anthropic.MessageRequest
	reply    string
	err      error
}

func (f *fakeAI) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.reply}},
		Usage:   anthropic.TokenUsage{InputTokens: 200, OutputTokens: 80},
	}, nil
}

type fakeContext struct {
	bundle string
}

func (f *fakeContext) Load(businessID string) string { return f.bundle }

func testPipeline(ai anthropic.Client, ctxSrc ContextSource) *Pipeline {
	return NewPipeline(ai, ctxSrc,
		config.AnthropicConfig{ReviewModel: "test-model", MaxTokens: 256},
		config.ReviewConfig{TimeoutSecs: 5, RatePerSecond: 1000, RateBurst: 100},
	)
}

func reviewJob() *model.Job {
	score := 82.0
	return &model.Job{
		JobID:       "job-1",
		Name:        "Kitchen repaint",
		Suburb:      "Manly",
		LeadScore:   &score,
		Description: "Repaint kitchen walls and ceiling",
		Customer:    model.Customer{FirstName: "Sarah", Verified: true},
	}
}

func TestReviewJob(t *testing.T) {
	ai := &fakeAI{reply: sampleReply}
	p := testPipeline(ai, &fakeContext{bundle: "## BUSINESS.md\nWe paint houses."})

	got, err := p.ReviewJob(context.Background(), "biz-1", reviewJob())
	require.NoError(t, err)

	assert.Equal(t, 8, got.Score)
	assert.Equal(t, model.RecommendSend, got.Recommendation)

	require.Len(t, ai.requests, 1)
	req := ai.requests[0]
	assert.Equal(t, "test-model", req.Model)
	assert.Equal(t, int64(256), req.MaxTokens)
	assert.Equal(t, systemPrompt, req.System)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "## Business Context")
	assert.Contains(t, req.Messages[0].Content, "We paint houses.")
	assert.Contains(t, req.Messages[0].Content, "## Job to Review")
	assert.Contains(t, req.Messages[0].Content, "Kitchen repaint")
}

func TestReviewJobNoBusinessContext(t *testing.T) {
	ai := &fakeAI{reply: sampleReply}
	p := testPipeline(ai, &fakeContext{})

	_, err := p.ReviewJob(context.Background(), "biz-1", reviewJob())
	require.NoError(t, err)

	require.Len(t, ai.requests, 1)
	require.Len(t, ai.requests[0].Messages, 1)
	assert.Contains(t, ai.requests[0].Messages[0].Content, "(No business context available)")
}

func TestReviewJobDefaultLeadScore(t *testing.T) {
	ai := &fakeAI{reply: sampleReply}
	p := testPipeline(ai, &fakeContext{})

	job := reviewJob()
	job.LeadScore = nil

	got, err := p.ReviewJob(context.Background(), "biz-1", job)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Score)
}

func TestReviewJobGenerationError(t *testing.T) {
	ai := &fakeAI{err: eris.New("upstream unavailable")}
	p := testPipeline(ai, &fakeContext{})

	_, err := p.ReviewJob(context.Background(), "biz-1", reviewJob())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "job-1"))
}

func TestReviewJobCancelledContext(t *testing.T) {
	ai := &fakeAI{reply: sampleReply}
	p := testPipeline(ai, &fakeContext{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ReviewJob(ctx, "biz-1", reviewJob())
	assert.Error(t, err)
}
