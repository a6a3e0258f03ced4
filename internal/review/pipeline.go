// Package review implements the background LLM-assisted job review
// pipeline. It augments the deterministic lead score with a qualitative
// review without ever blocking, or failing, the lead-ingestion path that
// triggers it.
package review

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/ozleads/lead-engine/internal/config"
	"github.com/ozleads/lead-engine/internal/model"
	"github.com/ozleads/lead-engine/pkg/anthropic"
)

// ContextSource supplies the opaque business-context bundle.
type ContextSource interface {
	Load(businessID string) string
}

// Pipeline issues one generation call per job and composes the resulting
// JobReview. Concurrent reviews share no mutable state.
type Pipeline struct {
	ai      anthropic.Client
	ctxSrc  ContextSource
	model   string
	tokens  int64
	timeout time.Duration
	limiter *rate.Limiter
}

// NewPipeline creates a Pipeline. The rate limiter bounds outbound calls
// so a burst of incoming leads cannot stampede the generation service.
func NewPipeline(ai anthropic.Client, ctxSrc ContextSource, aiCfg config.AnthropicConfig, cfg config.ReviewConfig) *Pipeline {
	maxTokens := aiCfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	perSecond := cfg.RatePerSecond
	if perSecond <= 0 {
		perSecond = 2
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}
	return &Pipeline{
		ai:      ai,
		ctxSrc:  ctxSrc,
		model:   aiCfg.ReviewModel,
		tokens:  maxTokens,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// ReviewJob runs one review synchronously: build the summary, call the
// generation service once, parse and compose the JobReview. The returned
// review's score always derives from the job's lead score; any score the
// model volunteers is discarded. There is no retry — a failed review is
// re-triggered manually if at all.
func (p *Pipeline) ReviewJob(ctx context.Context, businessID string, job *model.Job) (*model.JobReview, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "review: rate limit wait")
	}

	leadScore := defaultLeadScore
	if job.LeadScore != nil {
		leadScore = *job.LeadScore
	}

	businessContext := p.ctxSrc.Load(businessID)
	userMessage := buildUserMessage(businessContext, buildJobSummary(job, leadScore))

	start := time.Now()
	resp, err := p.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: p.tokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return nil, eris.Wrapf(err, "review: generation call for job %s", job.JobID)
	}

	review, err := parseReview(ctx, resp.Text(), leadScore)
	if err != nil {
		return nil, err
	}

	zap.L().Info("review: job reviewed",
		zap.String("job_id", job.JobID),
		zap.Int("score", review.Score),
		zap.String("recommendation", review.Recommendation),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
		zap.Duration("elapsed", time.Since(start)),
	)
	return review, nil
}
