package review

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/qri-io/jsonschema"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ozleads/lead-engine/internal/model"
)

// defaultLeadScore applies when a job arrives without a pre-calculated
// lead score.
const defaultLeadScore = 50.0

// reviewSchema validates the shape of the model's JSON reply. Validation
// failures are advisory: the parse already succeeded, so the pipeline logs
// the violations and relies on field-level coercion instead of failing.
const reviewSchema = `{
	"type": "object",
	"required": ["recommendation", "reasoning", "draft_message", "notification_summary"],
	"properties": {
		"recommendation": {"type": "string", "enum": ["send", "skip"]},
		"reasoning": {"type": "string"},
		"draft_message": {"type": "string"},
		"notification_summary": {"type": "string"},
		"green_flags": {"type": "array", "items": {"type": "string"}},
		"red_flags": {"type": "array", "items": {"type": "string"}},
		"suggested_price_range": {
			"type": ["object", "null"],
			"properties": {
				"min": {"type": "number"},
				"max": {"type": "number"}
			}
		}
	}
}`

var compiledSchema = jsonschema.Must(reviewSchema)

// rawReview is the wire shape of the model reply. A score field, if the
// model volunteers one, is deliberately absent: the score belongs to the
// deterministic rubric.
type rawReview struct {
	Recommendation      string            `json:"recommendation"`
	Reasoning           string            `json:"reasoning"`
	DraftMessage        string            `json:"draft_message"`
	NotificationSummary string            `json:"notification_summary"`
	GreenFlags          []string          `json:"green_flags"`
	RedFlags            []string          `json:"red_flags"`
	SuggestedPriceRange *model.PriceRange `json:"suggested_price_range"`
}

// parseReview extracts, validates, and parses the JSON object from the
// model's text reply, then composes the final JobReview. The score is
// derived from leadScore alone; an out-of-domain recommendation is coerced
// from the score rather than surfaced as an error.
func parseReview(ctx context.Context, text string, leadScore float64) (*model.JobReview, error) {
	cleaned := cleanJSON(text)
	if cleaned == "" {
		return nil, eris.New("review: empty model reply")
	}

	if errs, err := compiledSchema.ValidateBytes(ctx, []byte(cleaned)); err == nil && len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		zap.L().Warn("review: model reply violates schema",
			zap.Strings("violations", msgs),
		)
	}

	var raw rawReview
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, eris.Wrap(err, "review: parse model reply")
	}

	score := deriveScore(leadScore)

	rec := raw.Recommendation
	if rec != model.RecommendSend && rec != model.RecommendSkip {
		if score >= 5 {
			rec = model.RecommendSend
		} else {
			rec = model.RecommendSkip
		}
	}

	greenFlags := raw.GreenFlags
	if greenFlags == nil {
		greenFlags = []string{}
	}
	redFlags := raw.RedFlags
	if redFlags == nil {
		redFlags = []string{}
	}

	return &model.JobReview{
		Score:               score,
		Recommendation:      rec,
		Reasoning:           raw.Reasoning,
		DraftMessage:        raw.DraftMessage,
		NotificationSummary: raw.NotificationSummary,
		GreenFlags:          greenFlags,
		RedFlags:            redFlags,
		SuggestedPriceRange: raw.SuggestedPriceRange,
	}, nil
}

// deriveScore maps a 0-100 lead score onto the 1-10 review scale.
func deriveScore(leadScore float64) int {
	score := int(math.Round(leadScore / 10))
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

// cleanJSON strips markdown fences and extracts the outermost JSON object.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
