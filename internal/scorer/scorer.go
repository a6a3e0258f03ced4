// Package scorer implements the deterministic rule-based lead scorer.
package scorer

import (
	"fmt"
	"math"

	"github.com/ozleads/lead-engine/internal/config"
	"github.com/ozleads/lead-engine/internal/model"
)

// Recommendation values produced by the scorer.
const (
	RecommendQuote = "quote"
	RecommendAsk   = "ask"
	RecommendSkip  = "skip"
)

// Signal thresholds. Unlike the weights these are part of the scoring
// contract and are not configurable.
const (
	repeatCustomerMinJobs = 3
	goodRatingMin         = 4.5
	detailedDescMinChars  = 100
	vagueDescMaxChars     = 30
	closeDistanceMaxKm    = 5.0
	farDistanceMinKm      = 10.0
)

// Analysis is the scorer's verdict for one job.
type Analysis struct {
	Score               int              `json:"score"`
	ScoreDisplay        string           `json:"score_display"`
	GreenFlags          []string         `json:"green_flags"`
	RedFlags            []string         `json:"red_flags"`
	Recommendation      string           `json:"recommendation"`
	RecommendationText  string           `json:"recommendation_text"`
	SuggestedQuoteRange model.PriceRange `json:"suggested_quote_range"`
}

// Scorer scores jobs against a fixed rubric. It holds no mutable state and
// performs no I/O; a Scorer is safe for concurrent use.
type Scorer struct {
	weights config.ScoringConfig
}

// New creates a Scorer with the given signal weights. Penalty weights are
// magnitudes; the scorer subtracts them.
func New(weights config.ScoringConfig) *Scorer {
	return &Scorer{weights: weights}
}

// Score evaluates a job. Identical input always yields an identical
// Analysis. Missing numeric fields count as absent signals, never errors;
// lead data is partial by nature. The final score is clamped to [1,10].
func (sc *Scorer) Score(job *model.Job) Analysis {
	w := sc.weights
	score := w.Baseline

	var greenFlags []string
	redFlags := append([]string(nil), job.RedFlags...)

	if job.Customer.Verified {
		greenFlags = append(greenFlags, "Verified customer")
		score += w.VerifiedBonus
	}
	switch {
	case job.Customer.JobsPosted >= repeatCustomerMinJobs:
		greenFlags = append(greenFlags, fmt.Sprintf("%d previous jobs", job.Customer.JobsPosted))
		score += w.RepeatBonus
	case job.Customer.JobsPosted == 0:
		redFlags = append(redFlags, "first_time_customer")
		score -= w.FirstTimerPenalty
	}
	if job.Customer.Rating >= goodRatingMin {
		greenFlags = append(greenFlags, fmt.Sprintf("%v rating", job.Customer.Rating))
		score += w.RatingBonus
	}

	if job.HasBudget() {
		greenFlags = append(greenFlags, "Budget: "+job.BudgetDisplay)
		score += w.BudgetBonus
	} else {
		redFlags = append(redFlags, "no_budget")
		score -= w.NoBudgetPenalty
	}

	switch descLen := len(job.Description); {
	case descLen > detailedDescMinChars:
		greenFlags = append(greenFlags, "Detailed description")
		score += w.DetailBonus
	case descLen < vagueDescMaxChars:
		redFlags = append(redFlags, "vague_description")
		score -= w.VaguenessPenalty
	}

	switch job.Intent {
	case model.IntentReadyToHire:
		greenFlags = append(greenFlags, "Ready to hire")
		score += w.IntentBonus
	case model.IntentResearching:
		redFlags = append(redFlags, "researching_only")
		score -= w.ResearchingPenalty
	}

	switch {
	case job.DistanceKm <= closeDistanceMaxKm:
		greenFlags = append(greenFlags, fmt.Sprintf("Close: %vkm", job.DistanceKm))
		score += w.CloseBonus
	case job.DistanceKm > farDistanceMinKm:
		redFlags = append(redFlags, fmt.Sprintf("Far: %vkm", job.DistanceKm))
		score -= w.FarPenalty
	}

	final := int(math.Round(score))
	if final < 1 {
		final = 1
	}
	if final > 10 {
		final = 10
	}

	recommendation, recText := recommend(final)

	return Analysis{
		Score:               final,
		ScoreDisplay:        fmt.Sprintf("%d/10", final),
		GreenFlags:          greenFlags,
		RedFlags:            redFlags,
		Recommendation:      recommendation,
		RecommendationText:  recText,
		SuggestedQuoteRange: suggestedQuoteRange(job.Subcategory, job.Size),
	}
}

// recommend maps a clamped score to the recommendation tri-state.
func recommend(score int) (string, string) {
	switch {
	case score >= 7:
		return RecommendQuote, "Good opportunity - recommend quoting"
	case score < 5:
		return RecommendSkip, "Consider skipping"
	default:
		return RecommendAsk, "Ask more questions before quoting"
	}
}
