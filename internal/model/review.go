package model

// Recommendation values produced by the review pipeline.
const (
	RecommendSend = "send"
	RecommendSkip = "skip"
)

// PriceRange is a suggested price band in whole dollars.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// JobReview is the qualitative review produced once per job by the
// background review pipeline. The score is derived from the job's
// pre-calculated lead score, never from the model output.
type JobReview struct {
	Score               int         `json:"score"`
	Recommendation      string      `json:"recommendation"`
	Reasoning           string      `json:"reasoning"`
	DraftMessage        string      `json:"draft_message"`
	NotificationSummary string      `json:"notification_summary"`
	GreenFlags          []string    `json:"green_flags"`
	RedFlags            []string    `json:"red_flags"`
	SuggestedPriceRange *PriceRange `json:"suggested_price_range"`
}
