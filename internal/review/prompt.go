package review

import (
	"fmt"
	"strings"

	"github.com/ozleads/lead-engine/internal/model"
)

// systemPrompt is the fixed review rubric. The model never owns the score;
// it supplies the qualitative fields only.
const systemPrompt = `You are a trade assistant reviewing a job lead for a tradie. You will be given:
1. Business context (who the tradie is, what they do, their preferences, their rates)
2. Job details including a pre-calculated lead_score (0-100) based on lead strength

The lead_score is already calculated. Your job is to:
- Analyze the fit for THIS specific tradie
- Write a personalized intro message that includes a natural price indication
- Write a short notification summary for the phone lock screen
- Identify green/red flags
- Suggest a price range if possible

Respond with ONLY valid JSON matching this schema:
{
  "recommendation": "send" | "skip",
  "reasoning": "<1-2 sentence explanation of why this is/isn't a good fit for this tradie>",
  "draft_message": "<2-3 sentence intro message to the customer, in first person as the tradie. If the tradie's rates are in the business context, include them naturally. If no rates are available, leave a placeholder like '[your rate]' so the tradie can fill it in before sending.>",
  "notification_summary": "<Single sentence for phone notification, e.g. 'Painting a 3-bed interior in Mosman, needs it done ASAP'>",
  "green_flags": ["<positive signals>"],
  "red_flags": ["<concerns>"],
  "suggested_price_range": { "min": <number>, "max": <number> } or null
}

Recommendation guide:
- "send" if lead_score >= 60 AND fits the tradie's trade/area/preferences
- "skip" if lead_score < 50 OR significant red flags OR poor fit

The draft_message should be warm, professional, and mention something specific about the job. If the tradie's rates are in the business context, weave them in naturally. If no rates are available, include a placeholder like '[your rate/hr]' so the tradie fills it in. Keep it concise — tradies don't write essays.

The notification_summary is what appears on the phone lock screen. Keep it to one short sentence that captures: what the job is, where, and urgency. No greeting, no fluff.

For price range, estimate based on the job description and size. If insufficient info, use null.`

// buildJobSummary renders the job as structured key-value text for the
// model. Unknown fields get explicit placeholders rather than being
// omitted, so the model sees the same shape for every job.
func buildJobSummary(job *model.Job, leadScore float64) string {
	lines := []string{
		"Job ID: " + job.JobID,
		"Title: " + orDefault(job.Name, "Untitled"),
		"Subcategory: " + orDefault(job.Subcategory, "Unknown"),
		"Size: " + orDefault(job.Size, "Unknown"),
		"Description: " + orDefault(job.Description, "No description"),
		fmt.Sprintf("Location: %s, %s %s", orDefault(job.Suburb, "Unknown"), job.State, job.Postcode),
		fmt.Sprintf("Distance: %vkm", job.DistanceKm),
		"Budget: " + orDefault(job.BudgetDisplay, "Not specified"),
		"Timeline: " + orDefault(job.Timeline, "Flexible"),
		"Urgency: " + orDefault(job.Urgency, "normal"),
		"Intent: " + orDefault(string(job.Intent), "unknown"),
		fmt.Sprintf("Lead Score: %v/100 (pre-calculated based on lead strength)", leadScore),
		"Customer: " + orDefault(job.Customer.Name, "Unknown"),
		"Customer Verified: " + yesNo(job.Customer.Verified),
		fmt.Sprintf("Jobs Posted: %d", job.Customer.JobsPosted),
		"Customer Rating: " + ratingDisplay(job.Customer.Rating),
		"Contact Preference: " + orDefault(job.Customer.ContactPreference, "any"),
		"Posted: " + orDefault(job.PostedAgo, "Unknown"),
	}
	return strings.Join(lines, "\n")
}

// buildUserMessage combines the opaque business context with the job
// summary.
func buildUserMessage(businessContext, jobSummary string) string {
	if businessContext == "" {
		businessContext = "(No business context available)"
	}
	return "## Business Context\n" + businessContext + "\n\n## Job to Review\n" + jobSummary
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func ratingDisplay(rating float64) string {
	if rating == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%v", rating)
}
