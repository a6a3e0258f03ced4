// Package model defines the lead-engine domain types shared across packages.
package model

import "time"

// JobStatus is the lifecycle state of a job lead.
type JobStatus string

const (
	StatusNew            JobStatus = "new"
	StatusContacted      JobStatus = "contacted"
	StatusQuoting        JobStatus = "quoting"
	StatusSiteVisit      JobStatus = "site_visit_scheduled"
	StatusBooked         JobStatus = "booked"
	StatusInProgress     JobStatus = "in_progress"
	StatusComplete       JobStatus = "complete"
	StatusSkipped        JobStatus = "skipped"
	StatusInConversation JobStatus = "in_conversation"
)

// StatusGroups maps a caller-facing filter name to the statuses it covers.
// An empty slice means no filter (all jobs).
var StatusGroups = map[string][]JobStatus{
	"leads":    {StatusNew, StatusContacted},
	"new":      {StatusNew, StatusContacted},
	"quoting":  {StatusQuoting, StatusSiteVisit},
	"booked":   {StatusBooked, StatusInProgress},
	"complete": {StatusComplete},
	"all":      {},
}

// Intent is the customer's declared hiring intent.
type Intent string

const (
	IntentReadyToHire Intent = "ready_to_hire"
	IntentResearching Intent = "researching"
)

// Customer is the lead's posting customer.
type Customer struct {
	Name              string  `json:"name,omitempty"`
	FirstName         string  `json:"first_name,omitempty"`
	Phone             string  `json:"phone,omitempty"`
	Verified          bool    `json:"verified"`
	MemberSince       string  `json:"member_since,omitempty"`
	JobsPosted        int     `json:"jobs_posted"`
	Rating            float64 `json:"rating,omitempty"`
	ContactPreference string  `json:"contact_preference,omitempty"`
}

// Job is a single lead owned by a business. Numeric fields that the source
// marketplace did not supply stay at their zero value; the scorer treats
// them as absent signals rather than errors.
type Job struct {
	JobID         string     `json:"job_id"`
	BusinessID    string     `json:"business_id,omitempty"`
	Name          string     `json:"name,omitempty"`
	Description   string     `json:"description,omitempty"`
	Subcategory   string     `json:"subcategory,omitempty"`
	Size          string     `json:"size,omitempty"`
	Suburb        string     `json:"suburb,omitempty"`
	State         string     `json:"state,omitempty"`
	Postcode      string     `json:"postcode,omitempty"`
	DistanceKm    float64    `json:"distance_km,omitempty"`
	BudgetMin     *float64   `json:"budget_min,omitempty"`
	BudgetMax     *float64   `json:"budget_max,omitempty"`
	BudgetDisplay string     `json:"budget_display,omitempty"`
	Timeline      string     `json:"timeline,omitempty"`
	Urgency       string     `json:"urgency,omitempty"`
	Intent        Intent     `json:"intent,omitempty"`
	LeadScore     *float64   `json:"lead_score,omitempty"`
	Status        JobStatus  `json:"status,omitempty"`
	PostedAgo     string     `json:"posted_ago,omitempty"`
	PostedAt      time.Time  `json:"posted_at,omitzero"`
	Customer      Customer   `json:"customer"`
	RedFlags      []string   `json:"red_flags,omitempty"`
	SkipReason    string     `json:"skip_reason,omitempty"`
	AgentReview   *JobReview `json:"agent_review,omitempty"`
}

// HasBudget reports whether both ends of the budget range are present.
func (j *Job) HasBudget() bool {
	return j.BudgetMin != nil && j.BudgetMax != nil
}
