package domain

import "context"

// RiskSeverity is the severity of a single finding and the overall level of an analysis.
type RiskSeverity string

const (
	RiskSeverityLow    RiskSeverity = "low"
	RiskSeverityMedium RiskSeverity = "medium"
	RiskSeverityHigh   RiskSeverity = "high"
)

// Risk finding types (stable identifiers consumed by the dashboard).
const (
	RiskTypeLowRSVP          = "low_rsvp"
	RiskTypeOverdueTasks     = "overdue_tasks"
	RiskTypeTasksDueSoon     = "tasks_due_soon"
	RiskTypeLowCompletion    = "low_completion"
	RiskTypeEventApproaching = "event_approaching"
	RiskTypeUnassignedTasks  = "unassigned_tasks"
)

// RiskFinding is one rule's result: what is wrong, how bad it is, and what to
// do about it. Data carries structured details for UI consumption.
// swagger:model RiskFinding
type RiskFinding struct {
	Type       string         `json:"type"`
	Severity   RiskSeverity   `json:"severity"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion"`
	Data       map[string]any `json:"data,omitempty"`
}

// RiskSummary counts findings by severity.
// swagger:model RiskSummary
type RiskSummary struct {
	TotalRisks  int `json:"totalRisks"`
	HighRisks   int `json:"highRisks"`
	MediumRisks int `json:"mediumRisks"`
	LowRisks    int `json:"lowRisks"`
}

// RiskAnalysisResult is the full single-event analysis. Findings are ordered by
// rule evaluation order; the score is the severity-weighted sum
// (high 3, medium 2, low 1) and the level is discretized from it
// (>= 6 high, >= 3 medium, else low).
// swagger:model RiskAnalysisResult
type RiskAnalysisResult struct {
	EventID    int           `json:"eventId"`
	EventTitle string        `json:"eventTitle"`
	RiskLevel  RiskSeverity  `json:"riskLevel"`
	RiskScore  int           `json:"riskScore"`
	Risks      []RiskFinding `json:"risks"`
	Summary    RiskSummary   `json:"summary"`
}

// EventRiskOverview is the cheap per-event entry for list views. It is computed
// from RSVP rate and overdue-critical-task count only, and deliberately does
// not match the full analysis's level for the same event.
// swagger:model EventRiskOverview
type EventRiskOverview struct {
	EventID    int          `json:"eventId"`
	EventTitle string       `json:"eventTitle"`
	RiskLevel  RiskSeverity `json:"riskLevel"`
	RiskCount  int          `json:"riskCount"`
}

// RiskService analyzes event health from tasks and RSVPs.
type RiskService interface {
	// AnalyzeEvent runs the full six-rule analysis for one event.
	AnalyzeEvent(ctx context.Context, eventID int) (*RiskAnalysisResult, error)
	// ListEventRisks computes the coarse overview for every event.
	ListEventRisks(ctx context.Context) ([]*EventRiskOverview, error)
}
