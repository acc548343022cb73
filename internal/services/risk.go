package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// Severity weights and level thresholds for the full analysis. These are part
// of the API contract, not runtime-tunable.
const (
	riskWeightHigh   = 3
	riskWeightMedium = 2
	riskWeightLow    = 1

	riskLevelHighThreshold   = 6
	riskLevelMediumThreshold = 3
)

// RSVP-rate thresholds (percent of capacity confirmed).
const (
	rsvpRateHighRisk   = 30
	rsvpRateMediumRisk = 50
)

type riskService struct {
	eventRepo      domain.EventRepository
	now            func() time.Time
	contextTimeout time.Duration
}

// NewRiskService returns a RiskService reading events through eventRepo.
// now supplies the current time for all rule evaluation; pass time.Now in
// production and a fixed clock in tests.
func NewRiskService(eventRepo domain.EventRepository, now func() time.Time, timeout time.Duration) domain.RiskService {
	return &riskService{
		eventRepo:      eventRepo,
		now:            now,
		contextTimeout: timeout,
	}
}

func (s *riskService) AnalyzeEvent(ctx context.Context, eventID int) (*domain.RiskAnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetWithRelations(ctx, eventID)
	if err != nil {
		return nil, err
	}

	findings := evaluateRiskRules(event, s.now())
	return aggregateFindings(event, findings), nil
}

// evaluateRiskRules runs the six independent rules against a fully loaded
// event. now is captured once so every rule sees the same instant. Rules that
// find nothing contribute nothing; output order is the rule order below.
func evaluateRiskRules(event *domain.Event, now time.Time) []domain.RiskFinding {
	var findings []domain.RiskFinding

	// Rule 1: low RSVP rate. Only when capacity is set and positive.
	if event.Capacity != nil && *event.Capacity > 0 {
		confirmed := countConfirmedRSVPs(event.RSVPs)
		rate := float64(confirmed) / float64(*event.Capacity) * 100

		if rate < rsvpRateHighRisk {
			findings = append(findings, domain.RiskFinding{
				Type:       domain.RiskTypeLowRSVP,
				Severity:   domain.RiskSeverityHigh,
				Message:    fmt.Sprintf("Only %.0f%% capacity filled (%d/%d confirmed)", rate, confirmed, *event.Capacity),
				Suggestion: "Send reminder emails to increase attendance",
				Data:       map[string]any{"rsvpRate": rate, "confirmedRsvps": confirmed, "capacity": *event.Capacity},
			})
		} else if rate < rsvpRateMediumRisk {
			findings = append(findings, domain.RiskFinding{
				Type:       domain.RiskTypeLowRSVP,
				Severity:   domain.RiskSeverityMedium,
				Message:    fmt.Sprintf("RSVP rate at %.0f%% (%d/%d)", rate, confirmed, *event.Capacity),
				Suggestion: "Consider sending follow-up emails",
				Data:       map[string]any{"rsvpRate": rate, "confirmedRsvps": confirmed, "capacity": *event.Capacity},
			})
		}
	}

	// Rule 2: overdue critical tasks.
	var overdue []*domain.VolunteerTask
	for _, t := range event.VolunteerTasks {
		if isOverdueCritical(t, now) {
			overdue = append(overdue, t)
		}
	}
	if len(overdue) > 0 {
		findings = append(findings, domain.RiskFinding{
			Type:       domain.RiskTypeOverdueTasks,
			Severity:   domain.RiskSeverityHigh,
			Message:    fmt.Sprintf("%d critical task%s overdue", len(overdue), plural(len(overdue))),
			Suggestion: "Reassign tasks or extend deadlines immediately",
			Data:       map[string]any{"tasks": taskRefs(overdue)},
		})
	}

	// Rule 3: tasks due within 24 hours. Any priority.
	var dueSoon []*domain.VolunteerTask
	for _, t := range event.VolunteerTasks {
		if t.DueAt == nil || t.Status == domain.TaskStatusCompleted {
			continue
		}
		hoursUntilDue := t.DueAt.Sub(now).Hours()
		if hoursUntilDue > 0 && hoursUntilDue <= 24 {
			dueSoon = append(dueSoon, t)
		}
	}
	if len(dueSoon) > 0 {
		findings = append(findings, domain.RiskFinding{
			Type:       domain.RiskTypeTasksDueSoon,
			Severity:   domain.RiskSeverityMedium,
			Message:    fmt.Sprintf("%d task%s due within 24 hours", len(dueSoon), plural(len(dueSoon))),
			Suggestion: "Send reminders to task assignees",
			Data:       map[string]any{"tasks": taskRefs(dueSoon)},
		})
	}

	// Rule 4: low completion rate. Skipped when the event has no tasks;
	// severity capped at medium no matter how low the rate is.
	total := len(event.VolunteerTasks)
	completed := 0
	for _, t := range event.VolunteerTasks {
		if t.Status == domain.TaskStatusCompleted {
			completed++
		}
	}
	if total > 0 {
		completionRate := float64(completed) / float64(total) * 100
		if completionRate < 50 {
			findings = append(findings, domain.RiskFinding{
				Type:       domain.RiskTypeLowCompletion,
				Severity:   domain.RiskSeverityMedium,
				Message:    fmt.Sprintf("Only %.0f%% of tasks completed (%d/%d)", completionRate, completed, total),
				Suggestion: "Review task assignments and provide support",
				Data:       map[string]any{"completionRate": completionRate, "completedTasks": completed, "totalTasks": total},
			})
		}
	}

	// Rule 5: event approaching with incomplete work.
	daysUntilEvent := event.StartsAt.Sub(now).Hours() / 24
	incomplete := total - completed
	if daysUntilEvent > 0 && daysUntilEvent <= 7 && incomplete > 0 {
		severity := domain.RiskSeverityMedium
		if daysUntilEvent <= 3 {
			severity = domain.RiskSeverityHigh
		}
		days := int(math.Ceil(daysUntilEvent))
		findings = append(findings, domain.RiskFinding{
			Type:       domain.RiskTypeEventApproaching,
			Severity:   severity,
			Message:    fmt.Sprintf("Event in %d day%s with %d incomplete task%s", days, plural(days), incomplete, plural(incomplete)),
			Suggestion: "Prioritize remaining tasks and check resource availability",
			Data:       map[string]any{"daysUntilEvent": days, "incompleteTasks": incomplete},
		})
	}

	// Rule 6: unassigned critical tasks.
	var unassigned []*domain.VolunteerTask
	for _, t := range event.VolunteerTasks {
		if t.AssigneeMemberID == nil && t.IsCritical() {
			unassigned = append(unassigned, t)
		}
	}
	if len(unassigned) > 0 {
		data := make([]map[string]any, 0, len(unassigned))
		for _, t := range unassigned {
			data = append(data, map[string]any{"id": t.ID, "title": t.Title, "priority": *t.Priority})
		}
		findings = append(findings, domain.RiskFinding{
			Type:       domain.RiskTypeUnassignedTasks,
			Severity:   domain.RiskSeverityHigh,
			Message:    fmt.Sprintf("%d critical task%s not assigned", len(unassigned), plural(len(unassigned))),
			Suggestion: "Assign tasks to available volunteers immediately",
			Data:       map[string]any{"tasks": data},
		})
	}

	return findings
}

// aggregateFindings folds findings into the weighted score, overall level, and
// severity counts. Finding order is preserved.
func aggregateFindings(event *domain.Event, findings []domain.RiskFinding) *domain.RiskAnalysisResult {
	score := 0
	summary := domain.RiskSummary{TotalRisks: len(findings)}
	for _, f := range findings {
		switch f.Severity {
		case domain.RiskSeverityHigh:
			score += riskWeightHigh
			summary.HighRisks++
		case domain.RiskSeverityMedium:
			score += riskWeightMedium
			summary.MediumRisks++
		default:
			score += riskWeightLow
			summary.LowRisks++
		}
	}

	level := domain.RiskSeverityLow
	if score >= riskLevelHighThreshold {
		level = domain.RiskSeverityHigh
	} else if score >= riskLevelMediumThreshold {
		level = domain.RiskSeverityMedium
	}

	if findings == nil {
		findings = []domain.RiskFinding{}
	}
	return &domain.RiskAnalysisResult{
		EventID:    event.ID,
		EventTitle: event.Title,
		RiskLevel:  level,
		RiskScore:  score,
		Risks:      findings,
		Summary:    summary,
	}
}

// ListEventRisks computes the coarse per-event overview for list views. This
// intentionally uses a cheaper policy than AnalyzeEvent (RSVP rate and
// overdue-critical count only, with rate treated as 0 when capacity is unset);
// the two are documented to diverge and must not be unified.
func (s *riskService) ListEventRisks(ctx context.Context) ([]*domain.EventRiskOverview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListWithRelations(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	overviews := make([]*domain.EventRiskOverview, 0, len(events))
	for _, event := range events {
		confirmed := countConfirmedRSVPs(event.RSVPs)
		rate := 0.0
		if event.Capacity != nil && *event.Capacity > 0 {
			rate = float64(confirmed) / float64(*event.Capacity) * 100
		}
		overdueCount := 0
		for _, t := range event.VolunteerTasks {
			if isOverdueCritical(t, now) {
				overdueCount++
			}
		}

		level := domain.RiskSeverityLow
		switch {
		case rate < rsvpRateHighRisk || overdueCount > 0:
			level = domain.RiskSeverityHigh
		case rate < rsvpRateMediumRisk || overdueCount > 2:
			level = domain.RiskSeverityMedium
		}

		count := overdueCount
		if rate < rsvpRateHighRisk {
			count++
		}
		overviews = append(overviews, &domain.EventRiskOverview{
			EventID:    event.ID,
			EventTitle: event.Title,
			RiskLevel:  level,
			RiskCount:  count,
		})
	}
	return overviews, nil
}

func countConfirmedRSVPs(rsvps []*domain.RSVP) int {
	n := 0
	for _, r := range rsvps {
		if r.Status == domain.RSVPStatusConfirmed {
			n++
		}
	}
	return n
}

// isOverdueCritical reports whether the task is past due, not completed, and
// Urgent or High priority.
func isOverdueCritical(t *domain.VolunteerTask, now time.Time) bool {
	if t.DueAt == nil || t.Status == domain.TaskStatusCompleted {
		return false
	}
	return t.DueAt.Before(now) && t.IsCritical()
}

func taskRefs(tasks []*domain.VolunteerTask) []map[string]any {
	refs := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		refs = append(refs, map[string]any{"id": t.ID, "title": t.Title, "dueAt": t.DueAt})
	}
	return refs
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
