package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

func confirmedRSVPs(n int) []*domain.RSVP {
	out := make([]*domain.RSVP, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domain.RSVP{ID: i + 1, Status: domain.RSVPStatusConfirmed})
	}
	return out
}

// farOutEvent returns an event starting well outside the 7-day approach window.
func farOutEvent(id int) *domain.Event {
	return &domain.Event{
		ID:       id,
		Title:    "Annual Gala",
		StartsAt: fixedNow.Add(30 * 24 * time.Hour),
		EndsAt:   fixedNow.Add(31 * 24 * time.Hour),
		Status:   domain.EventStatusPlanned,
	}
}

func TestAnalyzeEvent_NotFound(t *testing.T) {
	svc := NewRiskService(newFakeEventRepo(), fixedClock, time.Second)
	_, err := svc.AnalyzeEvent(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnalyzeEvent_NoFindings(t *testing.T) {
	event := farOutEvent(1)
	svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)

	result, err := svc.AnalyzeEvent(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, result.EventID)
	assert.Equal(t, "Annual Gala", result.EventTitle)
	assert.Equal(t, domain.RiskSeverityLow, result.RiskLevel)
	assert.Equal(t, 0, result.RiskScore)
	require.NotNil(t, result.Risks)
	assert.Empty(t, result.Risks)
	assert.Equal(t, domain.RiskSummary{}, result.Summary)
}

func TestAnalyzeEvent_LowRSVPRule(t *testing.T) {
	tests := []struct {
		name         string
		capacity     *int
		confirmed    int
		wantFinding  bool
		wantSeverity domain.RiskSeverity
		wantMessage  string
	}{
		{
			name:        "capacity unset never fires",
			capacity:    nil,
			confirmed:   0,
			wantFinding: false,
		},
		{
			name:        "capacity zero never fires",
			capacity:    intPtr(0),
			confirmed:   0,
			wantFinding: false,
		},
		{
			name:         "under 30 percent is high",
			capacity:     intPtr(50),
			confirmed:    10,
			wantFinding:  true,
			wantSeverity: domain.RiskSeverityHigh,
			wantMessage:  "Only 20% capacity filled (10/50 confirmed)",
		},
		{
			name:         "under 50 percent is medium",
			capacity:     intPtr(50),
			confirmed:    20,
			wantFinding:  true,
			wantSeverity: domain.RiskSeverityMedium,
			wantMessage:  "RSVP rate at 40% (20/50)",
		},
		{
			name:        "at 50 percent does not fire",
			capacity:    intPtr(50),
			confirmed:   25,
			wantFinding: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := farOutEvent(1)
			event.Capacity = tt.capacity
			event.RSVPs = confirmedRSVPs(tt.confirmed)
			// declined RSVPs never count toward the rate
			event.RSVPs = append(event.RSVPs, &domain.RSVP{ID: 900, Status: domain.RSVPStatusDeclined})

			svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)
			result, err := svc.AnalyzeEvent(context.Background(), 1)
			require.NoError(t, err)

			if !tt.wantFinding {
				for _, f := range result.Risks {
					assert.NotEqual(t, domain.RiskTypeLowRSVP, f.Type)
				}
				return
			}
			require.Len(t, result.Risks, 1)
			f := result.Risks[0]
			assert.Equal(t, domain.RiskTypeLowRSVP, f.Type)
			assert.Equal(t, tt.wantSeverity, f.Severity)
			assert.Equal(t, tt.wantMessage, f.Message)
		})
	}
}

func TestAnalyzeEvent_OverdueCriticalTasks(t *testing.T) {
	event := farOutEvent(1)
	event.VolunteerTasks = []*domain.VolunteerTask{
		// counts: urgent, past due, not completed
		{ID: 1, Title: "Book venue", Status: domain.TaskStatusToDo, Priority: strPtr(domain.TaskPriorityUrgent), DueAt: timePtr(fixedNow.Add(-48 * time.Hour))},
		// counts: high priority, past due
		{ID: 2, Title: "Order catering", Status: domain.TaskStatusInProgress, Priority: strPtr(domain.TaskPriorityHigh), DueAt: timePtr(fixedNow.Add(-2 * time.Hour))},
		// low priority overdue is not critical
		{ID: 3, Title: "Print flyers", Status: domain.TaskStatusToDo, Priority: strPtr(domain.TaskPriorityLow), DueAt: timePtr(fixedNow.Add(-48 * time.Hour))},
		// completed tasks are never overdue
		{ID: 4, Title: "Send invites", Status: domain.TaskStatusCompleted, Priority: strPtr(domain.TaskPriorityUrgent), DueAt: timePtr(fixedNow.Add(-48 * time.Hour))},
		// no due date is never overdue
		{ID: 5, Title: "Recruit MC", Status: domain.TaskStatusToDo, Priority: strPtr(domain.TaskPriorityUrgent)},
	}

	svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)
	result, err := svc.AnalyzeEvent(context.Background(), 1)
	require.NoError(t, err)

	var overdue *domain.RiskFinding
	for i := range result.Risks {
		if result.Risks[i].Type == domain.RiskTypeOverdueTasks {
			overdue = &result.Risks[i]
		}
	}
	require.NotNil(t, overdue)
	assert.Equal(t, domain.RiskSeverityHigh, overdue.Severity)
	assert.Equal(t, "2 critical tasks overdue", overdue.Message)
}

func TestAnalyzeEvent_TasksDueSoon(t *testing.T) {
	event := farOutEvent(1)
	event.VolunteerTasks = []*domain.VolunteerTask{
		// in window
		{ID: 1, Title: "Confirm AV", Status: domain.TaskStatusToDo, DueAt: timePtr(fixedNow.Add(12 * time.Hour))},
		// past due is rule 2 territory, not rule 3
		{ID: 2, Title: "Book venue", Status: domain.TaskStatusToDo, DueAt: timePtr(fixedNow.Add(-time.Hour))},
		// outside window
		{ID: 3, Title: "Order catering", Status: domain.TaskStatusToDo, DueAt: timePtr(fixedNow.Add(48 * time.Hour))},
		// completed never reminds
		{ID: 4, Title: "Send invites", Status: domain.TaskStatusCompleted, DueAt: timePtr(fixedNow.Add(12 * time.Hour))},
	}

	svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)
	result, err := svc.AnalyzeEvent(context.Background(), 1)
	require.NoError(t, err)

	var dueSoon *domain.RiskFinding
	for i := range result.Risks {
		if result.Risks[i].Type == domain.RiskTypeTasksDueSoon {
			dueSoon = &result.Risks[i]
		}
	}
	require.NotNil(t, dueSoon)
	assert.Equal(t, domain.RiskSeverityMedium, dueSoon.Severity)
	assert.Equal(t, "1 task due within 24 hours", dueSoon.Message)
}

func TestAnalyzeEvent_LowCompletionCappedAtMedium(t *testing.T) {
	event := farOutEvent(1)
	// 0 of 4 completed: as low as it gets, still medium
	for i := 1; i <= 4; i++ {
		event.VolunteerTasks = append(event.VolunteerTasks, &domain.VolunteerTask{
			ID: i, Title: "Task", Status: domain.TaskStatusToDo,
		})
	}

	svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)
	result, err := svc.AnalyzeEvent(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, result.Risks, 1)
	f := result.Risks[0]
	assert.Equal(t, domain.RiskTypeLowCompletion, f.Type)
	assert.Equal(t, domain.RiskSeverityMedium, f.Severity)
	assert.Equal(t, "Only 0% of tasks completed (0/4)", f.Message)
}

func TestAnalyzeEvent_EventApproaching(t *testing.T) {
	tests := []struct {
		name         string
		startsIn     time.Duration
		incomplete   int
		wantFinding  bool
		wantSeverity domain.RiskSeverity
	}{
		{"8 days out is outside the window", 8 * 24 * time.Hour, 1, false, ""},
		{"5 days out is medium", 5 * 24 * time.Hour, 1, true, domain.RiskSeverityMedium},
		{"2 days out is high", 2 * 24 * time.Hour, 1, true, domain.RiskSeverityHigh},
		{"already started never fires", -24 * time.Hour, 1, false, ""},
		{"no incomplete work never fires", 2 * 24 * time.Hour, 0, true, domain.RiskSeverityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := farOutEvent(1)
			event.StartsAt = fixedNow.Add(tt.startsIn)
			event.EndsAt = event.StartsAt.Add(4 * time.Hour)
			if tt.incomplete > 0 {
				// completed sibling keeps the completion rate at 50 so rule 4 stays quiet
				event.VolunteerTasks = []*domain.VolunteerTask{
					{ID: 1, Title: "Task", Status: domain.TaskStatusToDo},
					{ID: 2, Title: "Done", Status: domain.TaskStatusCompleted},
				}
			}

			svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)
			result, err := svc.AnalyzeEvent(context.Background(), 1)
			require.NoError(t, err)

			var approaching *domain.RiskFinding
			for i := range result.Risks {
				if result.Risks[i].Type == domain.RiskTypeEventApproaching {
					approaching = &result.Risks[i]
				}
			}
			if !tt.wantFinding || tt.incomplete == 0 {
				if tt.incomplete == 0 {
					assert.Nil(t, approaching)
					return
				}
				assert.Nil(t, approaching)
				return
			}
			require.NotNil(t, approaching)
			assert.Equal(t, tt.wantSeverity, approaching.Severity)
		})
	}
}

func TestAnalyzeEvent_UnassignedCriticalTasks(t *testing.T) {
	event := farOutEvent(1)
	memberID := 7
	event.VolunteerTasks = []*domain.VolunteerTask{
		{ID: 1, Title: "Book venue", Status: domain.TaskStatusCompleted, Priority: strPtr(domain.TaskPriorityUrgent)},
		// assigned critical does not fire
		{ID: 2, Title: "Order catering", Status: domain.TaskStatusCompleted, Priority: strPtr(domain.TaskPriorityHigh), AssigneeMemberID: &memberID},
		// unassigned low is not critical
		{ID: 3, Title: "Print flyers", Status: domain.TaskStatusCompleted, Priority: strPtr(domain.TaskPriorityLow)},
		// no priority is not critical
		{ID: 4, Title: "Tidy up", Status: domain.TaskStatusCompleted},
	}

	svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)
	result, err := svc.AnalyzeEvent(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, result.Risks, 1)
	f := result.Risks[0]
	assert.Equal(t, domain.RiskTypeUnassignedTasks, f.Type)
	assert.Equal(t, domain.RiskSeverityHigh, f.Severity)
	assert.Equal(t, "1 critical task not assigned", f.Message)
}

func TestAnalyzeEvent_ScoreAndLevelBoundaries(t *testing.T) {
	// Rate combinations drive rule 1; tasks drive rules 3 and 4. All other
	// rules are kept quiet by construction.
	lowPriorityTask := func(id int, due time.Time, status string) *domain.VolunteerTask {
		member := 5
		return &domain.VolunteerTask{
			ID: id, Title: "Task", Status: status,
			Priority: strPtr(domain.TaskPriorityLow), DueAt: timePtr(due), AssigneeMemberID: &member,
		}
	}
	farDue := fixedNow.Add(10 * 24 * time.Hour)

	tests := []struct {
		name      string
		confirmed int // of capacity 50
		dueSoon   bool
		wantScore int
		wantLevel domain.RiskSeverity
	}{
		// rule 1 medium (2) + rule 4 medium (2) = 4
		{"two mediums score 4", 20, false, 4, domain.RiskSeverityMedium},
		// rule 1 high (3) + rule 4 medium (2) = 5
		{"high plus medium score 5", 10, false, 5, domain.RiskSeverityMedium},
		// rule 1 high (3) + rule 3 medium (2) + rule 4 medium (2) = 7
		{"high plus two mediums score 7", 10, true, 7, domain.RiskSeverityHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := farOutEvent(1)
			event.Capacity = intPtr(50)
			event.RSVPs = confirmedRSVPs(tt.confirmed)
			// 1 of 3 completed keeps completion at 33%
			due := farDue
			if tt.dueSoon {
				due = fixedNow.Add(12 * time.Hour)
			}
			event.VolunteerTasks = []*domain.VolunteerTask{
				lowPriorityTask(1, due, domain.TaskStatusToDo),
				lowPriorityTask(2, farDue, domain.TaskStatusToDo),
				lowPriorityTask(3, farDue, domain.TaskStatusCompleted),
			}

			svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)
			result, err := svc.AnalyzeEvent(context.Background(), 1)
			require.NoError(t, err)

			assert.Equal(t, tt.wantScore, result.RiskScore)
			assert.Equal(t, tt.wantLevel, result.RiskLevel)
			assert.Equal(t,
				3*result.Summary.HighRisks+2*result.Summary.MediumRisks+result.Summary.LowRisks,
				result.RiskScore)
			assert.Equal(t, len(result.Risks), result.Summary.TotalRisks)
		})
	}
}

func TestAnalyzeEvent_Idempotent(t *testing.T) {
	event := farOutEvent(1)
	event.Capacity = intPtr(100)
	event.RSVPs = confirmedRSVPs(10)
	event.VolunteerTasks = []*domain.VolunteerTask{
		{ID: 1, Title: "Book venue", Status: domain.TaskStatusToDo, Priority: strPtr(domain.TaskPriorityUrgent), DueAt: timePtr(fixedNow.Add(-time.Hour))},
	}
	svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)

	first, err := svc.AnalyzeEvent(context.Background(), 1)
	require.NoError(t, err)
	second, err := svc.AnalyzeEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListEventRisks_BatchPolicy(t *testing.T) {
	overdueTask := &domain.VolunteerTask{
		ID: 1, Title: "Book venue", Status: domain.TaskStatusToDo,
		Priority: strPtr(domain.TaskPriorityUrgent), DueAt: timePtr(fixedNow.Add(-time.Hour)),
	}

	noCapacity := farOutEvent(1)
	noCapacity.Title = "No capacity"

	healthy := farOutEvent(2)
	healthy.Title = "Healthy"
	healthy.Capacity = intPtr(100)
	healthy.RSVPs = confirmedRSVPs(60)

	midRate := farOutEvent(3)
	midRate.Title = "Mid rate"
	midRate.Capacity = intPtr(100)
	midRate.RSVPs = confirmedRSVPs(40)

	withOverdue := farOutEvent(4)
	withOverdue.Title = "With overdue"
	withOverdue.Capacity = intPtr(100)
	withOverdue.RSVPs = confirmedRSVPs(60)
	withOverdue.VolunteerTasks = []*domain.VolunteerTask{overdueTask}

	svc := NewRiskService(newFakeEventRepo(noCapacity, healthy, midRate, withOverdue), fixedClock, time.Second)
	overviews, err := svc.ListEventRisks(context.Background())
	require.NoError(t, err)
	require.Len(t, overviews, 4)

	// Unset capacity is treated as rate 0: high risk, unlike the full
	// analysis where rule 1 never fires. The divergence is intentional.
	assert.Equal(t, domain.RiskSeverityHigh, overviews[0].RiskLevel)
	assert.Equal(t, 1, overviews[0].RiskCount)

	assert.Equal(t, domain.RiskSeverityLow, overviews[1].RiskLevel)
	assert.Equal(t, 0, overviews[1].RiskCount)

	assert.Equal(t, domain.RiskSeverityMedium, overviews[2].RiskLevel)
	assert.Equal(t, 0, overviews[2].RiskCount)

	assert.Equal(t, domain.RiskSeverityHigh, overviews[3].RiskLevel)
	assert.Equal(t, 1, overviews[3].RiskCount)
}

func TestListEventRisks_DivergesFromFullAnalysis(t *testing.T) {
	// Capacity unset, nothing else wrong: the full analysis says low, the
	// batch overview says high.
	event := farOutEvent(1)
	svc := NewRiskService(newFakeEventRepo(event), fixedClock, time.Second)

	full, err := svc.AnalyzeEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RiskSeverityLow, full.RiskLevel)

	overviews, err := svc.ListEventRisks(context.Background())
	require.NoError(t, err)
	require.Len(t, overviews, 1)
	assert.Equal(t, domain.RiskSeverityHigh, overviews[0].RiskLevel)
}
