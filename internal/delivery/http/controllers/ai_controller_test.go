package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeRiskService implements domain.RiskService for handler tests.
type fakeRiskService struct {
	analyzeResult *domain.RiskAnalysisResult
	analyzeErr    error
	listResult    []*domain.EventRiskOverview
	listErr       error
	lastEventID   int
}

func (f *fakeRiskService) AnalyzeEvent(ctx context.Context, eventID int) (*domain.RiskAnalysisResult, error) {
	f.lastEventID = eventID
	return f.analyzeResult, f.analyzeErr
}

func (f *fakeRiskService) ListEventRisks(ctx context.Context) ([]*domain.EventRiskOverview, error) {
	return f.listResult, f.listErr
}

// fakeEmailService implements domain.EmailContentService for handler tests.
type fakeEmailService struct {
	result  *domain.EmailContent
	err     error
	lastReq *domain.EmailRequest
}

func (f *fakeEmailService) Generate(ctx context.Context, req *domain.EmailRequest) (*domain.EmailContent, error) {
	f.lastReq = req
	return f.result, f.err
}

func decodeErrorEnvelope(t *testing.T, body *bytes.Buffer) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	return envelope
}

func TestGetEventRisks(t *testing.T) {
	analysis := &domain.RiskAnalysisResult{
		EventID:    5,
		EventTitle: "Spring Gala",
		RiskLevel:  domain.RiskSeverityMedium,
		RiskScore:  4,
		Risks:      []domain.RiskFinding{},
		Summary:    domain.RiskSummary{TotalRisks: 0},
	}

	tests := []struct {
		name       string
		path       string
		svc        *fakeRiskService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			path:       "/ai/events/5/risks",
			svc:        &fakeRiskService{analyzeResult: analysis},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-numeric id",
			path:       "/ai/events/abc/risks",
			svc:        &fakeRiskService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "zero id",
			path:       "/ai/events/0/risks",
			svc:        &fakeRiskService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "negative id",
			path:       "/ai/events/-3/risks",
			svc:        &fakeRiskService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "not found",
			path:       "/ai/events/99/risks",
			svc:        &fakeRiskService{analyzeErr: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAIController(testLogger, tt.svc, &fakeEmailService{})
			mux := http.NewServeMux()
			mux.HandleFunc("GET /ai/events/{eventID}/risks", ctrl.GetEventRisks)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				envelope := decodeErrorEnvelope(t, rec.Body)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			// success payload is the bare analysis, no envelope
			var got domain.RiskAnalysisResult
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, *analysis, got)
			assert.Equal(t, 5, tt.svc.lastEventID)
		})
	}
}

func TestListEventRisks(t *testing.T) {
	svc := &fakeRiskService{listResult: []*domain.EventRiskOverview{
		{EventID: 1, EventTitle: "Spring Gala", RiskLevel: domain.RiskSeverityHigh, RiskCount: 2},
		{EventID: 2, EventTitle: "Cleanup Day", RiskLevel: domain.RiskSeverityLow, RiskCount: 0},
	}}
	ctrl := NewAIController(testLogger, svc, &fakeEmailService{})

	rec := httptest.NewRecorder()
	ctrl.ListEventRisks(rec, httptest.NewRequest(http.MethodGet, "/ai/events/risks", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []*domain.EventRiskOverview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "Spring Gala", got[0].EventTitle)
	assert.Equal(t, 2, got[0].RiskCount)
}

func TestGenerateEmail(t *testing.T) {
	content := &domain.EmailContent{Subject: "s", Body: "b", To: "ana@example.com"}

	tests := []struct {
		name       string
		body       string
		svc        *fakeEmailService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"type":"event_reminder","eventId":5,"recipientEmail":"ana@example.com"}`,
			svc:        &fakeEmailService{result: content},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing type",
			body:       `{"eventId":5}`,
			svc:        &fakeEmailService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "non-positive id",
			body:       `{"type":"event_reminder","eventId":0}`,
			svc:        &fakeEmailService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"type":`,
			svc:        &fakeEmailService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "service validation error",
			body:       `{"type":"task_reminder"}`,
			svc:        &fakeEmailService{err: domain.NewValidationError("Task ID or Event ID required for task reminder")},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "service not found",
			body:       `{"type":"event_reminder","eventId":99}`,
			svc:        &fakeEmailService{err: domain.NewNotFoundError("event not found")},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAIController(testLogger, &fakeRiskService{}, tt.svc)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/ai/email/generate", bytes.NewBufferString(tt.body))
			ctrl.GenerateEmail(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				envelope := decodeErrorEnvelope(t, rec.Body)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
				return
			}
			var got GenerateEmailResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.True(t, got.Success)
			require.NotNil(t, got.Email)
			assert.Equal(t, "ana@example.com", got.Email.To)
			assert.False(t, got.GeneratedAt.IsZero())

			require.NotNil(t, tt.svc.lastReq)
			assert.Equal(t, "event_reminder", tt.svc.lastReq.Type)
			require.NotNil(t, tt.svc.lastReq.EventID)
			assert.Equal(t, 5, *tt.svc.lastReq.EventID)
		})
	}
}
