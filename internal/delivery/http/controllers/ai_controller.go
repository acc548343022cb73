package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// AIController serves the risk-analysis and email-generation endpoints the
// dashboard consumes under /ai. Success payloads are bare (no envelope) to
// match the deployed dashboard contract; errors use the standard envelope.
type AIController struct {
	Logger  *slog.Logger
	Risks   domain.RiskService
	Emails  domain.EmailContentService
	clockFn func() time.Time
}

func NewAIController(logger *slog.Logger, risks domain.RiskService, emails domain.EmailContentService) *AIController {
	return &AIController{
		Logger:  logger,
		Risks:   risks,
		Emails:  emails,
		clockFn: time.Now,
	}
}

// parsePositiveInt parses s as a positive (> 0) integer.
func parsePositiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// GetEventRisks godoc
// @Summary Analyze one event's risks
// @Description Runs the full rule-based risk analysis for a single event: RSVP fill rate, overdue and soon-due volunteer tasks, completion rate, proximity to start date, and unassigned critical tasks. Requires authentication.
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} domain.RiskAnalysisResult
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /ai/events/{eventID}/risks [get]
func (c *AIController) GetEventRisks(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parsePositiveInt(r.PathValue("eventID"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventId must be a positive integer")
		return
	}
	result, err := c.Risks.AnalyzeEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, result)
}

// ListEventRisks godoc
// @Summary List risk overviews for all events
// @Description Returns a cheap per-event risk overview (RSVP rate and overdue critical tasks only). This deliberately uses a coarser policy than the single-event analysis.
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.EventRiskOverview
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /ai/events/risks [get]
func (c *AIController) ListEventRisks(w http.ResponseWriter, r *http.Request) {
	overviews, err := c.Risks.ListEventRisks(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, overviews)
}

// GenerateEmailRequest is the request body for POST /ai/email/generate.
// Which reference id is required depends on type: event_reminder,
// sponsor_thank_you and rsvp_confirmation need eventId; task_assignment needs
// taskId; task_reminder needs taskId or eventId.
type GenerateEmailRequest struct {
	Type           string `json:"type"`
	EventID        *int   `json:"eventId"`
	TaskID         *int   `json:"taskId"`
	MemberID       *int   `json:"memberId"`
	RecipientEmail string `json:"recipientEmail"`
	RecipientName  string `json:"recipientName"`
}

// Validate implements Validator. Type presence and id positivity are checked
// here; type-specific reference requirements are enforced by the service so
// their messages stay uniform.
func (g GenerateEmailRequest) Validate() []string {
	var errs []string
	if g.Type == "" {
		errs = append(errs, "type is required")
	}
	if g.EventID != nil && *g.EventID <= 0 {
		errs = append(errs, "eventId must be a positive integer")
	}
	if g.TaskID != nil && *g.TaskID <= 0 {
		errs = append(errs, "taskId must be a positive integer")
	}
	if g.MemberID != nil && *g.MemberID <= 0 {
		errs = append(errs, "memberId must be a positive integer")
	}
	return errs
}

// GenerateEmailResponse is the success body for POST /ai/email/generate.
type GenerateEmailResponse struct {
	Success     bool                 `json:"success"`
	Email       *domain.EmailContent `json:"email"`
	GeneratedAt time.Time            `json:"generatedAt"`
}

// GenerateEmail godoc
// @Summary Generate notification email content
// @Description Resolves the referenced event/task and renders subject and body for the given notification type. Nothing is sent; the caller decides delivery.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateEmailRequest true "Email generation request"
// @Success 200 {object} controllers.GenerateEmailResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /ai/email/generate [post]
func (c *AIController) GenerateEmail(w http.ResponseWriter, r *http.Request) {
	var req GenerateEmailRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	content, err := c.Emails.Generate(r.Context(), &domain.EmailRequest{
		Type:           req.Type,
		EventID:        req.EventID,
		TaskID:         req.TaskID,
		MemberID:       req.MemberID,
		RecipientEmail: req.RecipientEmail,
		RecipientName:  req.RecipientName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSON(w, http.StatusOK, GenerateEmailResponse{
		Success:     true,
		Email:       content,
		GeneratedAt: c.clockFn().UTC(),
	})
}
