package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// CreateProjectRequest is the request body for POST /projects.
type CreateProjectRequest struct {
	Title    string     `json:"title"`
	StartsAt time.Time  `json:"startsAt"`
	EndsAt   time.Time  `json:"endsAt"`
	Location *string    `json:"location"`
	Status   string     `json:"status"`
	Capacity *int       `json:"capacity"`
	OrgID    int        `json:"orgId"`
}

// Validate implements Validator.
func (c CreateProjectRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.StartsAt.IsZero() {
		errs = append(errs, "startsAt is required")
	}
	if c.EndsAt.IsZero() {
		errs = append(errs, "endsAt is required")
	}
	if !c.StartsAt.IsZero() && !c.EndsAt.IsZero() && c.EndsAt.Before(c.StartsAt) {
		errs = append(errs, "endsAt must not be before startsAt")
	}
	if c.Capacity != nil && *c.Capacity < 0 {
		errs = append(errs, "capacity must be >= 0")
	}
	if c.OrgID <= 0 {
		errs = append(errs, "orgId must be a positive integer")
	}
	if c.Status != "" {
		switch c.Status {
		case domain.EventStatusPlanned, domain.EventStatusActive, domain.EventStatusCompleted, domain.EventStatusCancelled:
		default:
			errs = append(errs, "status must be one of Planned, Active, Completed, Cancelled")
		}
	}
	return errs
}

// ProjectController serves the event ("project") endpoints of the dashboard.
type ProjectController struct {
	Logger  *slog.Logger
	Service domain.ProjectService
}

func NewProjectController(logger *slog.Logger, svc domain.ProjectService) *ProjectController {
	return &ProjectController{
		Logger:  logger,
		Service: svc,
	}
}

// ListProjects godoc
// @Summary List all events
// @Description Returns all events with their org, RSVPs, and volunteer tasks loaded. Requires authentication.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [get]
func (c *ProjectController) ListProjects(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListProjects(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateProject godoc
// @Summary Create a new event
// @Description Create an event for an org. Status defaults to Planned when omitted. Requires authentication.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param project body CreateProjectRequest true "Event data"
// @Success 201 {object} helpers.APIResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [post]
func (c *ProjectController) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(req.Title, req.StartsAt, req.EndsAt, req.Location, req.Status, req.Capacity, req.OrgID)
	if err := c.Service.CreateProject(r.Context(), event); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}
