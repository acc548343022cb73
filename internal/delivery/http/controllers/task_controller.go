package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// CreateTaskRequest is the request body for POST /tasks.
type CreateTaskRequest struct {
	Title      string     `json:"title"`
	EventID    int        `json:"eventId"`
	AssigneeID *int       `json:"assigneeId"`
	DueAt      *time.Time `json:"dueAt"`
	Priority   *string    `json:"priority"`
	Status     string     `json:"status"`
}

// Validate implements Validator.
func (c CreateTaskRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.EventID <= 0 {
		errs = append(errs, "eventId must be a positive integer")
	}
	if c.AssigneeID != nil && *c.AssigneeID <= 0 {
		errs = append(errs, "assigneeId must be a positive integer")
	}
	if c.Priority != nil && !domain.ValidTaskPriority(*c.Priority) {
		errs = append(errs, "priority must be one of Urgent, High, Medium, Low")
	}
	if c.Status != "" && !domain.ValidTaskStatus(c.Status) {
		errs = append(errs, "status must be one of To Do, Work In Progress, Under Review, Completed")
	}
	return errs
}

// UpdateTaskStatusRequest is the request body for PATCH /tasks/{taskID}/status.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateTaskStatusRequest) Validate() []string {
	var errs []string
	if u.Status == "" {
		errs = append(errs, "status is required")
	} else if !domain.ValidTaskStatus(u.Status) {
		errs = append(errs, "status must be one of To Do, Work In Progress, Under Review, Completed")
	}
	return errs
}

// TaskController serves the volunteer task endpoints of the dashboard.
type TaskController struct {
	Logger  *slog.Logger
	Service domain.TaskService
}

func NewTaskController(logger *slog.Logger, svc domain.TaskService) *TaskController {
	return &TaskController{
		Logger:  logger,
		Service: svc,
	}
}

// ListTasks godoc
// @Summary List tasks for an event
// @Description Returns the volunteer tasks of one event, with assignee and event loaded. Requires authentication.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param eventId query int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the task list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks [get]
func (c *TaskController) ListTasks(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parsePositiveInt(r.URL.Query().Get("eventId"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventId must be a positive integer")
		return
	}
	tasks, err := c.Service.ListTasks(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tasks)
}

// ListAllTasks godoc
// @Summary List all tasks
// @Description Returns every volunteer task across all events. Requires authentication.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the task list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/all [get]
func (c *TaskController) ListAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := c.Service.ListAllTasks(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tasks)
}

// ListMemberTasks godoc
// @Summary List tasks assigned to a member
// @Description Returns the volunteer tasks assigned to one member. Requires authentication.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param memberID path int true "Member ID"
// @Success 200 {object} helpers.APIResponse "data contains the task list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/user/{memberID} [get]
func (c *TaskController) ListMemberTasks(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parsePositiveInt(r.PathValue("memberID"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "memberId must be a positive integer")
		return
	}
	tasks, err := c.Service.ListMemberTasks(r.Context(), memberID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, tasks)
}

// CreateTask godoc
// @Summary Create a volunteer task
// @Description Create a task on an event, optionally assigned to a member. Status defaults to To Do. Requires authentication.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body CreateTaskRequest true "Task data"
// @Success 201 {object} helpers.APIResponse "data contains the created task"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks [post]
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task := &domain.VolunteerTask{
		Title:            strings.TrimSpace(req.Title),
		EventID:          req.EventID,
		AssigneeMemberID: req.AssigneeID,
		DueAt:            req.DueAt,
		Priority:         req.Priority,
		Status:           req.Status,
	}
	if err := c.Service.CreateTask(r.Context(), task); err != nil {
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, task)
}

// UpdateTaskStatus godoc
// @Summary Update a task's status
// @Description Move a task between workflow states. Returns the updated task with its event and assignee. Requires authentication.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param taskID path int true "Task ID"
// @Param body body UpdateTaskStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated task"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/{taskID}/status [patch]
func (c *TaskController) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, ok := parsePositiveInt(r.PathValue("taskID"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "taskId must be a positive integer")
		return
	}
	var req UpdateTaskStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task, err := c.Service.UpdateTaskStatus(r.Context(), taskID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "task not found")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, task)
}
