package controllers

import (
	"log/slog"
	"net/http"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// ListRSVPs godoc
// @Summary List RSVPs for an event
// @Description Returns the RSVPs of one event with member and event loaded. Requires authentication.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventId query int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the RSVP list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvps [get]
func (c *RSVPController) ListRSVPs(w http.ResponseWriter, r *http.Request) {
	eventID, ok := parsePositiveInt(r.URL.Query().Get("eventId"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "eventId must be a positive integer")
		return
	}
	rsvps, err := c.Service.ListRSVPs(r.Context(), &eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvps)
}

// ListAllRSVPs godoc
// @Summary List all RSVPs
// @Description Returns every RSVP across all events. Requires authentication.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the RSVP list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvps/all [get]
func (c *RSVPController) ListAllRSVPs(w http.ResponseWriter, r *http.Request) {
	rsvps, err := c.Service.ListRSVPs(r.Context(), nil)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvps)
}
