package controllers

import (
	"log/slog"
	"net/http"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type SponsorController struct {
	Logger  *slog.Logger
	Service domain.SponsorService
}

func NewSponsorController(logger *slog.Logger, svc domain.SponsorService) *SponsorController {
	return &SponsorController{
		Logger:  logger,
		Service: svc,
	}
}

// ListSponsors godoc
// @Summary List sponsors for an org
// @Description Returns the sponsors of one org with pledge and pipeline stage details. Requires authentication.
// @Tags sponsors
// @Produce json
// @Security BearerAuth
// @Param orgId query int true "Org ID"
// @Success 200 {object} helpers.APIResponse "data contains the sponsor list"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsors [get]
func (c *SponsorController) ListSponsors(w http.ResponseWriter, r *http.Request) {
	orgID, ok := parsePositiveInt(r.URL.Query().Get("orgId"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "orgId must be a positive integer")
		return
	}
	sponsors, err := c.Service.ListSponsors(r.Context(), &orgID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsors)
}

// ListAllSponsors godoc
// @Summary List all sponsors
// @Description Returns every sponsor across all orgs. Requires authentication.
// @Tags sponsors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the sponsor list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sponsors/all [get]
func (c *SponsorController) ListAllSponsors(w http.ResponseWriter, r *http.Request) {
	sponsors, err := c.Service.ListSponsors(r.Context(), nil)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sponsors)
}
