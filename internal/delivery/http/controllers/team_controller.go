package controllers

import (
	"log/slog"
	"net/http"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// TeamController serves the org ("team") directory.
type TeamController struct {
	Logger  *slog.Logger
	Service domain.OrgService
}

func NewTeamController(logger *slog.Logger, svc domain.OrgService) *TeamController {
	return &TeamController{
		Logger:  logger,
		Service: svc,
	}
}

// ListTeams godoc
// @Summary List all orgs
// @Description Returns all orgs with member, event, and sponsor summaries. Requires authentication.
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the org list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /teams [get]
func (c *TeamController) ListTeams(w http.ResponseWriter, r *http.Request) {
	orgs, err := c.Service.ListOrgs(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, orgs)
}
