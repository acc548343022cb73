package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

type SearchController struct {
	Logger  *slog.Logger
	Service domain.SearchService
}

func NewSearchController(logger *slog.Logger, svc domain.SearchService) *SearchController {
	return &SearchController{
		Logger:  logger,
		Service: svc,
	}
}

// Search godoc
// @Summary Search tasks, events, and members
// @Description Case-insensitive substring search across task titles, event titles and locations, and member names and emails. Query must be at least 3 characters. Requires authentication.
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param query query string true "Search term (min 3 characters)"
// @Success 200 {object} helpers.APIResponse "data contains grouped matches"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /search [get]
func (c *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	result, err := c.Service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
