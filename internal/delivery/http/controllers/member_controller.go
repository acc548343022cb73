package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MarufHossain14/clubops-crm/internal/delivery/http/helpers"
	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// CreateMemberRequest is the request body for POST /users.
type CreateMemberRequest struct {
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Tags     []string `json:"tags"`
	OrgID    int      `json:"orgId"`
}

// Validate implements Validator.
func (c CreateMemberRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	email := strings.TrimSpace(strings.ToLower(c.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if c.OrgID <= 0 {
		errs = append(errs, "orgId must be a positive integer")
	}
	return errs
}

// MemberController serves the member directory, exposed to the dashboard as
// the /users endpoints. Members are directory records, not login accounts.
type MemberController struct {
	Logger  *slog.Logger
	Service domain.MemberService
}

func NewMemberController(logger *slog.Logger, svc domain.MemberService) *MemberController {
	return &MemberController{
		Logger:  logger,
		Service: svc,
	}
}

// ListMembers godoc
// @Summary List all members
// @Description Returns all directory members with their org loaded. Requires authentication.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the member list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [get]
func (c *MemberController) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := c.Service.ListMembers(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}

// GetMember godoc
// @Summary Get a member by ID
// @Description Returns one member with org and RSVP history loaded. Requires authentication.
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param memberID path int true "Member ID"
// @Success 200 {object} helpers.APIResponse "data contains the member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{memberID} [get]
func (c *MemberController) GetMember(w http.ResponseWriter, r *http.Request) {
	memberID, ok := parsePositiveInt(r.PathValue("memberID"))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "memberId must be a positive integer")
		return
	}
	member, err := c.Service.GetMember(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// CreateMember godoc
// @Summary Create a member
// @Description Add a person to an org's directory. Requires authentication.
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member body CreateMemberRequest true "Member data"
// @Success 201 {object} helpers.APIResponse "data contains the created member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users [post]
func (c *MemberController) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	member := &domain.Member{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(strings.ToLower(req.Email)),
		Role:     strings.TrimSpace(req.Role),
		Tags:     req.Tags,
		OrgID:    req.OrgID,
	}
	if err := c.Service.CreateMember(r.Context(), member); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}
