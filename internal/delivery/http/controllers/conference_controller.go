package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

// dateLayout is the wire format for conference start and end dates.
const dateLayout = "2006-01-02"

// CreateConferenceRequest is the request body for POST /conferences.
// Omitted optional fields receive server-side defaults.
type CreateConferenceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	City         string   `json:"city"`
	Topics       []string `json:"topics"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees *int     `json:"max_attendees"`
}

// Validate implements Validator.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.StartDate != "" {
		if _, err := time.Parse(dateLayout, c.StartDate); err != nil {
			errs = append(errs, "start_date must be formatted as YYYY-MM-DD")
		}
	}
	if c.EndDate != "" {
		if _, err := time.Parse(dateLayout, c.EndDate); err != nil {
			errs = append(errs, "end_date must be formatted as YYYY-MM-DD")
		}
	}
	if c.MaxAttendees != nil && *c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must be non-negative")
	}
	return errs
}

func (c CreateConferenceRequest) toInput() *domain.ConferenceInput {
	in := &domain.ConferenceInput{
		Name:         c.Name,
		Description:  c.Description,
		City:         c.City,
		Topics:       c.Topics,
		MaxAttendees: c.MaxAttendees,
	}
	if c.StartDate != "" {
		if t, err := time.Parse(dateLayout, c.StartDate); err == nil {
			in.StartDate = &t
		}
	}
	if c.EndDate != "" {
		if t, err := time.Parse(dateLayout, c.EndDate); err == nil {
			in.EndDate = &t
		}
	}
	return in
}

// CreateConferenceSuccessResponse is the success response envelope for POST /conferences (201).
type CreateConferenceSuccessResponse struct {
	Data  *domain.Conference `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetConferenceSuccessResponse is the success response envelope for GET /conferences/{conferenceID} (200).
type GetConferenceSuccessResponse struct {
	Data  *domain.ConferenceWithOrganizer `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

// ListConferencesSuccessResponse is the success response envelope for
// conference listing endpoints (200).
type ListConferencesSuccessResponse struct {
	Data  []*domain.ConferenceWithOrganizer `json:"data"`
	Error *helpers.APIError                 `json:"error"`
}

// QueryConferencesRequest is the request body for POST /conferences/query.
type QueryConferencesRequest struct {
	Filters []query.Filter `json:"filters"`
}

// Validate implements Validator. Filter semantics are checked by the query
// compiler; only structural rules live here.
func (q QueryConferencesRequest) Validate() []string {
	var errs []string
	for _, f := range q.Filters {
		if f.Field == "" || f.Operator == "" {
			errs = append(errs, "each filter requires field and operator")
			break
		}
	}
	return errs
}

type ConferenceController struct {
	Logger  *slog.Logger
	Service domain.ConferenceService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService) *ConferenceController {
	return &ConferenceController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateConference godoc
// @Summary Create a new conference
// @Description Creates a conference owned by the caller. Omitted city, topics and max_attendees receive defaults; seats available starts at capacity. A confirmation email is sent asynchronously. Requires authentication.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateConferenceRequest true "Conference data"
// @Success 201 {object} controllers.CreateConferenceSuccessResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conf, err := c.Service.CreateConference(r.Context(), userID, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, conf)
}

// GetConference godoc
// @Summary Get a conference by ID
// @Description Returns the conference along with its organizer's display name. Requires authentication.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} controllers.GetConferenceSuccessResponse "data contains conference and organizer"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if !uuidRegex.MatchString(conferenceID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid conferenceID")
		return
	}
	result, err := c.Service.GetConference(r.Context(), conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Updates conference fields. Only the owner can update; omitted fields are unchanged and month is recomputed when start_date changes. Requires authentication.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param body body CreateConferenceRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.CreateConferenceSuccessResponse "data contains the updated conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID} [patch]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if !uuidRegex.MatchString(conferenceID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid conferenceID")
		return
	}
	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conf, err := c.Service.UpdateConference(r.Context(), userID, conferenceID, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
			return
		}
		if errors.Is(err, domain.ErrForbidden) {
			helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
			return
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// UpdateConferenceRequest is the request body for PATCH /conferences/{conferenceID}.
// All fields are optional; omitted fields are unchanged.
type UpdateConferenceRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Topics      []string `json:"topics"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
}

// Validate implements Validator.
func (u UpdateConferenceRequest) Validate() []string {
	var errs []string
	if u.StartDate != "" {
		if _, err := time.Parse(dateLayout, u.StartDate); err != nil {
			errs = append(errs, "start_date must be formatted as YYYY-MM-DD")
		}
	}
	if u.EndDate != "" {
		if _, err := time.Parse(dateLayout, u.EndDate); err != nil {
			errs = append(errs, "end_date must be formatted as YYYY-MM-DD")
		}
	}
	return errs
}

func (u UpdateConferenceRequest) toInput() *domain.ConferenceInput {
	in := &domain.ConferenceInput{
		Name:        u.Name,
		Description: u.Description,
		City:        u.City,
		Topics:      u.Topics,
	}
	if u.StartDate != "" {
		if t, err := time.Parse(dateLayout, u.StartDate); err == nil {
			in.StartDate = &t
		}
	}
	if u.EndDate != "" {
		if t, err := time.Parse(dateLayout, u.EndDate); err == nil {
			in.EndDate = &t
		}
	}
	return in
}

// QueryConferences godoc
// @Summary Query conferences with filters
// @Description Returns conferences matching all filters (AND semantics). Fields: CITY, TOPIC, MONTH, MAX_ATTENDEES. Operators: EQ, GT, GTEQ, LT, LTEQ, NE. At most one field may use an inequality operator. Requires authentication.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body QueryConferencesRequest true "Filter list (may be empty)"
// @Success 200 {object} controllers.ListConferencesSuccessResponse "data is an array of conferences with organizers"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid filter or multiple inequality fields)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	results, err := c.Service.QueryConferences(r.Context(), req.Filters)
	if err != nil {
		if errors.Is(err, query.ErrInvalidFilter) || errors.Is(err, query.ErrMultipleInequalityFields) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if results == nil {
		results = []*domain.ConferenceWithOrganizer{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, results)
}

// ListConferencesCreated godoc
// @Summary List conferences created by the caller
// @Description Returns conferences where the authenticated user is the owner. Requires authentication.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListConferencesSuccessResponse "data is an array of conferences with organizers"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/created [get]
func (c *ConferenceController) ListConferencesCreated(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	results, err := c.Service.ListConferencesCreated(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if results == nil {
		results = []*domain.ConferenceWithOrganizer{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, results)
}
