package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// CreateSessionRequest is the request body for POST /conferences/{conferenceID}/sessions.
// Omitted optional fields receive server-side defaults; start_time is an HHMM
// integer and invalid times are stored as 0.
type CreateSessionRequest struct {
	Name          string `json:"name"`
	Highlights    string `json:"highlights"`
	Speaker       string `json:"speaker"`
	TypeOfSession string `json:"type_of_session"`
	Date          string `json:"date"`
	StartTime     *int   `json:"start_time"`
	Duration      *int   `json:"duration"`
}

// Validate implements Validator.
func (c CreateSessionRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Date != "" {
		if _, err := time.Parse(dateLayout, c.Date); err != nil {
			errs = append(errs, "date must be formatted as YYYY-MM-DD")
		}
	}
	if c.Duration != nil && *c.Duration < 0 {
		errs = append(errs, "duration must be non-negative")
	}
	return errs
}

func (c CreateSessionRequest) toInput() *domain.SessionInput {
	in := &domain.SessionInput{
		Name:          c.Name,
		Highlights:    c.Highlights,
		Speaker:       c.Speaker,
		TypeOfSession: c.TypeOfSession,
		StartTime:     c.StartTime,
		Duration:      c.Duration,
	}
	if c.Date != "" {
		if t, err := time.Parse(dateLayout, c.Date); err == nil {
			in.Date = &t
		}
	}
	return in
}

// CreateSessionSuccessResponse is the success response envelope for POST /conferences/{conferenceID}/sessions (201).
type CreateSessionSuccessResponse struct {
	Data  *domain.Session   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSessionsSuccessResponse is the success response envelope for session
// listing endpoints (200).
type ListSessionsSuccessResponse struct {
	Data  []*domain.Session `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Create a session in a conference
// @Description Creates a session. Only the conference owner can add sessions. Omitted highlights, speaker, duration and start_time receive defaults; the session type is stored upper-cased. Requires authentication.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param body body CreateSessionRequest true "Session data"
// @Success 201 {object} controllers.CreateSessionSuccessResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if !uuidRegex.MatchString(conferenceID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid conferenceID")
		return
	}
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	session, err := c.Service.CreateSession(r.Context(), userID, conferenceID, req.toInput())
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
	helpers.WriteJSONSuccess(w, http.StatusCreated, session)
}

// ListSessions godoc
// @Summary List sessions of a conference
// @Description Returns all sessions belonging to the conference. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions [get]
func (c *SessionController) ListSessions(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if !uuidRegex.MatchString(conferenceID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid conferenceID")
		return
	}
	sessions, err := c.Service.ListConferenceSessions(r.Context(), conferenceID)
	if err != nil {
		c.writeListError(w, r, err)
		return
	}
	c.writeSessions(w, sessions)
}

// ListSessionsByType godoc
// @Summary List sessions of a conference by type
// @Description Returns the conference's sessions matching the given type (case-insensitive). Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param typeOfSession path string true "Session type (e.g. WORKSHOP, KEYNOTE)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions/type/{typeOfSession} [get]
func (c *SessionController) ListSessionsByType(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	typeOfSession := r.PathValue("typeOfSession")
	if !uuidRegex.MatchString(conferenceID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid conferenceID")
		return
	}
	if typeOfSession == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing typeOfSession")
		return
	}
	sessions, err := c.Service.ListSessionsByType(r.Context(), conferenceID, typeOfSession)
	if err != nil {
		c.writeListError(w, r, err)
		return
	}
	c.writeSessions(w, sessions)
}

// ListSessionsByDuration godoc
// @Summary List sessions of a conference by duration range
// @Description Returns the conference's sessions whose duration lies strictly between min and max minutes, ordered by duration. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Param min query int true "Exclusive lower duration bound (minutes)"
// @Param max query int true "Exclusive upper duration bound (minutes)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/sessions/duration [get]
func (c *SessionController) ListSessionsByDuration(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if !uuidRegex.MatchString(conferenceID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid conferenceID")
		return
	}
	minDuration, err1 := strconv.Atoi(r.URL.Query().Get("min"))
	maxDuration, err2 := strconv.Atoi(r.URL.Query().Get("max"))
	if err1 != nil || err2 != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "min and max must be integers")
		return
	}
	sessions, err := c.Service.ListSessionsByDuration(r.Context(), conferenceID, minDuration, maxDuration)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.writeListError(w, r, err)
		return
	}
	c.writeSessions(w, sessions)
}

// ListSessionsBySpeaker godoc
// @Summary List sessions by speaker across all conferences
// @Description Returns every session given by the named speaker, regardless of conference. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param speaker query string true "Speaker name (exact match)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/speaker [get]
func (c *SessionController) ListSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speaker := strings.TrimSpace(r.URL.Query().Get("speaker"))
	if speaker == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speaker")
		return
	}
	sessions, err := c.Service.ListSessionsBySpeaker(r.Context(), speaker)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	c.writeSessions(w, sessions)
}

// ListEarlyNonWorkshops godoc
// @Summary List non-workshop sessions starting before 19:00
// @Description Returns sessions across all conferences that start before 19:00 and are not workshops, ordered by start time. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data is an array of sessions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/early-nonworkshop [get]
func (c *SessionController) ListEarlyNonWorkshops(w http.ResponseWriter, r *http.Request) {
	sessions, err := c.Service.ListNonWorkshopSessionsBeforeSeven(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	c.writeSessions(w, sessions)
}

// GetSchedule godoc
// @Summary Get the caller's schedule for a conference
// @Description Returns the caller's wishlisted sessions within the conference, ordered by date and start time. Requires authentication.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID (UUID)"
// @Success 200 {object} controllers.ListSessionsSuccessResponse "data is an array of sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences/{conferenceID}/schedule [get]
func (c *SessionController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if !uuidRegex.MatchString(conferenceID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid conferenceID")
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sessions, err := c.Service.GetConferenceSchedule(r.Context(), userID, conferenceID)
	if err != nil {
		c.writeListError(w, r, err)
		return
	}
	c.writeSessions(w, sessions)
}

func (c *SessionController) writeListError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "conference not found")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

func (c *SessionController) writeSessions(w http.ResponseWriter, sessions []*domain.Session) {
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}
