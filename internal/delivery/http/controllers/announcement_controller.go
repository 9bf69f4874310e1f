package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// AnnouncementResponse is the data payload for the announcement and
// featured-speaker endpoints. Message is "" when nothing is cached.
type AnnouncementResponse struct {
	Message string `json:"message"`
}

// AnnouncementSuccessResponse is the success response envelope for
// GET /announcement and GET /featured-speaker (200).
type AnnouncementSuccessResponse struct {
	Data  AnnouncementResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type AnnouncementController struct {
	Logger  *slog.Logger
	Service domain.CacheRefreshService
}

func NewAnnouncementController(logger *slog.Logger, svc domain.CacheRefreshService) *AnnouncementController {
	return &AnnouncementController{
		Logger:  logger,
		Service: svc,
	}
}

// GetAnnouncement godoc
// @Summary Get the current announcement
// @Description Returns the cached nearly-sold-out announcement, or an empty message when none is set.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.AnnouncementSuccessResponse "data contains the announcement message"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /announcement [get]
func (c *AnnouncementController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	message, err := c.Service.GetAnnouncement(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AnnouncementResponse{Message: message})
}

// GetFeaturedSpeaker godoc
// @Summary Get the current featured speaker notice
// @Description Returns the cached featured-speaker notice, or an empty message when none is set.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.AnnouncementSuccessResponse "data contains the featured speaker message"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /featured-speaker [get]
func (c *AnnouncementController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	message, err := c.Service.GetFeaturedSpeaker(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AnnouncementResponse{Message: message})
}
