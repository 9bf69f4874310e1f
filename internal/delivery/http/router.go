package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	conferenceController *controllers.ConferenceController,
	attendeeController *controllers.AttendeeController,
	sessionController *controllers.SessionController,
	wishlistController *controllers.WishlistController,
	announcementController *controllers.AnnouncementController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Profile
	mux.HandleFunc("GET /profile", auth(profileController.GetProfile))
	mux.HandleFunc("PUT /profile", auth(profileController.SaveProfile))

	// Conferences
	mux.HandleFunc("POST /conferences", auth(conferenceController.CreateConference))
	mux.HandleFunc("POST /conferences/query", auth(conferenceController.QueryConferences))
	mux.HandleFunc("GET /conferences/created", auth(conferenceController.ListConferencesCreated))
	mux.HandleFunc("GET /conferences/attending", auth(attendeeController.ListAttending))
	mux.HandleFunc("GET /conferences/{conferenceID}", auth(conferenceController.GetConference))
	mux.HandleFunc("PATCH /conferences/{conferenceID}", auth(conferenceController.UpdateConference))

	// Registration
	mux.HandleFunc("POST /conferences/{conferenceID}/registration", auth(attendeeController.Register))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/registration", auth(attendeeController.Unregister))

	// Sessions
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions", auth(sessionController.CreateSession))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions", auth(sessionController.ListSessions))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions/type/{typeOfSession}", auth(sessionController.ListSessionsByType))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions/duration", auth(sessionController.ListSessionsByDuration))
	mux.HandleFunc("GET /conferences/{conferenceID}/schedule", auth(sessionController.GetSchedule))
	mux.HandleFunc("GET /sessions/speaker", auth(sessionController.ListSessionsBySpeaker))
	mux.HandleFunc("GET /sessions/early-nonworkshop", auth(sessionController.ListEarlyNonWorkshops))

	// Wishlist
	mux.HandleFunc("GET /sessions/wishlist", auth(wishlistController.ListWishlist))
	mux.HandleFunc("POST /sessions/{sessionID}/wishlist", auth(wishlistController.AddToWishlist))
	mux.HandleFunc("DELETE /sessions/{sessionID}/wishlist", auth(wishlistController.RemoveFromWishlist))

	// Announcements (public)
	mux.HandleFunc("GET /announcement", announcementController.GetAnnouncement)
	mux.HandleFunc("GET /featured-speaker", announcementController.GetFeaturedSpeaker)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
