package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/adapters/queue"
	httpdelivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
	"conferencecentral/internal/worker"
)

const serviceTimeout = 10 * time.Second

// main wires dependencies, starts the background worker, and runs the HTTP
// server with graceful shutdown. Business logic lives in internal/services.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	redisClient, err := cache.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	mailer, err := email.NewMailer(cfg.Email)
	if err != nil {
		logger.Error("failed to initialize mailer", "err", err)
		os.Exit(1)
	}

	// Repositories and adapters.
	profileRepo := postgres.NewProfileRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	wishlistRepo := postgres.NewWishlistRepository(db)
	cacheStore := cache.NewRedisCache(redisClient)
	taskQueue := queue.NewRedisQueue(redisClient)

	// Services.
	authService := services.NewAuthService(profileRepo, cfg.JWTSecret, cfg.JWTExpiry)
	profileService := services.NewProfileService(profileRepo, serviceTimeout)
	conferenceService := services.NewConferenceService(conferenceRepo, profileRepo, taskQueue, logger, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, conferenceRepo, profileRepo, taskQueue, logger, serviceTimeout)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, wishlistRepo, taskQueue, logger, serviceTimeout)
	wishlistService := services.NewWishlistService(wishlistRepo, sessionRepo, serviceTimeout)
	cacheRefreshService := services.NewCacheRefreshService(cacheStore, conferenceRepo, sessionRepo, serviceTimeout)
	emailService := services.NewEmailService(mailer)

	// Controllers.
	authController := controllers.NewAuthController(logger, authService)
	profileController := controllers.NewProfileController(logger, profileService)
	conferenceController := controllers.NewConferenceController(logger, conferenceService)
	attendeeController := controllers.NewAttendeeController(logger, registrationService)
	sessionController := controllers.NewSessionController(logger, sessionService)
	wishlistController := controllers.NewWishlistController(logger, wishlistService)
	announcementController := controllers.NewAnnouncementController(logger, cacheRefreshService)

	mux := httpdelivery.NewRouter(
		authService,
		authController,
		profileController,
		conferenceController,
		attendeeController,
		sessionController,
		wishlistController,
		announcementController,
	)
	var handler http.Handler = mux
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bg := worker.New(taskQueue, cacheRefreshService, emailService, logger, cfg.AnnouncementRefreshInterval)
	go func() {
		if err := bg.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("worker stopped", "err", err)
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}
	go func() {
		logger.Info("starting server", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
