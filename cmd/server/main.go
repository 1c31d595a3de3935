package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AyushPal0/Mental-Wellness/internal/config"
	"github.com/AyushPal0/Mental-Wellness/internal/database"
	"github.com/AyushPal0/Mental-Wellness/internal/game"
	"github.com/AyushPal0/Mental-Wellness/internal/handlers"
	"github.com/AyushPal0/Mental-Wellness/internal/jobs"
	"github.com/AyushPal0/Mental-Wellness/internal/realtime"
	"github.com/AyushPal0/Mental-Wellness/internal/repository"
	"github.com/AyushPal0/Mental-Wellness/internal/scheduler"
	"github.com/AyushPal0/Mental-Wellness/internal/services"
	"github.com/AyushPal0/Mental-Wellness/pkg/email"
	"github.com/AyushPal0/Mental-Wellness/pkg/logger"
	"github.com/AyushPal0/Mental-Wellness/pkg/metrics"
	"github.com/AyushPal0/Mental-Wellness/pkg/middleware"
	"github.com/AyushPal0/Mental-Wellness/pkg/sanitize"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(cfg)
	if err != nil {
		logger.Log.Fatalf("Database connection error: %v", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Client().Disconnect(dctx); err != nil {
			logger.Log.WithError(err).Warn("MongoDB disconnect failed")
		}
	}()

	ictx, cancel := context.WithTimeout(ctx, 30*time.Second)
	if err := database.EnsureIndexes(ictx, db); err != nil {
		logger.Log.WithError(err).Warn("Failed to ensure indexes")
	}
	cancel()

	sessions := newSessionStore(cfg)

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	hub := realtime.NewHub(collector)
	go hub.Run(ctx)

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	postRepo := repository.NewPostRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	gameResultRepo := repository.NewGameResultRepository(db)
	personalityRepo := repository.NewPersonalityRepository(db)
	riskEventRepo := repository.NewRiskEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// --- Services ---
	sanitizer := sanitize.New()
	mailer := email.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPSender, cfg.SMTPPassword)

	activityService := services.NewActivityService(activityRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo, taskRepo)
	userService := services.NewUserService(userRepo, sanitizer, cfg.JWTSecret, cfg.TokenExpiry)
	communityService := services.NewCommunityService(postRepo, userRepo, hub, sanitizer, notificationService, activityService)
	friendService := services.NewFriendService(friendRepo, userRepo, notificationService)
	taskService := services.NewTaskService(taskRepo, userRepo, activityService, sanitizer)
	personalityService := services.NewPersonalityService(personalityRepo, userRepo, activityService)
	gameService := services.NewGameService(sessions, gameResultRepo, activityService, collector)
	safetyService := services.NewSafetyService(riskEventRepo, notificationService, mailer, cfg.SafetyAlertEmail, sanitizer, collector)
	onboardingService := services.NewOnboardingService(userRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	friendHandler := handlers.NewFriendHandler(friendService)
	taskHandler := handlers.NewTaskHandler(taskService)
	personalityHandler := handlers.NewPersonalityHandler(personalityService)
	gameHandler := handlers.NewGameHandler(gameService)
	safetyHandler := handlers.NewSafetyHandler(safetyService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	activityHandler := handlers.NewActivityHandler(activityService)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, db) }, hub)
	wsHandler := handlers.NewWSHandler(hub, cfg.JWTSecret, cfg.AllowedOrigins)

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(cfg.RateLimitRPS),
		Burst: cfg.RateLimitBurst,
	})
	defer limiter.Stop()

	// Initialize Gorilla Mux router
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.MetricsMiddleware(collector))

	router.HandleFunc("/", healthHandler.HealthHandler).Methods("GET")
	router.Handle("/metrics", metrics.Handler(registry)).Methods("GET")
	router.HandleFunc("/ws", wsHandler.ServeWS).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Public auth routes
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.Use(limiter.Middleware)
	authRoutes.HandleFunc("/signup", userHandler.SignupHandler).Methods("POST")
	authRoutes.HandleFunc("/login", userHandler.LoginHandler).Methods("POST")

	// Public game and quiz routes
	api.HandleFunc("/game/check-placement", gameHandler.CheckPlacementHandler).Methods("POST")
	api.HandleFunc("/game/leaderboard", gameHandler.LeaderboardHandler).Methods("GET")
	api.HandleFunc("/personality/questions", personalityHandler.GetQuestionsHandler).Methods("GET")

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.Use(limiter.Middleware)
	protected.Use(middleware.UpdateLastActiveMiddleware(userRepo))

	// User routes
	protected.HandleFunc("/users/me", userHandler.GetMeHandler).Methods("GET")
	protected.HandleFunc("/users/me", userHandler.UpdateMeHandler).Methods("PATCH")
	protected.HandleFunc("/users/{id}", userHandler.GetUserHandler).Methods("GET")

	// Community routes
	protected.HandleFunc("/community/posts", communityHandler.CreatePostHandler).Methods("POST")
	protected.HandleFunc("/community/posts", communityHandler.GetPostsHandler).Methods("GET")
	protected.HandleFunc("/community/posts/{id}", communityHandler.GetPostHandler).Methods("GET")
	protected.HandleFunc("/community/posts/{id}", communityHandler.DeletePostHandler).Methods("DELETE")
	protected.HandleFunc("/community/posts/{id}/like", communityHandler.ToggleLikeHandler).Methods("POST")
	protected.HandleFunc("/community/posts/{id}/comments", communityHandler.AddCommentHandler).Methods("POST")

	// Friend routes
	protected.HandleFunc("/friends", friendHandler.GetFriendsHandler).Methods("GET")
	protected.HandleFunc("/friends/search", friendHandler.SearchUsersHandler).Methods("GET")
	protected.HandleFunc("/friends/requests", friendHandler.GetFriendRequestsHandler).Methods("GET")
	protected.HandleFunc("/friends/requests/{id}", friendHandler.SendFriendRequestHandler).Methods("POST")
	protected.HandleFunc("/friends/requests/{id}/respond", friendHandler.RespondToRequestHandler).Methods("POST")
	protected.HandleFunc("/friends/{id}", friendHandler.RemoveFriendHandler).Methods("DELETE")

	// Task routes
	protected.HandleFunc("/tasks", taskHandler.CreateTaskHandler).Methods("POST")
	protected.HandleFunc("/tasks", taskHandler.GetTasksHandler).Methods("GET")
	protected.HandleFunc("/tasks/suggestion", taskHandler.GetSuggestionHandler).Methods("GET")
	protected.HandleFunc("/tasks/{id}", taskHandler.UpdateTaskHandler).Methods("PUT")
	protected.HandleFunc("/tasks/{id}", taskHandler.DeleteTaskHandler).Methods("DELETE")

	// Personality routes
	protected.HandleFunc("/personality/submit", personalityHandler.SubmitHandler).Methods("POST")
	protected.HandleFunc("/personality/me", personalityHandler.GetPersonalityHandler).Methods("GET")

	// Game routes
	protected.HandleFunc("/game/start", gameHandler.StartGameHandler).Methods("POST")
	protected.HandleFunc("/game/action", gameHandler.RecordActionHandler).Methods("POST")
	protected.HandleFunc("/game/complete", gameHandler.CompleteGameHandler).Methods("POST")
	protected.HandleFunc("/game/results", gameHandler.ResultsHandler).Methods("GET")

	// Safety routes
	protected.HandleFunc("/safety/risk-event", safetyHandler.RiskEventHandler).Methods("POST")
	protected.HandleFunc("/safety/history", safetyHandler.HistoryHandler).Methods("GET")

	// Onboarding routes
	protected.HandleFunc("/onboarding/status", onboardingHandler.StatusHandler).Methods("GET")
	protected.HandleFunc("/onboarding/update", onboardingHandler.UpdateHandler).Methods("POST")
	protected.HandleFunc("/onboarding/assign-game", onboardingHandler.AssignGameHandler).Methods("POST")

	// Notification and activity routes
	protected.HandleFunc("/notifications", notificationHandler.GetNotificationsHandler).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsReadHandler).Methods("POST")
	protected.HandleFunc("/notifications/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")
	protected.HandleFunc("/activity", activityHandler.GetActivitiesHandler).Methods("GET")

	// Background jobs
	crons, err := scheduler.New(ctx, jobs.NewMaintenance(notificationService, gameService))
	if err != nil {
		logger.Log.Fatalf("Scheduler setup error: %v", err)
	}
	crons.Start()

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	<-crons.Stop().Done()

	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
}

// newSessionStore shares game sessions through Redis when REDIS_URL is set.
func newSessionStore(cfg *config.Config) game.SessionStore {
	if cfg.RedisURL == "" {
		logger.Log.Info("REDIS_URL not set, keeping game sessions in memory")
		return game.NewMemoryStore(cfg.GameSessionTTL)
	}

	client, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatalf("Redis connection error: %v", err)
	}
	return game.NewRedisStore(client, cfg.GameSessionTTL)
}
