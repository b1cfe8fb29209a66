package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"moodliftAPI/handlers"
	"moodliftAPI/internal/notification"
	"moodliftAPI/internal/workers"
	"moodliftAPI/middleware"
	"moodliftAPI/services"

	_ "net/http/pprof"
)

var (
	dbPool              *pgxpool.Pool
	userService         *services.UserService
	notificationService *services.NotificationService
	rewardsService      *services.RewardsService
	streakService       *services.StreakService
	moodService         *services.MoodService
	progressService     *services.ProgressService
	contentService      *services.ContentService
	fcmService          *notification.FCMService
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	clerkSecretKey := os.Getenv("CLERK_SECRET_KEY")
	if clerkSecretKey == "" {
		log.Fatal("CLERK_SECRET_KEY environment variable is not set")
	}
	clerk.SetKey(clerkSecretKey)
	log.Println("Clerk initialized successfully")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		log.Fatal("Failed to parse database URL:", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err = pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("Failed to create connection pool:", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Successfully connected to database")

	userService = services.NewUserService(dbPool)
	notificationService = services.NewNotificationService(dbPool)
	rewardsService = services.NewRewardsService(dbPool, notificationService)
	streakService = services.NewStreakService(dbPool, rewardsService)
	moodService = services.NewMoodService(dbPool, rewardsService)
	progressService = services.NewProgressService(dbPool, rewardsService)
	contentService = services.NewContentService(dbPool)

	fcmService, err = notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	middleware.InitPrometheus()
}

func main() {
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	userHandler := handlers.NewUserHandler(userService)
	rewardsHandler := handlers.NewRewardsHandler(rewardsService)
	streakHandler := handlers.NewStreakHandler(streakService)
	moodHandler := handlers.NewMoodHandler(moodService)
	progressHandler := handlers.NewProgressHandler(progressService)
	contentHandler := handlers.NewContentHandler(contentService)
	adminHandler := handlers.NewAdminHandler(userService, contentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	webhookHandler := handlers.NewWebhookHandler(userService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()
	workers.StartStreakReminderWorker(dbPool, notificationService)

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "moodlift-api"}`))
	}).Methods("GET")

	r.HandleFunc("/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	// -------------------------------------------------------------------------
	// API V1 SUBROUTER
	// -------------------------------------------------------------------------
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public content surfaces
	api.HandleFunc("/books", contentHandler.GetBooks).Methods("GET")
	api.HandleFunc("/consultants", contentHandler.GetConsultants).Methods("GET")
	api.HandleFunc("/faqs", contentHandler.GetFAQs).Methods("GET")
	api.HandleFunc("/recommendations", moodHandler.GetRecommendations).Methods("GET")

	// -------------------------------------------------------------------------
	// PROTECTED ROUTES (REQUIRE AUTH HEADER)
	// -------------------------------------------------------------------------
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.ClerkAuthMiddleware)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user/update-profile", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user/delete-account", userHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/streak/check-in", streakHandler.CheckIn).Methods("POST")
	protected.HandleFunc("/streak", streakHandler.GetStreak).Methods("GET")

	protected.HandleFunc("/rewards/activity", rewardsHandler.RecordActivity).Methods("POST")
	protected.HandleFunc("/rewards", rewardsHandler.GetRewardsSummary).Methods("GET")
	protected.HandleFunc("/rewards/activities", rewardsHandler.GetActivities).Methods("GET")
	protected.HandleFunc("/rewards/badges", rewardsHandler.GetBadges).Methods("GET")
	protected.HandleFunc("/rewards/milestones", rewardsHandler.GetMilestones).Methods("GET")

	protected.HandleFunc("/mood", moodHandler.RecordMood).Methods("POST")
	protected.HandleFunc("/mood/today", moodHandler.GetTodayMood).Methods("GET")
	protected.HandleFunc("/mood/history", moodHandler.GetMoodHistory).Methods("GET")

	protected.HandleFunc("/progress/game-session", progressHandler.SaveGameSession).Methods("POST")
	protected.HandleFunc("/progress/assessment", progressHandler.SaveAssessmentResult).Methods("POST")
	protected.HandleFunc("/progress", progressHandler.GetUserProgress).Methods("GET")

	protected.HandleFunc("/notifications", notificationHandler.GetNotifications).Methods("GET")
	protected.HandleFunc("/notifications/unread-count", notificationHandler.GetUnreadCount).Methods("GET")
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/read-all", notificationHandler.MarkAllAsRead).Methods("PUT")
	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")

	// Admin content management
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/check", adminHandler.CheckAdmin).Methods("GET")
	admin.HandleFunc("/books", adminHandler.CreateBook).Methods("POST")
	admin.HandleFunc("/books/{id}", adminHandler.UpdateBook).Methods("PUT")
	admin.HandleFunc("/books/{id}", adminHandler.DeleteBook).Methods("DELETE")
	admin.HandleFunc("/consultants", adminHandler.CreateConsultant).Methods("POST")
	admin.HandleFunc("/consultants/{id}", adminHandler.UpdateConsultant).Methods("PUT")
	admin.HandleFunc("/consultants/{id}", adminHandler.DeleteConsultant).Methods("DELETE")
	admin.HandleFunc("/faqs", adminHandler.CreateFAQ).Methods("POST")
	admin.HandleFunc("/faqs/{id}", adminHandler.UpdateFAQ).Methods("PUT")
	admin.HandleFunc("/faqs/{id}", adminHandler.DeleteFAQ).Methods("DELETE")
	admin.HandleFunc("/faqs/seed", adminHandler.SeedFAQs).Methods("POST")

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins([]string{"*"}),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3333"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
