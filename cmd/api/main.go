package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/auth"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/background"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/bruteforce"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/config"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/database"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/handlers"
	middlewareCustom "github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/middleware"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/repositories"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/routes"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/services"
	pkglogger "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	loginAttemptRepo := repositories.NewLoginAttemptRepository(db)
	traineeRepo := repositories.NewTraineeRepository(db)
	trainerRepo := repositories.NewTrainerRepository(db)
	trainingRepo := repositories.NewTrainingRepository(db)
	trainingTypeRepo := repositories.NewTrainingTypeRepository(db)

	// Periodic purge of expired durable attempt rows
	cleanupManager := background.NewCleanupManager(loginAttemptRepo, logger, cfg.Auth.CleanupInterval)

	auditLogger := pkglogger.NewAuditLogger(logger)

	// Token codec
	codec, err := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Error("failed to initialize token codec", slog.Any("error", err))
		os.Exit(1)
	}

	// Brute-force protection: in-memory attempt store plus lockout guard,
	// mirrored to the login_attempts table for audit
	attemptStore := bruteforce.NewStore(cfg.Auth.AttemptCacheTTL, cfg.Auth.AttemptCacheMaxSize)
	attemptStore.OnEvict(func(username string, rec bruteforce.Record, reason bruteforce.EvictReason) {
		if reason == bruteforce.EvictCapacity {
			logger.Warn("attempt record evicted before expiry",
				slog.String("username", username))
		}
	})
	guard := bruteforce.NewGuard(attemptStore, bruteforce.Config{
		FailureThreshold: cfg.Auth.LoginFailureThreshold,
		LockoutDuration:  cfg.Auth.LockoutDuration,
	}, loginAttemptRepo, logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, guard, codec, logger, auditLogger)
	traineeService := services.NewTraineeService(userRepo, traineeRepo, logger, auditLogger)
	trainerService := services.NewTrainerService(userRepo, trainerRepo, trainingTypeRepo, logger, auditLogger)
	trainingService := services.NewTrainingService(trainingRepo, trainingTypeRepo, traineeRepo, trainerRepo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, nil)
	traineeHandler := handlers.NewTraineeHandler(traineeService)
	trainerHandler := handlers.NewTrainerHandler(trainerService)
	trainingHandler := handlers.NewTrainingHandler(trainingService)

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	router.Route("/api/v1", func(r chi.Router) {
		routes.RegisterRoutes(r, authHandler, traineeHandler, trainerHandler, trainingHandler, codec, userRepo, logger)
	})

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start cleanup task
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
