package routes

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/auth"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/handlers"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	traineeHandler *handlers.TraineeHandler,
	trainerHandler *handlers.TrainerHandler,
	trainingHandler *handlers.TrainingHandler,
	codec *auth.TokenCodec,
	accounts auth.AccountLookup,
	logger *slog.Logger,
) {
	// Rate limiting config for unauthenticated endpoints
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes - no authentication required
	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(rateLimitConfig))
		r.Post("/auth/login", authHandler.Login)
		r.Post("/trainees", traineeHandler.Register)
		r.Post("/trainers", trainerHandler.Register)
	})

	// Protected routes - authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticator(codec, accounts, logger))
		r.Use(auth.RequireAuthenticated)

		r.Put("/auth/password", authHandler.ChangePassword)

		r.Get("/trainees/{username}", traineeHandler.GetProfile)
		r.Put("/trainees/{username}", traineeHandler.UpdateProfile)
		r.Patch("/trainees/{username}/status", traineeHandler.SetActive)
		r.Delete("/trainees/{username}", traineeHandler.Delete)

		r.Get("/trainers/{username}", trainerHandler.GetProfile)
		r.Put("/trainers/{username}", trainerHandler.UpdateSpecialization)
		r.Patch("/trainers/{username}/status", trainerHandler.SetActive)

		r.Post("/trainings", trainingHandler.Create)
		r.Get("/trainees/{username}/trainings", trainingHandler.ListForTrainee)
		r.Get("/trainers/{username}/trainings", trainingHandler.ListForTrainer)
		r.Get("/training-types", trainingHandler.ListTypes)
	})
}
