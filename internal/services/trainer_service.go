package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	pkgauth "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/auth"
	pkglogger "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/logger"
)

// TrainerProfileRepository persists the trainer-specific part of a profile.
type TrainerProfileRepository interface {
	CreateProfile(ctx context.Context, userID, specializationID string) error
	GetByUsername(ctx context.Context, username string) (*models.Trainer, error)
	UpdateSpecialization(ctx context.Context, username, specializationID string) error
}

// SpecializationLookup resolves training type names to catalog entries.
type SpecializationLookup interface {
	GetByName(ctx context.Context, name string) (*models.TrainingType, error)
}

// TrainerService manages trainer registration and profiles.
type TrainerService struct {
	accounts        AccountRepository
	trainers        TrainerProfileRepository
	specializations SpecializationLookup
	logger          *slog.Logger
	auditLogger     *pkglogger.AuditLogger
}

// NewTrainerService creates a new TrainerService
func NewTrainerService(accounts AccountRepository, trainers TrainerProfileRepository, specializations SpecializationLookup, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *TrainerService {
	return &TrainerService{
		accounts:        accounts,
		trainers:        trainers,
		specializations: specializations,
		logger:          logger,
		auditLogger:     auditLogger,
	}
}

// Register creates a trainer account with a derived username, a generated
// password, and a specialization resolved from the training type catalog.
func (s *TrainerService) Register(ctx context.Context, firstName, lastName, specialization string) (*RegistrationResult, error) {
	spec, err := s.specializations.GetByName(ctx, specialization)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrBadRequest
		}
		s.logger.Error("failed to resolve specialization", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	username, err := deriveUsername(ctx, s.accounts, firstName, lastName)
	if err != nil {
		s.logger.Error("failed to derive username", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	password, err := pkgauth.GeneratePassword()
	if err != nil {
		s.logger.Error("failed to generate password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	passwordHash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user, err := s.accounts.Create(ctx, &models.User{
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		Role:         models.RoleTrainer,
		Active:       true,
	})
	if err != nil {
		s.logger.Error("failed to create trainer account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := s.trainers.CreateProfile(ctx, user.ID, spec.ID); err != nil {
		s.logger.Error("failed to create trainer profile", slog.String("username", username), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("trainer_registered", username, map[string]string{
		"role":           models.RoleTrainer,
		"specialization": spec.Name,
	})

	return &RegistrationResult{Username: username, Password: password}, nil
}

// GetProfile returns the trainer profile for a username.
func (s *TrainerService) GetProfile(ctx context.Context, username string) (*models.Trainer, error) {
	trainer, err := s.trainers.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get trainer profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return trainer, nil
}

// UpdateSpecialization changes the trainer's specialization, validating the
// new one against the catalog first.
func (s *TrainerService) UpdateSpecialization(ctx context.Context, username, specialization string) error {
	spec, err := s.specializations.GetByName(ctx, specialization)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrBadRequest
		}
		s.logger.Error("failed to resolve specialization", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.trainers.UpdateSpecialization(ctx, username, spec.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to update trainer specialization", slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

// SetActive toggles the account's active flag.
func (s *TrainerService) SetActive(ctx context.Context, username string, active bool) error {
	if err := s.accounts.SetActive(ctx, username, active); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to set trainer active flag", slog.Any("error", err))
		return models.ErrInternalServer
	}
	event := "trainer_deactivated"
	if active {
		event = "trainer_activated"
	}
	s.auditLogger.LogAccountAction(event, username, nil)
	return nil
}
