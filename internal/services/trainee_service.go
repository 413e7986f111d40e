package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	pkgauth "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/auth"
	pkglogger "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/logger"
)

// AccountRepository covers the user-table operations registration and profile
// lifecycle need.
type AccountRepository interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	SetActive(ctx context.Context, username string, active bool) error
	Delete(ctx context.Context, username string) error
}

// TraineeProfileRepository persists the trainee-specific part of a profile.
type TraineeProfileRepository interface {
	CreateProfile(ctx context.Context, userID string, dateOfBirth *time.Time, address *string) error
	GetByUsername(ctx context.Context, username string) (*models.Trainee, error)
	UpdateProfile(ctx context.Context, username string, dateOfBirth *time.Time, address *string) error
}

// RegistrationResult carries the credentials issued at registration time. The
// plain password appears here and nowhere else; it is not stored or logged.
type RegistrationResult struct {
	Username string
	Password string
}

// TraineeService manages trainee registration and profiles.
type TraineeService struct {
	accounts    AccountRepository
	trainees    TraineeProfileRepository
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewTraineeService creates a new TraineeService
func NewTraineeService(accounts AccountRepository, trainees TraineeProfileRepository, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *TraineeService {
	return &TraineeService{
		accounts:    accounts,
		trainees:    trainees,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Register creates a trainee account with a derived username and a generated
// password, and returns both.
func (s *TraineeService) Register(ctx context.Context, firstName, lastName string, dateOfBirth *time.Time, address *string) (*RegistrationResult, error) {
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
		Role:         models.RoleTrainee,
		Active:       true,
	})
	if err != nil {
		s.logger.Error("failed to create trainee account", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := s.trainees.CreateProfile(ctx, user.ID, dateOfBirth, address); err != nil {
		s.logger.Error("failed to create trainee profile", slog.String("username", username), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.auditLogger.LogAccountAction("trainee_registered", username, map[string]string{"role": models.RoleTrainee})

	return &RegistrationResult{Username: username, Password: password}, nil
}

// GetProfile returns the trainee profile for a username.
func (s *TraineeService) GetProfile(ctx context.Context, username string) (*models.Trainee, error) {
	trainee, err := s.trainees.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get trainee profile", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return trainee, nil
}

// UpdateProfile updates the mutable trainee fields.
func (s *TraineeService) UpdateProfile(ctx context.Context, username string, dateOfBirth *time.Time, address *string) error {
	if err := s.trainees.UpdateProfile(ctx, username, dateOfBirth, address); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to update trainee profile", slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

// SetActive toggles the account's active flag.
func (s *TraineeService) SetActive(ctx context.Context, username string, active bool) error {
	if err := s.accounts.SetActive(ctx, username, active); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to set trainee active flag", slog.Any("error", err))
		return models.ErrInternalServer
	}
	event := "trainee_deactivated"
	if active {
		event = "trainee_activated"
	}
	s.auditLogger.LogAccountAction(event, username, nil)
	return nil
}

// Delete removes the trainee account. The profile row goes with it via the
// foreign key cascade.
func (s *TraineeService) Delete(ctx context.Context, username string) error {
	if err := s.accounts.Delete(ctx, username); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete trainee", slog.Any("error", err))
		return models.ErrInternalServer
	}
	s.auditLogger.LogAccountAction("trainee_deleted", username, nil)
	return nil
}
