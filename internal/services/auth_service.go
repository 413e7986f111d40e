package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/auth"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/bruteforce"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
	pkgauth "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/auth"
	pkglogger "github.com/amangusss/EPAM-WCA25-gym-application-sub001/pkg/logger"
)

// UserRepository is the credential collaborator: account lookup and password
// persistence. Password hashing and storage are entirely its concern.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// LoginGuard is the brute-force protection consulted around every credential
// check.
type LoginGuard interface {
	IsBlocked(username string) bool
	RegisterFailure(ctx context.Context, username string) bruteforce.Record
	RegisterSuccess(ctx context.Context, username string)
	RemainingAttempts(username string) int
}

// AuthService orchestrates login and password changes. Credential mismatches
// and unknown usernames are deliberately indistinguishable to callers.
type AuthService struct {
	users       UserRepository
	guard       LoginGuard
	codec       *auth.TokenCodec
	logger      *slog.Logger
	auditLogger *pkglogger.AuditLogger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserRepository, guard LoginGuard, codec *auth.TokenCodec, logger *slog.Logger, auditLogger *pkglogger.AuditLogger) *AuthService {
	return &AuthService{
		users:       users,
		guard:       guard,
		codec:       codec,
		logger:      logger,
		auditLogger: auditLogger,
	}
}

// Login authenticates a user and returns a signed session token.
// The lockout gate runs before any credential work: a locked account is
// rejected without touching password hashes, even when the password is right.
func (s *AuthService) Login(ctx context.Context, username, password, ipAddress string) (string, error) {
	if username = strings.TrimSpace(username); username == "" {
		s.logger.Warn("login attempt with empty username")
		return "", models.ErrUnauthorized
	}

	if s.guard.IsBlocked(username) {
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_blocked",
			Username:      username,
			IPAddress:     ipAddress,
			FailureReason: "account_locked",
			Success:       false,
		})
		return "", models.ErrAccountLocked
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// An unknown username is tracked like a wrong password, so the
			// responses (and the lockout behavior) cannot be used to probe
			// which accounts exist.
			rec := s.guard.RegisterFailure(ctx, username)
			s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
				EventType:     "login_failed",
				Username:      username,
				IPAddress:     ipAddress,
				FailureReason: "invalid_credentials",
				AttemptCount:  rec.Count,
				Success:       false,
			})
			return "", models.ErrUnauthorized
		}
		s.logger.Error("failed to get user by username", slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	if !user.Active {
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			Username:      username,
			IPAddress:     ipAddress,
			FailureReason: "account_inactive",
			Success:       false,
		})
		return "", models.ErrUnauthorized
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		rec := s.guard.RegisterFailure(ctx, username)
		s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
			EventType:     "login_failed",
			Username:      username,
			IPAddress:     ipAddress,
			FailureReason: "invalid_credentials",
			AttemptCount:  rec.Count,
			Success:       false,
		})
		return "", models.ErrUnauthorized
	}

	s.guard.RegisterSuccess(ctx, username)

	token, err := s.codec.Issue(user.Username)
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("username", username), slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	s.auditLogger.LogAuthAttempt(pkglogger.AuditEvent{
		EventType: "login_success",
		Username:  username,
		IPAddress: ipAddress,
		Success:   true,
	})

	return token, nil
}

// ChangePassword verifies the old credential and persists the new one. It
// never touches the brute-force guard: a change attempt is not a login.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword, ipAddress string) error {
	if oldPassword == newPassword {
		return models.ErrSamePassword
	}

	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return models.ErrBadRequest
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrUnauthorized
		}
		s.logger.Error("failed to get user for password change", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, oldPassword); err != nil {
		s.auditLogger.LogPasswordChange(username, ipAddress, false)
		return models.ErrUnauthorized
	}

	newHash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash new password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.users.UpdatePassword(ctx, username, newHash); err != nil {
		s.logger.Error("failed to update password", slog.String("username", username), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.auditLogger.LogPasswordChange(username, ipAddress, true)
	return nil
}
