package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/database"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
)

// LoginAttemptRepository is the durable mirror of the in-memory attempt
// cache. Rows are written best-effort for audit and never consulted for
// lockout decisions.
type LoginAttemptRepository struct {
	db *database.DB
}

func NewLoginAttemptRepository(db *database.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// RecordAttempt inserts one attempt outcome.
func (r *LoginAttemptRepository) RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error {
	query := `
		INSERT INTO login_attempts (id, username, successful, attempt_count, locked_until, attempt_time, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		uuid.New().String(),
		attempt.Username,
		attempt.Successful,
		attempt.AttemptCount,
		attempt.LockedUntil,
		attempt.AttemptTime,
		attempt.ExpiresAt,
	)

	return database.MapPostgresError(err)
}

// ListByUsername returns recent attempts for a username, newest first.
// Audit tooling only; the login path never calls this.
func (r *LoginAttemptRepository) ListByUsername(ctx context.Context, username string, limit int) ([]*models.LoginAttempt, error) {
	query := `
		SELECT id, username, successful, attempt_count, locked_until, attempt_time, expires_at
		FROM login_attempts
		WHERE username = $1
		ORDER BY attempt_time DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, username, limit)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	attempts := make([]*models.LoginAttempt, 0)
	for rows.Next() {
		var a models.LoginAttempt
		if err := rows.Scan(&a.ID, &a.Username, &a.Successful, &a.AttemptCount,
			&a.LockedUntil, &a.AttemptTime, &a.ExpiresAt); err != nil {
			return nil, database.MapPostgresError(err)
		}
		attempts = append(attempts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return attempts, nil
}

// DeleteExpired removes attempts past their retention window.
func (r *LoginAttemptRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM login_attempts WHERE expires_at <= CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}
	return tag.RowsAffected(), nil
}
