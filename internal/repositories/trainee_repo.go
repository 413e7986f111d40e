package repositories

import (
	"context"
	"time"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/database"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
)

// TraineeRepository handles trainee profile persistence.
type TraineeRepository struct {
	db *database.DB
}

func NewTraineeRepository(db *database.DB) *TraineeRepository {
	return &TraineeRepository{db: db}
}

func (r *TraineeRepository) CreateProfile(ctx context.Context, userID string, dateOfBirth *time.Time, address *string) error {
	query := `INSERT INTO trainees (user_id, date_of_birth, address) VALUES ($1, $2, $3)`
	_, err := r.db.Pool.Exec(ctx, query, userID, dateOfBirth, address)
	return database.MapPostgresError(err)
}

func (r *TraineeRepository) GetByUsername(ctx context.Context, username string) (*models.Trainee, error) {
	query := `
		SELECT t.user_id, t.date_of_birth, t.address,
		       u.id, u.username, u.first_name, u.last_name, u.password_hash, u.role, u.active, u.created_at, u.updated_at
		FROM trainees t
		JOIN users u ON u.id = t.user_id
		WHERE u.username = $1
	`

	var (
		trainee models.Trainee
		user    models.User
	)
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(
		&trainee.UserID, &trainee.DateOfBirth, &trainee.Address,
		&user.ID, &user.Username, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.Role, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	trainee.User = &user
	return &trainee, nil
}

func (r *TraineeRepository) UpdateProfile(ctx context.Context, username string, dateOfBirth *time.Time, address *string) error {
	query := `
		UPDATE trainees SET date_of_birth = $2, address = $3
		WHERE user_id = (SELECT id FROM users WHERE username = $1)
	`

	tag, err := r.db.Pool.Exec(ctx, query, username, dateOfBirth, address)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
