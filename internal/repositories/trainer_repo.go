package repositories

import (
	"context"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/database"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
)

// TrainerRepository handles trainer profile persistence.
type TrainerRepository struct {
	db *database.DB
}

func NewTrainerRepository(db *database.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

func (r *TrainerRepository) CreateProfile(ctx context.Context, userID, specializationID string) error {
	query := `INSERT INTO trainers (user_id, specialization_id) VALUES ($1, $2)`
	_, err := r.db.Pool.Exec(ctx, query, userID, specializationID)
	return database.MapPostgresError(err)
}

func (r *TrainerRepository) GetByUsername(ctx context.Context, username string) (*models.Trainer, error) {
	query := `
		SELECT t.user_id, t.specialization_id, tt.id, tt.name,
		       u.id, u.username, u.first_name, u.last_name, u.password_hash, u.role, u.active, u.created_at, u.updated_at
		FROM trainers t
		JOIN users u ON u.id = t.user_id
		JOIN training_types tt ON tt.id = t.specialization_id
		WHERE u.username = $1
	`

	var (
		trainer models.Trainer
		spec    models.TrainingType
		user    models.User
	)
	err := r.db.Pool.QueryRow(ctx, query, username).Scan(
		&trainer.UserID, &trainer.SpecializationID, &spec.ID, &spec.Name,
		&user.ID, &user.Username, &user.FirstName, &user.LastName,
		&user.PasswordHash, &user.Role, &user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	trainer.Specialization = &spec
	trainer.User = &user
	return &trainer, nil
}

func (r *TrainerRepository) UpdateSpecialization(ctx context.Context, username, specializationID string) error {
	query := `
		UPDATE trainers SET specialization_id = $2
		WHERE user_id = (SELECT id FROM users WHERE username = $1)
	`

	tag, err := r.db.Pool.Exec(ctx, query, username, specializationID)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
