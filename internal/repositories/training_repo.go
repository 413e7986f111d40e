package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/database"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
)

// TrainingRepository handles training session persistence.
type TrainingRepository struct {
	db *database.DB
}

func NewTrainingRepository(db *database.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

func (r *TrainingRepository) Create(ctx context.Context, training *models.Training) (*models.Training, error) {
	training.ID = uuid.New().String()
	training.CreatedAt = time.Now()

	query := `
		INSERT INTO trainings (id, trainee_id, trainer_id, name, type_id, training_date, duration_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		training.ID, training.TraineeID, training.TrainerID, training.Name,
		training.TypeID, training.Date, int(training.Duration.Minutes()), training.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return training, nil
}

const trainingSelect = `
	SELECT tr.id, tr.trainee_id, tr.trainer_id, tr.name, tr.type_id,
	       tr.training_date, tr.duration_minutes,
	       tru.username, trnu.username
	FROM trainings tr
	JOIN users tru ON tru.id = tr.trainee_id
	JOIN users trnu ON trnu.id = tr.trainer_id
`

// ListForTrainee returns trainings for a trainee username, optionally bounded
// by a date range.
func (r *TrainingRepository) ListForTrainee(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error) {
	query := trainingSelect + `
		WHERE tru.username = $1
		  AND ($2::timestamptz IS NULL OR tr.training_date >= $2)
		  AND ($3::timestamptz IS NULL OR tr.training_date <= $3)
		ORDER BY tr.training_date
	`
	return r.list(ctx, query, username, from, to)
}

// ListForTrainer returns trainings for a trainer username, optionally bounded
// by a date range.
func (r *TrainingRepository) ListForTrainer(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error) {
	query := trainingSelect + `
		WHERE trnu.username = $1
		  AND ($2::timestamptz IS NULL OR tr.training_date >= $2)
		  AND ($3::timestamptz IS NULL OR tr.training_date <= $3)
		ORDER BY tr.training_date
	`
	return r.list(ctx, query, username, from, to)
}

func (r *TrainingRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Training, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	trainings := make([]*models.Training, 0)
	for rows.Next() {
		var (
			t       models.Training
			minutes int
		)
		if err := rows.Scan(&t.ID, &t.TraineeID, &t.TrainerID, &t.Name, &t.TypeID,
			&t.Date, &minutes, &t.TraineeUsername, &t.TrainerUsername); err != nil {
			return nil, database.MapPostgresError(err)
		}
		t.Duration = time.Duration(minutes) * time.Minute
		trainings = append(trainings, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return trainings, nil
}
