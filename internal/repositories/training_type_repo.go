package repositories

import (
	"context"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/database"
	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
)

// TrainingTypeRepository reads the fixed training type catalog.
type TrainingTypeRepository struct {
	db *database.DB
}

func NewTrainingTypeRepository(db *database.DB) *TrainingTypeRepository {
	return &TrainingTypeRepository{db: db}
}

func (r *TrainingTypeRepository) List(ctx context.Context) ([]*models.TrainingType, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name FROM training_types ORDER BY name`)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	types := make([]*models.TrainingType, 0)
	for rows.Next() {
		var t models.TrainingType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, database.MapPostgresError(err)
		}
		types = append(types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, database.MapPostgresError(err)
	}

	return types, nil
}

func (r *TrainingTypeRepository) GetByName(ctx context.Context, name string) (*models.TrainingType, error) {
	var t models.TrainingType
	err := r.db.Pool.QueryRow(ctx,
		`SELECT id, name FROM training_types WHERE name = $1`, name).Scan(&t.ID, &t.Name)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &t, nil
}
