package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
)

// TrainingRepository persists training sessions.
type TrainingRepository interface {
	Create(ctx context.Context, training *models.Training) (*models.Training, error)
	ListForTrainee(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error)
	ListForTrainer(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error)
}

// TrainingTypeRepository exposes the training type catalog.
type TrainingTypeRepository interface {
	List(ctx context.Context) ([]*models.TrainingType, error)
	GetByName(ctx context.Context, name string) (*models.TrainingType, error)
}

// TrainingService schedules sessions and serves per-user training lists.
type TrainingService struct {
	trainings TrainingRepository
	types     TrainingTypeRepository
	trainees  TraineeProfileRepository
	trainers  TrainerProfileRepository
	logger    *slog.Logger
}

// NewTrainingService creates a new TrainingService
func NewTrainingService(trainings TrainingRepository, types TrainingTypeRepository, trainees TraineeProfileRepository, trainers TrainerProfileRepository, logger *slog.Logger) *TrainingService {
	return &TrainingService{
		trainings: trainings,
		types:     types,
		trainees:  trainees,
		trainers:  trainers,
		logger:    logger,
	}
}

// Create schedules a training between a trainee and a trainer, both addressed
// by username. The training type is resolved against the catalog.
func (s *TrainingService) Create(ctx context.Context, traineeUsername, trainerUsername, name, typeName string, date time.Time, duration time.Duration) (*models.Training, error) {
	if duration <= 0 {
		return nil, models.ErrBadRequest
	}

	trainee, err := s.trainees.GetByUsername(ctx, traineeUsername)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrBadRequest
		}
		s.logger.Error("failed to resolve trainee", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	trainer, err := s.trainers.GetByUsername(ctx, trainerUsername)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrBadRequest
		}
		s.logger.Error("failed to resolve trainer", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	trainingType, err := s.types.GetByName(ctx, typeName)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrBadRequest
		}
		s.logger.Error("failed to resolve training type", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	created, err := s.trainings.Create(ctx, &models.Training{
		TraineeID: trainee.UserID,
		TrainerID: trainer.UserID,
		Name:      name,
		TypeID:    trainingType.ID,
		Date:      date,
		Duration:  duration,
	})
	if err != nil {
		s.logger.Error("failed to create training", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return created, nil
}

// ListForTrainee returns a trainee's trainings, optionally bounded by date.
func (s *TrainingService) ListForTrainee(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error) {
	trainings, err := s.trainings.ListForTrainee(ctx, username, from, to)
	if err != nil {
		s.logger.Error("failed to list trainee trainings", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return trainings, nil
}

// ListForTrainer returns a trainer's trainings, optionally bounded by date.
func (s *TrainingService) ListForTrainer(ctx context.Context, username string, from, to *time.Time) ([]*models.Training, error) {
	trainings, err := s.trainings.ListForTrainer(ctx, username, from, to)
	if err != nil {
		s.logger.Error("failed to list trainer trainings", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return trainings, nil
}

// ListTypes returns the training type catalog.
func (s *TrainingService) ListTypes(ctx context.Context) ([]*models.TrainingType, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		s.logger.Error("failed to list training types", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return types, nil
}
