package models

import "time"

// Trainee extends a user profile with optional personal details.
type Trainee struct {
	UserID      string     `db:"user_id"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Address     *string    `db:"address"`

	User *User
}

// Trainer extends a user profile with a training specialization.
type Trainer struct {
	UserID           string `db:"user_id"`
	SpecializationID string `db:"specialization_id"`

	User           *User
	Specialization *TrainingType
}

// TrainingType is a fixed catalog entry (fitness, yoga, zumba, ...).
type TrainingType struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// Training is a scheduled session between a trainee and a trainer.
type Training struct {
	ID              string        `db:"id"`
	TraineeID       string        `db:"trainee_id"`
	TrainerID       string        `db:"trainer_id"`
	Name            string        `db:"name"`
	TypeID          string        `db:"type_id"`
	Date            time.Time     `db:"training_date"`
	Duration        time.Duration `db:"duration"`
	CreatedAt       time.Time     `db:"created_at"`
	TraineeUsername string
	TrainerUsername string
}
