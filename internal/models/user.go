package models

import "time"

// User roles
const (
	RoleTrainee = "trainee"
	RoleTrainer = "trainer"
)

// User is the credential-bearing account shared by trainees and trainers.
// Username is the case-sensitive login identifier (firstname.lastname, with
// a numeric suffix when the plain form is taken).
type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	Active       bool      `db:"active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
