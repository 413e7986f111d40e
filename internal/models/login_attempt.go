package models

import "time"

// LoginAttempt is the durable mirror of one login outcome, kept for audit
// and post-restart forensics. The in-memory attempt cache stays authoritative
// for lockout decisions; rows here are written best-effort and never read on
// the login path.
type LoginAttempt struct {
	ID           string     `db:"id"`
	Username     string     `db:"username"`
	Successful   bool       `db:"successful"`
	AttemptCount int        `db:"attempt_count"`
	LockedUntil  *time.Time `db:"locked_until"`
	AttemptTime  time.Time  `db:"attempt_time"`
	ExpiresAt    time.Time  `db:"expires_at"`
}
