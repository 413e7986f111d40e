package bruteforce

import "time"

// Record tracks consecutive failed logins for a single username. Records are
// owned by the Store; callers mutate them only through Store.Update.
type Record struct {
	Username     string
	Count        int
	FirstAttempt time.Time
	LastAttempt  time.Time
	LockedUntil  *time.Time
}

// LockedAt reports whether the record holds a lock that is still in force at
// the given instant. A lock timestamp in the past means unlocked (lazy
// expiry); the stale record is cleared on the next write.
func (r Record) LockedAt(now time.Time) bool {
	return r.LockedUntil != nil && now.Before(*r.LockedUntil)
}
