package bruteforce

import (
	"context"
	"log/slog"
	"time"

	"github.com/amangusss/EPAM-WCA25-gym-application-sub001/internal/models"
)

// mirrorRetention bounds how long durable attempt rows are kept before the
// background cleanup removes them.
const mirrorRetention = 24 * time.Hour

// mirrorTimeout bounds the detached best-effort write to the durable log.
const mirrorTimeout = 2 * time.Second

// AttemptMirror receives durable copies of attempt outcomes for audit. The
// guard only ever writes to it; lockout decisions come from the in-memory
// store alone.
type AttemptMirror interface {
	RecordAttempt(ctx context.Context, attempt *models.LoginAttempt) error
}

// Config holds brute-force protection thresholds.
type Config struct {
	// FailureThreshold is the number of consecutive failures that triggers
	// a lockout.
	FailureThreshold int
	// LockoutDuration is how long a locked username stays blocked.
	LockoutDuration time.Duration
}

// Guard turns raw attempt counts into admission decisions. A missing record
// never is an error: absence means zero prior failures.
type Guard struct {
	store  *Store
	cfg    Config
	mirror AttemptMirror
	logger *slog.Logger
	now    func() time.Time
}

// NewGuard creates a Guard over the given store. mirror may be nil when no
// durable audit log is configured.
func NewGuard(store *Store, cfg Config, mirror AttemptMirror, logger *slog.Logger) *Guard {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = 15 * time.Minute
	}
	return &Guard{
		store:  store,
		cfg:    cfg,
		mirror: mirror,
		logger: logger,
		now:    time.Now,
	}
}

// IsBlocked reports whether the username is currently locked out. A lock
// timestamp in the past counts as unblocked; the stale record is cleared on
// the next failure rather than here, keeping this a pure read.
func (g *Guard) IsBlocked(username string) bool {
	rec, ok := g.store.Get(username)
	if !ok {
		return false
	}
	return rec.LockedAt(g.now())
}

// RegisterFailure records one failed login for username, locking the account
// once the failure threshold is reached. Returns the updated record.
func (g *Guard) RegisterFailure(ctx context.Context, username string) Record {
	now := g.now()

	rec := g.store.Update(username, func(rec Record, found bool) Record {
		// A stale lock (expired but never overwritten) resets the window,
		// so an old burst of failures does not count against a new one.
		if !found || (rec.LockedUntil != nil && !now.Before(*rec.LockedUntil)) {
			rec = Record{Username: username, FirstAttempt: now}
		}

		rec.Count++
		rec.LastAttempt = now
		if rec.Count >= g.cfg.FailureThreshold && rec.LockedUntil == nil {
			lockedUntil := now.Add(g.cfg.LockoutDuration)
			rec.LockedUntil = &lockedUntil
		}
		return rec
	})

	if rec.LockedUntil != nil && rec.Count == g.cfg.FailureThreshold {
		g.logger.Warn("account locked after repeated failed logins",
			slog.String("username", username),
			slog.Int("attempt_count", rec.Count))
	}

	g.mirrorAttempt(ctx, username, false, rec)
	return rec
}

// RegisterSuccess clears all tracking state for username. A successful
// authentication resets the window unconditionally.
func (g *Guard) RegisterSuccess(ctx context.Context, username string) {
	g.store.Remove(username)
	g.mirrorAttempt(ctx, username, true, Record{Username: username})
}

// RemainingAttempts returns how many more failures username can afford before
// lockout. Never negative; a missing record means the full threshold.
func (g *Guard) RemainingAttempts(username string) int {
	rec, ok := g.store.Get(username)
	if !ok {
		return g.cfg.FailureThreshold
	}
	// A record whose lock has lapsed is treated as cleared: the next failure
	// starts a fresh window anyway.
	if rec.LockedUntil != nil && !g.now().Before(*rec.LockedUntil) {
		return g.cfg.FailureThreshold
	}
	remaining := g.cfg.FailureThreshold - rec.Count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// mirrorAttempt writes the outcome to the durable log off the request path.
// Failures are logged and swallowed: the mirror is audit-only.
func (g *Guard) mirrorAttempt(_ context.Context, username string, successful bool, rec Record) {
	if g.mirror == nil {
		return
	}

	attempt := &models.LoginAttempt{
		Username:     username,
		Successful:   successful,
		AttemptCount: rec.Count,
		LockedUntil:  rec.LockedUntil,
		AttemptTime:  g.now(),
		ExpiresAt:    g.now().Add(mirrorRetention),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
		defer cancel()
		if err := g.mirror.RecordAttempt(ctx, attempt); err != nil {
			g.logger.Warn("failed to mirror login attempt",
				slog.String("username", username),
				slog.Any("error", err))
		}
	}()
}
