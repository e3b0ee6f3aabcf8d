package cooldown

import (
	"sync"
	"time"

	"markov-bot/internal/config"
)

// Gate answers whether a user may trigger an automated reply right now.
// Burst and window come from the config store on every call, so a reload
// takes effect immediately. Exemption lists are the caller's concern; the
// gate itself only knows user identifiers.
type Gate struct {
	cfg   *config.Store
	mu    sync.RWMutex
	users map[string]*userState
	now   func() time.Time
}

// userState is mutated only with its own mutex held, so interactions from
// the same user are serialized while different users never contend.
type userState struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// New creates a Gate reading thresholds from cfg.
func New(cfg *config.Store) *Gate {
	return &Gate{
		cfg:   cfg,
		users: make(map[string]*userState),
		now:   time.Now,
	}
}

// user returns the state for userID, creating it on first interaction.
func (g *Gate) user(userID string) *userState {
	g.mu.RLock()
	u := g.users[userID]
	g.mu.RUnlock()
	if u != nil {
		return u
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if u = g.users[userID]; u != nil {
		return u
	}
	u = &userState{windowStart: g.now()}
	g.users[userID] = u
	return u
}

func (g *Gate) params() (burst int, window time.Duration) {
	snap := g.cfg.Current()
	return snap.CooldownRate, snap.CooldownStandard
}

// IsOnCooldown reports whether userID has exhausted its burst inside the
// current window.
func (g *Gate) IsOnCooldown(userID string) bool {
	burst, window := g.params()
	u := g.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	now := g.now()
	u.resetIfElapsed(now, window)
	if u.count < burst {
		return false
	}
	return now.Sub(u.windowStart) < window
}

// RecordInteraction counts one interaction for userID. The increment that
// reaches the burst threshold stamps the start of the cooldown window.
func (g *Gate) RecordInteraction(userID string) {
	burst, window := g.params()
	u := g.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	now := g.now()
	u.resetIfElapsed(now, window)
	u.record(now, burst)
}

// Allow is the check-and-record pair under one lock: it reports whether the
// interaction is admitted and, if so, records it. Use this on the event path
// so concurrent messages from one user cannot sneak past the burst limit.
func (g *Gate) Allow(userID string) bool {
	burst, window := g.params()
	u := g.user(userID)
	u.mu.Lock()
	defer u.mu.Unlock()

	now := g.now()
	u.resetIfElapsed(now, window)
	if u.count >= burst && now.Sub(u.windowStart) < window {
		return false
	}
	u.record(now, burst)
	return true
}

func (u *userState) resetIfElapsed(now time.Time, window time.Duration) {
	if now.Sub(u.windowStart) >= window {
		u.count = 0
	}
}

func (u *userState) record(now time.Time, burst int) {
	u.count++
	if u.count == burst {
		u.windowStart = now
	}
}
