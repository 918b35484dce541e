package access

import (
	"sync"
	"time"

	"portfolio-terminal/internal/dto"

	"github.com/patrickmn/go-cache"
)

// Verifier enforces the per-session daily chat quota.
type Verifier struct {
	limit int
	mu    sync.Mutex
	usage *cache.Cache
}

type dailyUsage struct {
	Count     int
	LastReset time.Time
}

// NewVerifier creates a verifier with the given daily limit. A negative
// limit means unlimited.
func NewVerifier(dailyLimit int) *Verifier {
	// Usage entries only need to survive the current day; the long TTL is
	// just a backstop against unbounded growth.
	return &Verifier{
		limit: dailyLimit,
		usage: cache.New(48*time.Hour, 1*time.Hour),
	}
}

// VerifyDailyLimit checks the session's quota for the current calendar day.
// The counter resets when the last reset fell on a different day.
func (v *Verifier) VerifyDailyLimit(sessionID string) error {
	if v.limit < 0 {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	u := v.load(sessionID)
	now := time.Now()

	// Check if the last reset was on a different calendar day.
	// We compare Year, Month, and Day. If any differ, it's a new day.
	if now.Year() != u.LastReset.Year() || now.Month() != u.LastReset.Month() || now.Day() != u.LastReset.Day() {
		u.Count = 0
		u.LastReset = now
	}

	if u.Count >= v.limit {
		resetTime := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		return &dto.LimitExceededError{
			Limit:      v.limit,
			Used:       u.Count,
			ResetAfter: resetTime,
		}
	}

	return nil
}

// IncrementUsage bumps the session's daily counter.
func (v *Verifier) IncrementUsage(sessionID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	u := v.load(sessionID)
	u.Count++
}

func (v *Verifier) load(sessionID string) *dailyUsage {
	if x, found := v.usage.Get(sessionID); found {
		return x.(*dailyUsage)
	}
	u := &dailyUsage{LastReset: time.Now()}
	v.usage.Set(sessionID, u, cache.DefaultExpiration)
	return u
}
