package memory

import (
	"context"
	"time"

	"portfolio-terminal/internal/repository/contract"
	"portfolio-terminal/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// Ensure the memory backing satisfies the contract
var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	// Sessions idle past the TTL are evicted; expired items are purged
	// every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Get(_ context.Context, sessionID string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), nil
	}
	return nil, nil
}

// Save stores the session and refreshes its TTL.
func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, sessionID string) error {
	r.cache.Delete(sessionID)
	return nil
}

func (r *SessionRepository) Count(_ context.Context) (int64, error) {
	return int64(r.cache.ItemCount()), nil
}

// Touch re-sets the stored session so its TTL starts over.
func (r *SessionRepository) Touch(_ context.Context, sessionID string) error {
	if x, found := r.cache.Get(sessionID); found {
		r.cache.Set(sessionID, x, cache.DefaultExpiration)
	}
	return nil
}
