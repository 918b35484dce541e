package session

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"portfolio-terminal/internal/repository/contract"
	"portfolio-terminal/pkg/store"

	"github.com/google/uuid"
)

const lockStripes = 64

// Manager handles session lifecycle on top of the pluggable repository and
// serializes mutations per session id so concurrent requests cannot
// interleave history appends.
type Manager struct {
	repo  contract.SessionRepository
	locks [lockStripes]sync.Mutex
}

// NewManager creates a new session manager.
func NewManager(repo contract.SessionRepository) *Manager {
	return &Manager{repo: repo}
}

// LoadOrCreate retrieves the stored session, or creates a fresh command-mode
// session. Blank ids get a newly allocated UUID.
func (m *Manager) LoadOrCreate(ctx context.Context, sessionID string) (*store.Session, error) {
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return store.NewSession(uuid.NewString()), nil
	}

	session, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = store.NewSession(id)
	}
	return session, nil
}

// Save persists session state and refreshes its TTL.
func (m *Manager) Save(ctx context.Context, session *store.Session) error {
	return m.repo.Save(ctx, session)
}

// Delete removes a session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.repo.Delete(ctx, sessionID)
}

// Touch keeps an untouched session alive without rewriting it.
func (m *Manager) Touch(ctx context.Context, sessionID string) error {
	return m.repo.Touch(ctx, sessionID)
}

// Count returns the number of live sessions.
func (m *Manager) Count(ctx context.Context) (int64, error) {
	return m.repo.Count(ctx)
}

// Lock serializes work on one session id. The lock table is striped so it
// stays bounded regardless of session churn. Callers must invoke the
// returned unlock.
func (m *Manager) Lock(sessionID string) func() {
	h := fnv.New32a()
	h.Write([]byte(sessionID))
	lock := &m.locks[h.Sum32()%lockStripes]
	lock.Lock()
	return lock.Unlock
}
