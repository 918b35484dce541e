package contract

import (
	"context"

	"portfolio-terminal/pkg/store"
)

// SessionRepository is the pluggable backing for visitor sessions. Backings
// must evict sessions idle past their TTL; Save refreshes the clock.
type SessionRepository interface {
	// Get returns the session, or nil when it is absent or expired.
	Get(ctx context.Context, sessionID string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, sessionID string) error
	Count(ctx context.Context) (int64, error)
	// Touch refreshes the session TTL without rewriting its contents.
	Touch(ctx context.Context, sessionID string) error
}
