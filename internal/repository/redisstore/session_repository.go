package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"portfolio-terminal/internal/repository/contract"
	"portfolio-terminal/pkg/store"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// Ensure the redis backing satisfies the contract
var _ contract.SessionRepository = &SessionRepository{}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session store.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Save stores the session and refreshes its TTL.
func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Count(ctx context.Context) (int64, error) {
	var (
		cursor uint64
		count  int64
	)
	for {
		keys, next, err := r.client.Scan(ctx, cursor, sessionKeyPrefix+"*", 100).Result()
		if err != nil {
			return 0, fmt.Errorf("redis scan sessions: %w", err)
		}
		count += int64(len(keys))
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

// Touch refreshes the key TTL without rewriting the payload.
func (r *SessionRepository) Touch(ctx context.Context, sessionID string) error {
	if err := r.client.Expire(ctx, sessionKeyPrefix+sessionID, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis touch session: %w", err)
	}
	return nil
}
