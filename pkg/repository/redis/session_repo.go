package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/artem13815/hr/portal/pkg/auth"
)

const keyPrefix = "portal:session:"

// SessionRepository stores sessions as JSON with a TTL equal to the time left
// until ExpiresAt, so Redis evicts them on its own.
type SessionRepository struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewSessionRepository(client redis.UniversalClient) *SessionRepository {
	return &SessionRepository{client: client, now: time.Now}
}

func (r *SessionRepository) Save(ctx context.Context, s auth.Session) error {
	ttl := time.Duration(0)
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return fmt.Errorf("save session: already expired")
		}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.client.Set(ctx, keyPrefix+s.ID, data, ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, id string) (auth.Session, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return auth.Session{}, auth.ErrNotFound
		}
		return auth.Session{}, err
	}
	var s auth.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return auth.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if s.Expired(r.now()) {
		return auth.Session{}, auth.ErrNotFound
	}
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}
