package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/hr/portal/pkg/auth"
)

// SessionRepository implements auth.SessionRepository backed by PostgreSQL (pgx).
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) (*SessionRepository, error) {
	repo := &SessionRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SessionRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS portal_sessions (
			id TEXT PRIMARY KEY,
			access_token TEXT NOT NULL,
			user_id TEXT NOT NULL,
			user_role TEXT NOT NULL,
			user_data JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS portal_sessions_expires_at_idx ON portal_sessions (expires_at);
	`)
	return err
}

func (r *SessionRepository) Save(ctx context.Context, s auth.Session) error {
	user, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO portal_sessions (id, access_token, user_id, user_role, user_data, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			user_data = EXCLUDED.user_data,
			expires_at = EXCLUDED.expires_at
	`, s.ID, s.AccessToken, s.User.ID, string(s.User.Role), user, s.CreatedAt.UTC(), s.ExpiresAt.UTC())
	return err
}

func (r *SessionRepository) Get(ctx context.Context, id string) (auth.Session, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, access_token, user_data, created_at, expires_at
		FROM portal_sessions WHERE id = $1 AND expires_at > now()
	`, id)
	var (
		s        auth.Session
		userData []byte
		created  time.Time
		expires  time.Time
	)
	if err := row.Scan(&s.ID, &s.AccessToken, &userData, &created, &expires); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Session{}, auth.ErrNotFound
		}
		return auth.Session{}, err
	}
	if err := json.Unmarshal(userData, &s.User); err != nil {
		return auth.Session{}, fmt.Errorf("decode session user: %w", err)
	}
	s.CreatedAt = created.UTC()
	s.ExpiresAt = expires.UTC()
	return s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE id = $1`, id)
	return err
}

// Purge deletes expired rows.
func (r *SessionRepository) Purge(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM portal_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
