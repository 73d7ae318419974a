package redisdoc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloggramm/bloggramm/internal/application"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
)

// SessionStore keeps one Redis hash per live session, expiring with the
// session TTL. HSET and EXPIRE go out in one pipeline.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func sessionKey(sid string) string { return "session:" + sid }

func (s *SessionStore) Put(ctx context.Context, sid string, sess application.Session, ttl time.Duration) error {
	key := sessionKey(sid)
	fields := map[string]any{
		"user_name":  sess.UserName,
		"email":      sess.Email,
		"created_at": sess.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, sid string) (*application.Session, error) {
	data, err := s.rdb.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, repository.ErrNotFound
	}
	sess := &application.Session{
		UserName: data["user_name"],
		Email:    data["email"],
	}
	if t, err := time.Parse(time.RFC3339Nano, data["created_at"]); err == nil {
		sess.CreatedAt = t
	}
	return sess, nil
}

func (s *SessionStore) Del(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, sessionKey(sid)).Err()
}

var _ application.SessionStore = (*SessionStore)(nil)
