package redisdoc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
)

// UserRepository stores each user as a JSON document plus an append-only
// history list. SETNX on the document key makes userName uniqueness atomic;
// RPUSH preserves login-history insertion order.
type UserRepository struct {
	rdb *redis.Client
}

func NewUserRepository(rdb *redis.Client) *UserRepository {
	return &UserRepository{rdb: rdb}
}

func docKey(userName string) string     { return "user:doc:" + userName }
func historyKey(userName string) string { return "user:history:" + userName }

// userDoc is the persisted shape. Login history lives in its own list so
// appends never rewrite the document.
type userDoc struct {
	UserName     string    `json:"userName"`
	PasswordHash string    `json:"passwordHash"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	doc := userDoc{
		UserName:     u.UserName,
		PasswordHash: u.PasswordHash,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	ok, err := r.rdb.SetNX(ctx, docKey(u.UserName), b, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrDuplicateKey
	}
	return nil
}

func (r *UserRepository) GetByName(ctx context.Context, userName string) (*entity.User, error) {
	b, err := r.rdb.Get(ctx, docKey(userName)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc userDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}

	u := &entity.User{
		UserName:     doc.UserName,
		PasswordHash: doc.PasswordHash,
		Email:        doc.Email,
		CreatedAt:    doc.CreatedAt,
	}

	entries, err := r.rdb.LRange(ctx, historyKey(userName), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	for _, raw := range entries {
		var e entity.LoginEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, err
		}
		u.LoginHistory = append(u.LoginHistory, e)
	}
	return u, nil
}

func (r *UserRepository) AppendLoginHistory(ctx context.Context, userName string, e entity.LoginEntry) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.rdb.RPush(ctx, historyKey(userName), b).Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)
