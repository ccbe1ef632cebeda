package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	kerrors "github.com/kay-express/admin-console/internal/errors"
)

// RedisRepo is a Redis-backed implementation of Repo for multi-replica
// deployments. Sessions are stored as JSON under a prefixed key with the
// TTL enforced by Redis itself.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-backed session repository.
func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{
		client: client,
		prefix: "kayx:session:",
	}
}

func (r *RedisRepo) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *RedisRepo) Upsert(ctx context.Context, sessionID string, s Session, ttl time.Duration) error {
	if sessionID == "" {
		return errors.New("[RedisRepo.Upsert] sessionID is required")
	}
	if ttl <= 0 {
		return errors.New("[RedisRepo.Upsert] ttl must be positive")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "[RedisRepo.Upsert] marshal session")
	}

	return r.client.Set(ctx, r.key(sessionID), data, ttl).Err()
}

func (r *RedisRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, kerrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[RedisRepo.Get] redis get")
	}

	var s Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, errors.Wrap(err, "[RedisRepo.Get] unmarshal session")
	}
	return &s, nil
}

func (r *RedisRepo) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}
