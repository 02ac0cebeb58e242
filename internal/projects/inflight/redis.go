package inflight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
)

const lockKeyPrefix = "swot:inflight:" // swot:inflight:{project_id} -> {token}|{status}

// releaseScript deletes the key only when it still carries our token.
var releaseScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if v and string.sub(v, 1, string.len(ARGV[1])) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard is a Guard backed by SET NX PX.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) key(projectID string) string {
	return lockKeyPrefix + projectID
}

func (g *RedisGuard) Acquire(ctx context.Context, projectID string, status domain.Status) (Lease, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, g.key(projectID), token+"|"+string(status), g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrHeld
	}
	return &redisLease{client: g.client, key: g.key(projectID), token: token + "|"}, nil
}

func (g *RedisGuard) Current(ctx context.Context, projectID string) (domain.Status, bool, error) {
	v, err := g.client.Get(ctx, g.key(projectID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read lock: %w", err)
	}
	_, status, found := strings.Cut(v, "|")
	if !found {
		return "", false, nil
	}
	return domain.Status(status), true, nil
}

type redisLease struct {
	client *redis.Client
	key    string
	token  string
}

func (l *redisLease) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
