package inflight

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swot-auditor/swot-backend/internal/projects/domain"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func exerciseGuard(t *testing.T, g Guard) {
	ctx := context.Background()

	_, held, err := g.Current(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, held)

	lease, err := g.Acquire(ctx, "p1", domain.StatusAnalyzingPre)
	require.NoError(t, err)

	_, err = g.Acquire(ctx, "p1", domain.StatusAnalyzingPre)
	assert.ErrorIs(t, err, ErrHeld)

	other, err := g.Acquire(ctx, "p2", domain.StatusAuditing)
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	status, held, err := g.Current(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, held)
	assert.Equal(t, domain.StatusAnalyzingPre, status)

	require.NoError(t, lease.Release(ctx))
	_, held, _ = g.Current(ctx, "p1")
	assert.False(t, held)

	again, err := g.Acquire(ctx, "p1", domain.StatusAnalyzingQuestions)
	require.NoError(t, err)
	require.NoError(t, lease.Release(ctx), "stale release is a no-op")
	status, held, _ = g.Current(ctx, "p1")
	assert.True(t, held)
	assert.Equal(t, domain.StatusAnalyzingQuestions, status)
	require.NoError(t, again.Release(ctx))
}

func TestMemoryGuard(t *testing.T) {
	exerciseGuard(t, NewMemoryGuard(time.Minute))
}

func TestMemoryGuard_Expiry(t *testing.T) {
	g := NewMemoryGuard(time.Second)
	now := time.Now()
	g.now = func() time.Time { return now }

	_, err := g.Acquire(context.Background(), "p", domain.StatusAuditing)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, held, _ := g.Current(context.Background(), "p")
	assert.False(t, held)
	_, err = g.Acquire(context.Background(), "p", domain.StatusAuditing)
	assert.NoError(t, err)
}

func TestRedisGuard(t *testing.T) {
	_, client := setupTestRedis(t)
	exerciseGuard(t, NewRedisGuard(client, time.Minute))
}

func TestRedisGuard_TTL(t *testing.T) {
	mr, client := setupTestRedis(t)
	g := NewRedisGuard(client, 30*time.Second)

	_, err := g.Acquire(context.Background(), "p", domain.StatusAnalyzingFinal)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, mr.TTL(lockKeyPrefix+"p"))

	mr.FastForward(31 * time.Second)
	_, err = g.Acquire(context.Background(), "p", domain.StatusAnalyzingFinal)
	assert.NoError(t, err)
}
