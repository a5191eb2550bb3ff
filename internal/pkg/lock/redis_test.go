package lock

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	rdb, err := NewRedisClient(context.Background(), addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func testPrefix(t *testing.T) string {
	return fmt.Sprintf("payroll-engine-test:%s:%d:", t.Name(), time.Now().UnixNano())
}

func TestRedis_SerializesSameKey(t *testing.T) {
	rdb := setupRedis(t)
	// Two lockers on one prefix behave like two API instances.
	prefix := testPrefix(t)
	lockers := []*Redis{NewRedis(rdb, prefix, 5*time.Second), NewRedis(rdb, prefix, 5*time.Second)}
	ctx := context.Background()

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 6; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := lockers[i%2].Lock(ctx, "filing:2026")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			maxSeen = max(maxSeen, inside)
			mu.Unlock()

			time.Sleep(20 * time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			assert.NoError(t, unlock(ctx))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestRedis_HeldLockTimesOut(t *testing.T) {
	rdb := setupRedis(t)
	l := NewRedis(rdb, testPrefix(t), time.Second)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "filing:2026")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "filing:2026")
	assert.ErrorIs(t, err, ErrNotObtained)

	other, err := l.Lock(ctx, "filing:2027")
	require.NoError(t, err)
	assert.NoError(t, other(ctx))

	require.NoError(t, unlock(ctx))
	// release after release is a no-op
	require.NoError(t, unlock(ctx))

	again, err := l.Lock(ctx, "filing:2026")
	require.NoError(t, err)
	assert.NoError(t, again(ctx))
}

func TestRedis_UsesPrefix(t *testing.T) {
	rdb := setupRedis(t)
	prefix := testPrefix(t)
	l := NewRedis(rdb, prefix, 5*time.Second)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "filing:2026")
	require.NoError(t, err)

	n, err := rdb.Exists(ctx, prefix+"filing:2026").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, unlock(ctx))
	n, err = rdb.Exists(ctx, prefix+"filing:2026").Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}
