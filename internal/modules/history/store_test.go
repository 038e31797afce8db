package history

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

	"taxifare/internal/types"
)

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	redisAddr := os.Getenv("TAXIFARE_REDIS_ADDR")
	if redisAddr == "" {
		t.Skip("TAXIFARE_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	s := NewRedisStore(rdb, fmt.Sprintf("test_%d", time.Now().UnixNano()), time.Minute)
	t.Cleanup(func() { _ = s.Clear(context.Background()) })
	testStore(t, s)
}

func testStore(t *testing.T, s Store) {
	ctx := context.Background()

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	want := []Entry{
		{Datetime: "2026-10-18 09:00:00", Fare: types.USD(5.0)},
		{Datetime: "2026-10-18 09:05:00", Fare: types.USD(7.25)},
		{Datetime: "2026-10-18 08:00:00", Fare: types.USD(3.1)},
	}
	for _, e := range want {
		require.NoError(t, s.Append(ctx, e))
	}

	all, err = s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, all, "entries must come back in insertion order, unsorted")

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// duplicates are kept
	require.NoError(t, s.Append(ctx, want[0]))
	n, _ = s.Len(ctx)
	assert.Equal(t, 4, n)

	require.NoError(t, s.Clear(ctx))
	n, _ = s.Len(ctx)
	assert.Equal(t, 0, n)
}

func TestMemoryStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Append(ctx, Entry{Datetime: "a", Fare: 1}))

	snap, _ := s.All(ctx)
	snap[0].Fare = 99

	again, _ := s.All(ctx)
	assert.Equal(t, types.USD(1), again[0].Fare)
}

func TestMemoryStore_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Append(ctx, Entry{Datetime: fmt.Sprint(i), Fare: types.USD(i)})
		}(i)
	}
	wg.Wait()

	n, _ := s.Len(ctx)
	assert.Equal(t, 50, n)
}
