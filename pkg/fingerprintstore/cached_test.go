package fingerprintstore

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.uber.org/zap"
)

type fakeStore struct {
	existsResult bool
	existsCalls  int
	recordErr    error
	recordCalls  int
}

func (f *fakeStore) Exists(_ context.Context, _, _, _ string) (bool, error) {
	f.existsCalls++
	return f.existsResult, nil
}

func (f *fakeStore) Record(_ context.Context, _, _, _ string) error {
	f.recordCalls++
	return f.recordErr
}

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	requireDockerAccess(t)

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(connStr)
	if err != nil {
		t.Fatalf("failed to parse redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("failed to ping redis: %v", err)
	}
	return client
}

func TestCachedStore_RecordPopulatesCache(t *testing.T) {
	ctx := context.Background()
	client := setupRedis(t)
	inner := &fakeStore{}
	store := NewCachedStore(inner, client, zap.NewNop())

	if err := store.Record(ctx, "id-a", "photo-a", "bio-a"); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	// All three hashes now answer from the cache without touching postgres.
	for _, args := range [][3]string{
		{"id-a", "x", "x"},
		{"x", "photo-a", "x"},
		{"x", "x", "bio-a"},
	} {
		exists, err := store.Exists(ctx, args[0], args[1], args[2])
		if err != nil {
			t.Fatalf("Exists() failed: %v", err)
		}
		if !exists {
			t.Fatalf("Exists(%v) should hit the cache", args)
		}
	}
	if inner.existsCalls != 0 {
		t.Fatalf("expected no inner Exists calls on cache hits, got %d", inner.existsCalls)
	}
}

func TestCachedStore_MissFallsThrough(t *testing.T) {
	ctx := context.Background()
	client := setupRedis(t)
	inner := &fakeStore{existsResult: true}
	store := NewCachedStore(inner, client, zap.NewNop())

	exists, err := store.Exists(ctx, "id-a", "photo-a", "bio-a")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if !exists {
		t.Fatal("Exists() should return the inner store result on a cache miss")
	}
	if inner.existsCalls != 1 {
		t.Fatalf("expected 1 inner Exists call, got %d", inner.existsCalls)
	}
}

func TestCachedStore_RecordFailureSkipsCache(t *testing.T) {
	ctx := context.Background()
	client := setupRedis(t)
	inner := &fakeStore{recordErr: ErrDuplicateRecord}
	store := NewCachedStore(inner, client, zap.NewNop())

	if err := store.Record(ctx, "id-a", "photo-a", "bio-a"); err != ErrDuplicateRecord {
		t.Fatalf("Record() expected ErrDuplicateRecord, got %v", err)
	}

	n, err := client.Exists(ctx, cacheKeyPrefix+"id-a").Result()
	if err != nil {
		t.Fatalf("redis Exists failed: %v", err)
	}
	if n != 0 {
		t.Fatal("failed Record must not populate the cache")
	}
}

func TestCachedStore_RedisDownDegradesToStore(t *testing.T) {
	ctx := context.Background()
	// Nothing listens here; every cache call fails fast.
	client := redis.NewClient(&redis.Options{Addr: "localhost:1", DialTimeout: 1})
	defer client.Close()

	inner := &fakeStore{existsResult: true}
	store := NewCachedStore(inner, client, zap.NewNop())

	exists, err := store.Exists(ctx, "id-a", "photo-a", "bio-a")
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if !exists {
		t.Fatal("Exists() should degrade to the inner store when redis is down")
	}

	if err := store.Record(ctx, "id-b", "photo-b", "bio-b"); err != nil {
		t.Fatalf("Record() should succeed despite cache failure: %v", err)
	}
	if inner.recordCalls != 1 {
		t.Fatalf("expected 1 inner Record call, got %d", inner.recordCalls)
	}
}
