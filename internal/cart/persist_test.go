package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedis struct {
	data map[string]string

	lastTTL time.Duration
	setErr  error
	dels    int
}

func newMockRedis() *mockRedis {
	return &mockRedis{data: map[string]string{}}
}

func (m *mockRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	m.lastTTL = ttl
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *mockRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			delete(m.data, k)
			n++
		}
	}
	m.dels++
	return redis.NewIntResult(n, nil)
}

func TestRedisStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	rdb := newMockRedis()
	rs := NewRedisStore(rdb, 0)

	items := []Item{dress("M")}
	items[0].Quantity = 2
	if err := rs.Save(ctx, "alice", items); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := rdb.data["cart:alice"]; !ok {
		t.Fatal("expected value under cart:alice")
	}
	if rdb.lastTTL != DefaultRedisTTL {
		t.Fatalf("expected default TTL, got %v", rdb.lastTTL)
	}

	got, err := rs.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Quantity != 2 || got[0].Price != 12500 {
		t.Fatalf("unexpected items %+v", got)
	}
}

func TestRedisStore_MissingKeyIsEmpty(t *testing.T) {
	got, err := NewRedisStore(newMockRedis(), time.Hour).Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil items, got %+v", got)
	}
}

func TestRedisStore_EmptySaveDeletes(t *testing.T) {
	ctx := context.Background()
	rdb := newMockRedis()
	rs := NewRedisStore(rdb, time.Hour)

	_ = rs.Save(ctx, "bob", []Item{dress("L")})
	if err := rs.Save(ctx, "bob", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rdb.dels != 1 {
		t.Fatalf("expected one Del, got %d", rdb.dels)
	}
	if _, ok := rdb.data["cart:bob"]; ok {
		t.Fatal("key should be deleted")
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	rdb := newMockRedis()
	rdb.data["cart:eve"] = "{oops"

	if _, err := NewRedisStore(rdb, time.Hour).Load(context.Background(), "eve"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRedisStore_SetError(t *testing.T) {
	rdb := newMockRedis()
	rdb.setErr = errors.New("connection refused")

	err := NewRedisStore(rdb, time.Hour).Save(context.Background(), "x", []Item{dress("M")})
	if err == nil || !errors.Is(err, rdb.setErr) {
		t.Fatalf("expected wrapped set error, got %v", err)
	}
}

func TestOpen_RedisBacked(t *testing.T) {
	ctx := context.Background()
	rdb := newMockRedis()

	s := Open(ctx, NewRedisStore(rdb, time.Hour), "carol", nil)
	s.Add(dress("S"))
	s.Add(dress("S"))

	reopened := Open(ctx, NewRedisStore(rdb, time.Hour), "carol", nil)
	if reopened.TotalPrice() != 25000 {
		t.Fatalf("expected 25000 after reopen, got %d", reopened.TotalPrice())
	}
}
