// file: stores/redis_store_test.go
package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"FrostCTF/models"
)

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisSessionStore(rdb), mr
}

func TestRedisStoreCreateGet(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	session := &models.Session{
		Token:        "tok-1",
		UserID:       42,
		ExpiresAt:    now.Add(time.Hour),
		LastActivity: now,
		CreatedAt:    now,
	}
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 42 || !got.ExpiresAt.Equal(session.ExpiresAt) {
		t.Fatalf("got = %+v", got)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("missing token err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisStoreTTLExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	store.Create(ctx, &models.Session{
		Token:     "tok-1",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Minute),
	})

	// 快进超过 TTL，键被 Redis 自动回收
	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expired key err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisStoreTouchKeepsTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	store.Create(ctx, &models.Session{
		Token:     "tok-1",
		UserID:    1,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	at := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	if err := store.Touch(ctx, "tok-1", at); err != nil {
		t.Fatalf("touch: %v", err)
	}

	got, err := store.Get(ctx, "tok-1")
	if err != nil {
		t.Fatalf("get after touch: %v", err)
	}
	if !got.LastActivity.Equal(at) {
		t.Fatalf("last_activity = %v, want %v", got.LastActivity, at)
	}

	// touch 不产生滑动续期：TTL 仍按原 expires_at 回收
	ttl := mr.TTL(sessionKey("tok-1"))
	if ttl <= 0 || ttl > time.Hour {
		t.Fatalf("ttl = %v after touch, want (0, 1h]", ttl)
	}
}

func TestRedisStoreDeleteIdempotent(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	store.Create(ctx, &models.Session{Token: "tok-1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("session still present after delete")
	}
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
