// file: stores/gorm_store_test.go
package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"FrostCTF/models"
)

func newGormStore(t *testing.T) *GormSessionStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewGormSessionStore(db)
}

func TestGormStoreCreateGet(t *testing.T) {
	store := newGormStore(t)
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
	if got.UserID != 42 || got.Token != "tok-1" {
		t.Fatalf("got = %+v", got)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("missing token err = %v, want ErrSessionNotFound", err)
	}
}

func TestGormStoreTouch(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	store.Create(ctx, &models.Session{
		Token:        "tok-1",
		UserID:       1,
		ExpiresAt:    now.Add(time.Hour),
		LastActivity: now,
	})

	later := now.Add(10 * time.Minute)
	if err := store.Touch(ctx, "tok-1", later); err != nil {
		t.Fatalf("touch: %v", err)
	}

	got, _ := store.Get(ctx, "tok-1")
	if !got.LastActivity.Equal(later) {
		t.Fatalf("last_activity = %v, want %v", got.LastActivity, later)
	}
	// 过期时间不因 touch 滑动
	if !got.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expires_at shifted: %v", got.ExpiresAt)
	}
}

func TestGormStoreDeleteIdempotent(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	store.Create(ctx, &models.Session{Token: "tok-1", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)})

	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "tok-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("session still present after delete")
	}
	// 再删一次不报错
	if err := store.Delete(ctx, "tok-1"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestGormStoreDeleteExpired(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()
	now := time.Now()

	store.Create(ctx, &models.Session{Token: "live", UserID: 1, ExpiresAt: now.Add(time.Hour)})
	store.Create(ctx, &models.Session{Token: "dead-1", UserID: 2, ExpiresAt: now.Add(-time.Hour)})
	store.Create(ctx, &models.Session{Token: "dead-2", UserID: 3, ExpiresAt: now.Add(-time.Minute)})

	n, err := store.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 2 {
		t.Fatalf("swept %d sessions, want 2", n)
	}

	if _, err := store.Get(ctx, "live"); err != nil {
		t.Fatalf("live session swept: %v", err)
	}
	if _, err := store.Get(ctx, "dead-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatal("expired session survived sweep")
	}
}
