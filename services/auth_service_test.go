// file: services/auth_service_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"FrostCTF/models"
	"FrostCTF/stores"
)

func newTestGate(t *testing.T, ttl time.Duration) (*AuthGate, stores.SessionStore) {
	t.Helper()
	db := newTestDB(t)
	store := stores.NewGormSessionStore(db)
	return NewAuthGate(db, store, ttl, zerolog.Nop()), store
}

func TestSignupAndResolve(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	user, token, err := gate.Signup(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Username != "alice" || user.Role != models.RolePlayer {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token == "" {
		t.Fatal("signup returned empty token")
	}

	resolved, err := gate.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved == nil || resolved.ID != user.ID {
		t.Fatalf("resolve returned %+v, want user %d", resolved, user.ID)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	if _, _, err := gate.Signup(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, _, err := gate.Signup(ctx, "alice", "another1")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate signup err = %v, want ErrUsernameTaken", err)
	}
}

func TestSignupValidation(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	if _, _, err := gate.Signup(ctx, "", "secret1"); !errors.Is(err, ErrMissingField) {
		t.Errorf("empty username err = %v, want ErrMissingField", err)
	}
	if _, _, err := gate.Signup(ctx, "bob", ""); !errors.Is(err, ErrMissingField) {
		t.Errorf("empty password err = %v, want ErrMissingField", err)
	}
	if _, _, err := gate.Signup(ctx, "bob", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("short password err = %v, want ErrWeakPassword", err)
	}
	// 长度按字符数计：5 个多字节字符是 15 字节，仍属于弱密码
	if _, _, err := gate.Signup(ctx, "bob", "密码密码密"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("5-rune password err = %v, want ErrWeakPassword", err)
	}
	if _, _, err := gate.Signup(ctx, "bob", "密码密码密码"); err != nil {
		t.Errorf("6-rune password err = %v, want success", err)
	}
	// 全是标签的用户名清洗后为空
	if _, _, err := gate.Signup(ctx, "<script></script>", "secret1"); !errors.Is(err, ErrMissingField) {
		t.Errorf("tag-only username err = %v, want ErrMissingField", err)
	}
}

func TestSignupSanitizesUsername(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	user, _, err := gate.Signup(ctx, "  <b>alice</b>  ", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("username = %q, want %q", user.Username, "alice")
	}

	// 清洗后的用户名可以直接登录
	if _, _, err := gate.Login(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("login after sanitize: %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	if _, _, err := gate.Signup(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// 密码错误和用户不存在必须返回同一个错误
	_, _, errWrongPass := gate.Login(ctx, "alice", "wrongpass")
	_, _, errNoUser := gate.Login(ctx, "nobody", "secret1")

	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", errWrongPass)
	}
	if !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", errNoUser)
	}
}

func TestLoginBannedUser(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	user, _, err := gate.Signup(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	gate.db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("status", models.StatusBanned)

	if _, _, err := gate.Login(ctx, "alice", "secret1"); !errors.Is(err, ErrUserBanned) {
		t.Fatalf("banned login err = %v, want ErrUserBanned", err)
	}
}

func TestResolveBannedUser(t *testing.T) {
	gate, store := newTestGate(t, time.Hour)
	ctx := context.Background()

	user, token, err := gate.Signup(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if resolved, _ := gate.Resolve(ctx, token); resolved == nil {
		t.Fatal("session invalid before ban")
	}

	// 封禁后存量会话立即失效，不等 TTL 走完
	gate.db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("status", models.StatusBanned)

	resolved, err := gate.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved != nil {
		t.Fatal("banned user still resolves to an identity")
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, stores.ErrSessionNotFound) {
		t.Fatalf("banned user's session still in store: %v", err)
	}

	// 解封后需要重新登录，旧会话不复活
	gate.db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("status", models.StatusActive)
	if resolved, _ := gate.Resolve(ctx, token); resolved != nil {
		t.Fatal("deleted session resurrected after unban")
	}
	if _, _, err := gate.Login(ctx, "alice", "secret1"); err != nil {
		t.Fatalf("login after unban: %v", err)
	}
}

func TestConcurrentSessionsStayValid(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	_, token1, err := gate.Signup(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, token2, err := gate.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if token1 == token2 {
		t.Fatal("second login reused the same token")
	}

	// 新登录不吊销旧会话
	for _, token := range []string{token1, token2} {
		user, err := gate.Resolve(ctx, token)
		if err != nil || user == nil {
			t.Fatalf("token %q no longer valid: user=%v err=%v", token, user, err)
		}
	}
}

func TestResolveExpiredSession(t *testing.T) {
	// 负的 TTL 让会话一签发就过期
	gate, store := newTestGate(t, -time.Minute)
	ctx := context.Background()

	_, token, err := gate.Signup(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	user, err := gate.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user != nil {
		t.Fatal("expired session resolved to a user")
	}

	// 过期会话被惰性删除
	if _, err := store.Get(ctx, token); !errors.Is(err, stores.ErrSessionNotFound) {
		t.Fatalf("expired session still in store: %v", err)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	user, err := gate.Resolve(ctx, "")
	if err != nil || user != nil {
		t.Fatalf("empty token: user=%v err=%v, want nil,nil", user, err)
	}
	user, err = gate.Resolve(ctx, "no-such-token")
	if err != nil || user != nil {
		t.Fatalf("unknown token: user=%v err=%v, want nil,nil", user, err)
	}
}

func TestResolveDeletedUser(t *testing.T) {
	gate, store := newTestGate(t, time.Hour)
	ctx := context.Background()

	user, token, err := gate.Signup(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	gate.db.Delete(&models.User{}, user.ID)

	resolved, err := gate.Resolve(ctx, token)
	if err != nil || resolved != nil {
		t.Fatalf("deleted user resolved: user=%v err=%v", resolved, err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, stores.ErrSessionNotFound) {
		t.Fatalf("orphan session still in store: %v", err)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	_, token, err := gate.Signup(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := gate.Logout(ctx, token); err != nil {
		t.Fatalf("first logout: %v", err)
	}
	if user, _ := gate.Resolve(ctx, token); user != nil {
		t.Fatal("session still valid after logout")
	}

	// 重复登出和未知 token 都不报错
	if err := gate.Logout(ctx, token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if err := gate.Logout(ctx, "never-existed"); err != nil {
		t.Fatalf("unknown token logout: %v", err)
	}
}

func TestPasswordStoredHashed(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	created, _, err := gate.Signup(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	var row models.User
	if err := gate.db.First(&row, created.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if row.Password == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if !row.CheckPassword("secret1") {
		t.Fatal("stored hash does not verify original password")
	}
}

func TestEnsureAdmin(t *testing.T) {
	gate, _ := newTestGate(t, time.Hour)
	ctx := context.Background()

	if err := gate.EnsureAdmin(ctx, "root", "rootpass1"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	// 幂等：第二次不创建也不报错
	if err := gate.EnsureAdmin(ctx, "root", "rootpass1"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}

	var count int64
	gate.db.Model(&models.User{}).Where("username = ?", "root").Count(&count)
	if count != 1 {
		t.Fatalf("admin count = %d, want 1", count)
	}

	user, _, err := gate.Login(ctx, "root", "rootpass1")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if user.Role != models.RoleAdmin {
		t.Fatalf("role = %q, want admin", user.Role)
	}
}
