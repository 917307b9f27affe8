// file: services/auth_service.go
package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"FrostCTF/models"
	"FrostCTF/stores"
	"FrostCTF/utils"
)

// SessionCookieName 会话 Cookie 名，与前端约定一致
const SessionCookieName = "session"

const minPasswordLength = 6

// AuthGate 认证网关：校验用户名密码、签发/解析/销毁会话。
// 会话后端通过 stores.SessionStore 注入，不持有全局状态。
type AuthGate struct {
	db       *gorm.DB
	sessions stores.SessionStore
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAuthGate(db *gorm.DB, sessions stores.SessionStore, ttl time.Duration, log zerolog.Logger) *AuthGate {
	return &AuthGate{db: db, sessions: sessions, ttl: ttl, log: log}
}

// TTL 返回会话有效期，控制器用它设置 Cookie Max-Age
func (g *AuthGate) TTL() time.Duration {
	return g.ttl
}

// Signup 注册新用户并直接登录。
// 校验顺序：字段非空 -> 密码强度 -> 用户名唯一（大小写敏感精确匹配）
func (g *AuthGate) Signup(ctx context.Context, username, password string) (*models.SafeUser, string, error) {
	username = utils.Sanitize(username)
	password = utils.Sanitize(password)

	if username == "" || password == "" {
		return nil, "", ErrMissingField
	}
	// 按字符数而非字节数计，多字节字符的密码不吃亏
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, "", ErrWeakPassword
	}

	var existing models.User
	err := g.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, "", ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		g.log.Error().Err(err).Msg("signup: user lookup failed")
		return nil, "", ErrStorage
	}

	newUser := models.User{
		Username: username,
		Password: password, // BeforeSave Hook 落库前哈希
		Role:     models.RolePlayer,
	}
	if err := g.db.WithContext(ctx).Create(&newUser).Error; err != nil {
		// 并发注册同名用户时由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrUsernameTaken
		}
		g.log.Error().Err(err).Msg("signup: user create failed")
		return nil, "", ErrStorage
	}

	token, err := g.issueSession(ctx, newUser.ID)
	if err != nil {
		return nil, "", err
	}

	safe := newUser.Safe()
	return &safe, token, nil
}

// Login 校验用户名密码并签发新会话；旧会话保持有效。
// 未知用户和密码错误返回同一个错误，避免用户名枚举。
func (g *AuthGate) Login(ctx context.Context, username, password string) (*models.SafeUser, string, error) {
	username = utils.Sanitize(username)
	password = utils.Sanitize(password)

	if username == "" || password == "" {
		return nil, "", ErrMissingField
	}

	var user models.User
	err := g.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		g.log.Error().Err(err).Msg("login: user lookup failed")
		return nil, "", ErrStorage
	}

	if !user.CheckPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	if user.Status == models.StatusBanned {
		return nil, "", ErrUserBanned
	}

	token, err := g.issueSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	safe := user.Safe()
	return &safe, token, nil
}

// Resolve 把会话 token 解析成用户身份；返回 (nil, nil) 表示未认证。
// 已过期会话和被封禁用户的会话在这里被惰性删除，
// last_activity 尽力而为地刷新。
func (g *AuthGate) Resolve(ctx context.Context, token string) (*models.SafeUser, error) {
	if token == "" {
		return nil, nil
	}

	session, err := g.sessions.Get(ctx, token)
	if errors.Is(err, stores.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		g.log.Error().Err(err).Msg("resolve: session lookup failed")
		return nil, ErrStorage
	}

	now := time.Now()
	if session.Expired(now) {
		if err := g.sessions.Delete(ctx, token); err != nil {
			g.log.Warn().Err(err).Msg("resolve: expired session cleanup failed")
		}
		return nil, nil
	}

	if err := g.sessions.Touch(ctx, token, now); err != nil {
		g.log.Debug().Err(err).Msg("resolve: last_activity touch failed")
	}

	var user models.User
	err = g.db.WithContext(ctx).First(&user, session.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 用户已被删除，会话随之作废
		g.sessions.Delete(ctx, token)
		return nil, nil
	}
	if err != nil {
		g.log.Error().Err(err).Msg("resolve: user load failed")
		return nil, ErrStorage
	}

	// 封禁立即生效于存量会话，不等 TTL 过期
	if user.Status == models.StatusBanned {
		g.sessions.Delete(ctx, token)
		return nil, nil
	}

	safe := user.Safe()
	return &safe, nil
}

// Logout 无条件删除会话，token 不存在也不报错（幂等）
func (g *AuthGate) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := g.sessions.Delete(ctx, token); err != nil {
		g.log.Warn().Err(err).Msg("logout: session delete failed")
	}
	return nil
}

// EnsureAdmin 启动时保证存在一个管理员账号（幂等）
func (g *AuthGate) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	var existing models.User
	err := g.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := models.User{
		Username: username,
		Password: password,
		Role:     models.RoleAdmin,
	}
	return g.db.WithContext(ctx).Create(&admin).Error
}

func (g *AuthGate) issueSession(ctx context.Context, userID uint32) (string, error) {
	now := time.Now()
	session := models.Session{
		Token:        uuid.NewString(),
		UserID:       userID,
		ExpiresAt:    now.Add(g.ttl),
		LastActivity: now,
		CreatedAt:    now,
	}
	if err := g.sessions.Create(ctx, &session); err != nil {
		g.log.Error().Err(err).Msg("session create failed")
		return "", ErrStorage
	}
	return session.Token, nil
}
