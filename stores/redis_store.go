// file: stores/redis_store.go
package stores

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"FrostCTF/models"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore 基于 Redis 的会话存储，TTL 与 expires_at 对齐，
// 过期后由 Redis 自动回收
type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *RedisSessionStore) Create(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return s.rdb.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	val, err := s.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session models.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Touch(ctx context.Context, token string, at time.Time) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	session.LastActivity = at
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	// KeepTTL 保持原有过期时间不变，touch 不产生滑动续期
	return s.rdb.Set(ctx, sessionKey(token), data, redis.KeepTTL).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}

// DeleteExpired Redis 按 TTL 自动清理，这里无事可做
func (s *RedisSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
