// file: stores/gorm_store.go
package stores

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"FrostCTF/models"
)

// GormSessionStore 基于 MySQL 会话表的存储；过期行由 Get 调用方惰性删除，
// 另有定时任务兜底清理
type GormSessionStore struct {
	db *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{db: db}
}

func (s *GormSessionStore) Create(ctx context.Context, session *models.Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *GormSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *GormSessionStore) Touch(ctx context.Context, token string, at time.Time) error {
	return s.db.WithContext(ctx).Model(&models.Session{}).
		Where("token = ?", token).
		UpdateColumn("last_activity", at).Error
}

func (s *GormSessionStore) Delete(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error
}

func (s *GormSessionStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
