// file: stores/session_store.go
package stores

import (
	"context"
	"errors"
	"time"

	"FrostCTF/models"
)

// ErrSessionNotFound token 不存在或已经失效
var ErrSessionNotFound = errors.New("session not found")

// SessionStore 会话存取接口。认证网关只依赖这个抽象，
// 具体后端（Redis / MySQL）在启动时注入。
type SessionStore interface {
	// Create 写入一条新会话
	Create(ctx context.Context, session *models.Session) error
	// Get 按 token 查会话；不存在返回 ErrSessionNotFound。
	// 过期判定由调用方负责，Get 不做删除。
	Get(ctx context.Context, token string) (*models.Session, error)
	// Touch 尽力而为地刷新 last_activity，失败不影响主流程
	Touch(ctx context.Context, token string, at time.Time) error
	// Delete 删除会话；token 不存在时静默成功（幂等）
	Delete(ctx context.Context, token string) error
	// DeleteExpired 清理已过期会话，返回清理数量
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
