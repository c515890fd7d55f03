package sessions

import (
	"context"
	"errors"
	"fmt"

	"kanri-portal/app/server/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound 表示会话不存在或已过期
var ErrNotFound = errors.New("session not found")

// Manager 负责不透明会话令牌与用户 ID 的映射，数据存放在 redis 中
type Manager struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Manager {
	return &Manager{rdb: rdb}
}

// Create 签发一个新的会话令牌并绑定到指定用户
func (m *Manager) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()

	key := fmt.Sprintf(constants.CacheKeySession, token)
	if err := m.rdb.Set(ctx, key, uint64(userID), constants.SessionDuration).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Resolve 查找令牌绑定的用户 ID ，不存在或过期时返回 ErrNotFound
func (m *Manager) Resolve(ctx context.Context, token string) (uint, error) {
	if len(token) == 0 {
		return 0, ErrNotFound
	}

	key := fmt.Sprintf(constants.CacheKeySession, token)
	userID, err := m.rdb.Get(ctx, key).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to query session: %w", err)
	}

	return uint(userID), nil
}

// Destroy 删除会话，令牌不存在也视为成功
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if len(token) == 0 {
		return nil
	}

	key := fmt.Sprintf(constants.CacheKeySession, token)
	if err := m.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
