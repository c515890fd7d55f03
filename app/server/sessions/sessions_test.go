package sessions

import (
	"context"
	"testing"
	"time"

	"kanri-portal/app/server/constants"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(rdb), mr
}

func TestCreateAndResolve(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	token, err := m.Create(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestResolveUnknownToken(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Resolve(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDestroy(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	token, err := m.Create(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, token))

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)

	// 不存在的令牌销毁也不报错
	assert.NoError(t, m.Destroy(ctx, token))
	assert.NoError(t, m.Destroy(ctx, ""))
}

func TestSessionExpiry(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	token, err := m.Create(ctx, 7)
	require.NoError(t, err)

	// 有效期内可用
	mr.FastForward(constants.SessionDuration - time.Minute)
	_, err = m.Resolve(ctx, token)
	require.NoError(t, err)

	// 满 24 小时后失效
	mr.FastForward(2 * time.Minute)
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokensAreUnique(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	first, err := m.Create(ctx, 1)
	require.NoError(t, err)
	second, err := m.Create(ctx, 1)
	require.NoError(t, err)

	// 同一用户可以持有多个互不相同的令牌
	assert.NotEqual(t, first, second)

	require.NoError(t, m.Destroy(ctx, first))
	_, err = m.Resolve(ctx, second)
	assert.NoError(t, err)
}
