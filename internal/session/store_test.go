package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taallam/learning-platform/internal/config"
	"github.com/taallam/learning-platform/internal/lib/errs"
)

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	if args.Bool(0) {
		*result.(*int) = args.Get(2).(int)
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func testConfig() config.Session {
	return config.Session{
		CookieName: "session_id",
		TTL:        720 * time.Hour,
	}
}

func TestStore_CreateResolve(t *testing.T) {
	cacheMock := new(CacheMock)
	store := New(cacheMock, testConfig())

	cacheMock.On("Set", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) > len("session:")
	}), 42, 720*time.Hour).Return(nil)

	sid, err := store.Create(context.Background(), 42)
	require.NoError(t, err)
	require.NotEmpty(t, sid)

	cacheMock.On("Get", mock.Anything, "session:"+sid, mock.Anything).Return(true, nil, 42)

	userID, err := store.Resolve(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)

	cacheMock.AssertExpectations(t)
}

func TestStore_ResolveUnknownSession(t *testing.T) {
	cacheMock := new(CacheMock)
	store := New(cacheMock, testConfig())

	cacheMock.On("Get", mock.Anything, "session:missing", mock.Anything).Return(false, nil)

	_, err := store.Resolve(context.Background(), "missing")
	assert.True(t, errors.Is(err, errs.ErrUnauthorized))
}

func TestStore_DestroyIdempotent(t *testing.T) {
	cacheMock := new(CacheMock)
	store := New(cacheMock, testConfig())

	// повторное уничтожение той же сессии не является ошибкой
	cacheMock.On("Invalidate", mock.Anything, "session:gone").Return(nil).Twice()

	require.NoError(t, store.Destroy(context.Background(), "gone"))
	require.NoError(t, store.Destroy(context.Background(), "gone"))

	cacheMock.AssertExpectations(t)
}

func TestStore_Cookies(t *testing.T) {
	store := New(new(CacheMock), testConfig())

	c := store.NewCookie("sid123")
	assert.Equal(t, "session_id", c.Name)
	assert.Equal(t, "sid123", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, int((720 * time.Hour).Seconds()), c.MaxAge)

	expired := store.ExpiredCookie()
	assert.Equal(t, -1, expired.MaxAge)
	assert.True(t, expired.HttpOnly)
}
