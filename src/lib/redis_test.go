package lib

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"cycleparadise/src/types"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionCacheGet(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewSessionCache(rdb)
	sid := uuid.New()
	want := CachedSession{
		SessionID: sid,
		UserID:    uuid.New(),
		Email:     "admin@cycleparadise.com",
		Role:      types.ROLE_ADMIN,
		ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(want)
	require.NoError(t, err)

	mock.ExpectGet("admin_session:" + sid.String()).SetVal(string(b))
	got, ok := cache.Get(context.Background(), sid)
	require.True(t, ok)
	assert.Equal(t, want, *got)

	mock.ExpectGet("admin_session:" + sid.String()).RedisNil()
	_, ok = cache.Get(context.Background(), sid)
	assert.False(t, ok)

	mock.ExpectGet("admin_session:" + sid.String()).SetErr(errors.New("connection refused"))
	_, ok = cache.Get(context.Background(), sid)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCacheDelete(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewSessionCache(rdb)
	sid := uuid.New()

	mock.ExpectDel("admin_session:" + sid.String()).SetVal(1)
	assert.NoError(t, cache.Delete(context.Background(), sid))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionCacheSkipsExpired(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := NewSessionCache(rdb)

	err := cache.Set(context.Background(), CachedSession{
		SessionID: uuid.New(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}, time.Hour)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilSessionCache(t *testing.T) {
	var cache *SessionCache
	_, ok := cache.Get(context.Background(), uuid.New())
	assert.False(t, ok)
	assert.NoError(t, cache.Delete(context.Background(), uuid.New()))

	disabled := NewSessionCache(nil)
	assert.NoError(t, disabled.Set(context.Background(), CachedSession{ExpiresAt: time.Now().Add(time.Hour)}, time.Hour))
}

func TestNewRedisClient(t *testing.T) {
	rdb, err := NewRedisClient("")
	assert.NoError(t, err)
	assert.Nil(t, rdb)

	_, err = NewRedisClient("not a url")
	assert.Error(t, err)

	rdb, err = NewRedisClient("redis://localhost:6379/0")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", rdb.Options().Addr)
}
