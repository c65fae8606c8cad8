package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRedisStorage_SetGetDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	st := NewRedisStorage(rdb, "sl:", time.Hour)
	ctx := context.Background()

	_, err := st.Get(ctx, StorageKey)
	require.ErrorIs(t, err, ErrNoValue)

	require.NoError(t, st.Set(ctx, StorageKey, []byte(`{"id":"u1"}`)))
	require.True(t, mr.Exists("sl:"+StorageKey))
	require.Equal(t, time.Hour, mr.TTL("sl:"+StorageKey))

	b, err := st.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"u1"}`, string(b))

	require.NoError(t, st.Delete(ctx, StorageKey))
	require.False(t, mr.Exists("sl:"+StorageKey))
}

func TestGuard_OverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	ctx := context.Background()

	g := NewGuard(NewRedisStorage(rdb, "", 0), zaptest.NewLogger(t))
	_, err := g.Login(ctx, AdminEmail, AdminPassword)
	require.NoError(t, err)

	other := NewGuard(NewRedisStorage(rdb, "", 0), zaptest.NewLogger(t))
	require.NoError(t, other.Restore(ctx))
	require.True(t, other.Authenticated())
}

func TestFileStorage_MissingDirIsEmpty(t *testing.T) {
	st := FileStorage{Dir: t.TempDir() + "/nested/dir"}
	ctx := context.Background()
	_, err := st.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNoValue)
	require.NoError(t, st.Delete(ctx, "k"))
	require.NoError(t, st.Set(ctx, "k", []byte("v")))
	b, err := st.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", string(b))
}
