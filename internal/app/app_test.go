package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/servicelog/internal/config"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/session"
	"github.com/and161185/servicelog/internal/store/remote"
)

func localConfig(t *testing.T) config.CLIConfig {
	cfg := config.DefaultCLI()
	cfg.Local = "file:" + t.Name() + "?mode=memory&cache=shared"
	cfg.SessionDir = t.TempDir()
	return cfg
}

func TestContext_LocalLifecycle(t *testing.T) {
	ctx := context.Background()
	cfg := localConfig(t)

	a := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, a.Start(ctx))
	require.False(t, a.Session.Authenticated())

	_, err := a.Session.Login(ctx, session.AdminEmail, session.AdminPassword)
	require.NoError(t, err)
	_, err = a.Store().Clients().Create(ctx, model.ClientDraft{Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, b.Start(ctx))
	require.True(t, b.Session.Authenticated())
	require.NoError(t, b.Logout(ctx))
	require.False(t, b.Session.Authenticated())
	require.NoError(t, b.Close())
}

func TestContext_RedisSession(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()
	cfg := localConfig(t)
	cfg.RedisAddr = mr.Addr()

	a := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, a.Start(ctx))
	_, err := a.Session.Login(ctx, session.AdminEmail, session.AdminPassword)
	require.NoError(t, err)
	require.True(t, mr.Exists("servicelog:"+session.StorageKey))
	require.NoError(t, a.Close())
}

func TestContext_RemoteStoreWithToken(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultCLI()
	cfg.SessionDir = t.TempDir()
	cfg.Plaintext = true
	cfg.JWTKey = "secret"

	a := New(cfg, zaptest.NewLogger(t))
	_, err := a.Session.Login(ctx, session.AdminEmail, session.AdminPassword)
	require.NoError(t, err)
	require.NoError(t, a.Start(ctx))
	_, ok := a.Store().(*remote.Store)
	require.True(t, ok)
	require.NoError(t, a.Close())
}

func TestContext_Assistant(t *testing.T) {
	a := New(localConfig(t), zaptest.NewLogger(t))
	require.NotNil(t, a.Assistant())
	require.Empty(t, a.Assistant().Transcript())
}
