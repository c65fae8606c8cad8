package controller

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/nav"
	"github.com/and161185/servicelog/internal/session"
)

func TestLogin_Submit(t *testing.T) {
	g := session.NewGuard(session.FileStorage{Dir: t.TempDir()}, zaptest.NewLogger(t))
	l := NewLogin(g)
	ctx := context.Background()

	_, next, err := l.Submit(ctx, session.AdminEmail, "")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	require.Equal(t, nav.Login, next)
	require.Equal(t, session.LoginFailedMessage, l.Message())

	u, next, err := l.Submit(ctx, session.AdminEmail, session.AdminPassword)
	require.NoError(t, err)
	require.Equal(t, nav.Dashboard, next)
	require.Equal(t, "u1", u.ID)
	require.Empty(t, l.Message())
	require.True(t, g.Authenticated())
}
