package remote

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/rpcapi"
	grpcserver "github.com/and161185/servicelog/internal/server/grpc"
	"github.com/and161185/servicelog/internal/service"
	"github.com/and161185/servicelog/internal/store"
)

func startServer(t *testing.T, signKey []byte) func(context.Context, string) (net.Conn, error) {
	t.Helper()
	local, err := store.OpenSQLite("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer(grpc.ChainUnaryInterceptor(grpcserver.Interceptors(zaptest.NewLogger(t), signKey)...))
	rpcapi.RegisterDataStoreServer(gs, grpcserver.New(local.Clients(), local.WorkOrders(), local.ServiceReports(), local.TimeEntries()))
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(func() { gs.Stop(); _ = lis.Close(); _ = local.Close() })
	return func(context.Context, string) (net.Conn, error) { return lis.Dial() }
}

func dialBuf(t *testing.T, dialer func(context.Context, string) (net.Conn, error), token string) *Store {
	t.Helper()
	st, err := Dial(Options{Addr: "passthrough:///bufnet", Plaintext: true, Token: token}, grpc.WithContextDialer(dialer))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestRemote_CreateThenListThenDelete(t *testing.T) {
	st := dialBuf(t, startServer(t, nil), "")
	ctx := context.Background()

	c, err := st.Clients().Create(ctx, model.ClientDraft{Name: "Acme"})
	require.NoError(t, err)

	list, err := st.Clients().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, c.ID, list[0].ID)

	require.NoError(t, st.Clients().Delete(ctx, c.ID))
	list, err = st.Clients().List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	err = st.Clients().Delete(ctx, c.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRemote_SentinelsSurviveTransport(t *testing.T) {
	st := dialBuf(t, startServer(t, nil), "")
	ctx := context.Background()

	_, err := st.WorkOrders().Create(ctx, model.WorkOrderDraft{Title: "x", ClientID: "ghost"})
	require.ErrorIs(t, err, errs.ErrValidation)

	c, err := st.Clients().Create(ctx, model.ClientDraft{Name: "Acme"})
	require.NoError(t, err)
	o, err := st.WorkOrders().Create(ctx, model.WorkOrderDraft{Title: "x", ClientID: c.ID})
	require.NoError(t, err)
	require.ErrorIs(t, st.Clients().Delete(ctx, c.ID), errs.ErrConflict)

	e, err := st.TimeEntries().Create(ctx, model.TimeEntryDraft{WorkOrderID: o.ID, DurationMin: 25})
	require.NoError(t, err)
	fifty := 50
	e, err = st.TimeEntries().Update(ctx, e.ID, model.TimeEntryPatch{DurationMin: &fifty})
	require.NoError(t, err)
	require.Equal(t, 50, e.DurationMin)

	rep, err := st.ServiceReports().Create(ctx, model.ServiceReportDraft{WorkOrderID: o.ID, Notes: "ok", ServiceCost: 15000})
	require.NoError(t, err)
	notes := "poprawka"
	rep, err = st.ServiceReports().Update(ctx, rep.ID, model.ServiceReportPatch{Notes: &notes})
	require.NoError(t, err)
	require.Equal(t, "150.00", rep.Total().String())
}

func TestRemote_BearerTokenRequiredWhenServerHasKey(t *testing.T) {
	key := []byte("shared")
	dialer := startServer(t, key)
	ctx := context.Background()

	anon := dialBuf(t, dialer, "")
	_, err := anon.Clients().List(ctx)
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	tok, _, err := service.IssueToken(key, model.User{ID: "u1", CompanyID: "c1"}, time.Minute)
	require.NoError(t, err)
	authed := dialBuf(t, dialer, tok)
	_, err = authed.Clients().List(ctx)
	require.NoError(t, err)
}

func TestFromStatus(t *testing.T) {
	require.ErrorIs(t, fromStatus(status.Error(codes.NotFound, "x")), errs.ErrNotFound)
	require.ErrorIs(t, fromStatus(status.Error(codes.DeadlineExceeded, "x")), context.DeadlineExceeded)
	plain := errors.New("plain")
	require.Equal(t, plain, fromStatus(plain))
	require.EqualError(t, fromStatus(status.Error(codes.Internal, "boom")), "rpc Internal: boom")
}
