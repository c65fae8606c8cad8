package grpcserver

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/service"
)

type fakeAddr struct{}

func (fakeAddr) Network() string { return "tcp" }
func (fakeAddr) String() string  { return "127.0.0.1:12345" }

func TestLoggingUnary_LogsMethodCodeActorAndCompany(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	ic := LoggingUnary(zap.New(core))
	ctx := peer.NewContext(WithUser(context.Background(), "u1", "c1"), &peer.Peer{Addr: fakeAddr{}})
	info := &grpc.UnaryServerInfo{FullMethod: "/servicelog.v1.DataStore/ListClients"}

	resp, err := ic(ctx, "req", info, func(context.Context, any) (any, error) { return "ok", nil })
	if err != nil || resp != "ok" {
		t.Fatalf("resp=%v err=%v", resp, err)
	}

	if logs.Len() != 1 {
		t.Fatalf("entries=%d, want 1", logs.Len())
	}
	fields := logs.All()[0].ContextMap()
	want := map[string]string{
		"method":  "/servicelog.v1.DataStore/ListClients",
		"code":    "OK",
		"actor":   "u1",
		"company": "c1",
		"peer":    "127.0.0.1:12345",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Fatalf("%s=%v, want %q", k, fields[k], v)
		}
	}
}

func TestLoggingUnary_AnonymousHasNoIdentityFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	ic := LoggingUnary(zap.New(core))
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Y"}

	if _, err := ic(context.Background(), "req", info, func(context.Context, any) (any, error) { return nil, nil }); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	fields := logs.All()[0].ContextMap()
	for _, k := range []string{"actor", "company"} {
		if _, ok := fields[k]; ok {
			t.Fatalf("anonymous call logged %s", k)
		}
	}
}

func TestLoggingUnary_PassesErrorThrough(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	ic := LoggingUnary(zap.New(core))
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Boom"}

	wantErr := errors.New("boom")
	_, err := ic(context.Background(), "req", info, func(context.Context, any) (any, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("err=%v, want %v", err, wantErr)
	}
	if lvl := logs.All()[0].Level; lvl != zap.ErrorLevel {
		t.Fatalf("level=%v, want error", lvl)
	}
}

func TestRecoverUnary_CatchesPanic(t *testing.T) {
	t.Parallel()

	ic := RecoverUnary(zaptest.NewLogger(t))
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Panic"}

	_, err := ic(context.Background(), "req", info, func(context.Context, any) (any, error) { panic("oh no") })
	if status.Code(err) != codes.Internal {
		t.Fatalf("code=%v, want Internal", status.Code(err))
	}

	resp, err := ic(context.Background(), "req", info, func(context.Context, any) (any, error) { return 42, nil })
	if err != nil || resp != 42 {
		t.Fatalf("resp=%v err=%v", resp, err)
	}
}

func TestMetricsUnary_Passthrough(t *testing.T) {
	t.Parallel()

	ic := MetricsUnary()
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Sleep"}
	start := time.Now()
	resp, err := ic(context.Background(), "req", info, func(context.Context, any) (any, error) {
		time.Sleep(2 * time.Millisecond)
		return "done", nil
	})
	if err != nil || resp != "done" {
		t.Fatalf("resp=%v err=%v", resp, err)
	}
	if time.Since(start) < 2*time.Millisecond {
		t.Fatalf("handler did not run")
	}
}

func TestAuthUnary(t *testing.T) {
	t.Parallel()

	key := []byte("k")
	ic := AuthUnary(key, zaptest.NewLogger(t))
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Y"}
	var seenUser, seenCompany string
	h := func(ctx context.Context, _ any) (any, error) {
		seenUser, _ = UserIDFromCtx(ctx)
		seenCompany, _ = CompanyFromCtx(ctx)
		return nil, nil
	}

	if _, err := ic(context.Background(), nil, info, h); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("no token: code=%v, want Unauthenticated", status.Code(err))
	}

	bad := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer nope"))
	if _, err := ic(bad, nil, info, h); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("bad token: code=%v, want Unauthenticated", status.Code(err))
	}

	tok, _, err := service.IssueToken(key, model.User{ID: "u1", CompanyID: "c1"}, time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	good := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer "+tok))
	if _, err := ic(good, nil, info, h); err != nil {
		t.Fatalf("good token: %v", err)
	}
	if seenUser != "u1" || seenCompany != "c1" {
		t.Fatalf("ctx user=%q company=%q", seenUser, seenCompany)
	}

	// no key configured: anonymous calls pass
	open := AuthUnary(nil, zaptest.NewLogger(t))
	if _, err := open(context.Background(), nil, info, h); err != nil {
		t.Fatalf("anonymous: %v", err)
	}
}

func Test_bearerTokenFromMD(t *testing.T) {
	t.Parallel()

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer abc.def.ghi"))
	got, err := bearerTokenFromMD(ctx)
	if err != nil || got != "abc.def.ghi" {
		t.Fatalf("got=%q err=%v", got, err)
	}

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Basic foo"))
	if _, err = bearerTokenFromMD(ctx); !errors.Is(err, errNoBearer) {
		t.Fatalf("basic: err=%v, want errNoBearer", err)
	}

	ctx = metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer   "))
	if _, err = bearerTokenFromMD(ctx); err == nil {
		t.Fatalf("blank bearer must fail")
	}

	if _, err = bearerTokenFromMD(context.Background()); err == nil {
		t.Fatalf("missing metadata must fail")
	}
}
