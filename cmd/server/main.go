// Command servicelog-server serves the ServiceLog data store over gRPC.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/and161185/servicelog/internal/config"
	"github.com/and161185/servicelog/internal/metrics"
	"github.com/and161185/servicelog/internal/migrate"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/rpcapi"
	grpcserver "github.com/and161185/servicelog/internal/server/grpc"
	"github.com/and161185/servicelog/internal/service"
	"github.com/and161185/servicelog/internal/session"
	"github.com/and161185/servicelog/internal/store"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main loads configuration, prepares the database, and serves until SIGINT/SIGTERM.
func main() {
	cfg, err := config.LoadServer("servicelog-server", os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(2)
	}

	logger, _ := zap.NewProduction()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
		zap.String("driver", cfg.Driver),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("server error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("shutdown complete")
	_ = logger.Sync()
}

// run serves until ctx is done or a listener fails. The store is closed on every path.
func run(ctx context.Context, cfg config.ServerConfig, logger *zap.Logger) error {
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	err = service.Seed(ctx, st.Users(), service.Account{
		ID:       session.AdminID,
		Email:    session.AdminEmail,
		Password: session.AdminPassword,
		Name:     session.AdminName,
		Role:     model.RoleAdmin,
	}, logger)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(grpcserver.Interceptors(logger, []byte(cfg.JWTKey))...),
	}
	if !cfg.Plaintext {
		creds, err := credentials.NewServerTLSFromFile(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			return fmt.Errorf("load TLS cert/key: %w", err)
		}
		opts = append(opts, grpc.Creds(creds))
	}
	if cfg.JWTKey == "" {
		logger.Warn("no jwt key configured, accepting anonymous calls")
	}
	s := grpc.NewServer(opts...)

	rpcapi.RegisterDataStoreServer(s, grpcserver.New(st.Clients(), st.WorkOrders(), st.ServiceReports(), st.TimeEntries()))

	// Health & reflection (dev)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus(rpcapi.ServiceName, healthpb.HealthCheckResponse_SERVING)
	if cfg.Dev {
		reflection.Register(s)
	}

	lis, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("listening", zap.String("addr", lis.Addr().String()), zap.Bool("tls", !cfg.Plaintext))
		errCh <- s.Serve(lis)
	}()

	var ops *http.Server
	if cfg.MetricsAddr != "" {
		ops = opsServer(cfg.MetricsAddr)
		go func() {
			logger.Info("ops listening", zap.String("addr", cfg.MetricsAddr))
			if err := ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	// Wait for stop
	select {
	case <-ctx.Done():
	case err = <-errCh:
	}

	hs.Shutdown()
	if ops != nil {
		sctx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
		_ = ops.Shutdown(sctx)
		cancel()
	}
	// graceful shutdown
	done := make(chan struct{})
	go func() {
		s.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(cfg.Shutdown):
		s.Stop()
	}
	return err
}

func openStore(ctx context.Context, cfg config.ServerConfig, log *zap.Logger) (*store.Local, error) {
	if cfg.Driver == "sqlite" {
		return store.OpenSQLite(cfg.DSN)
	}
	ver, err := migrate.Up(ctx, cfg.DSN, log)
	if err != nil {
		return nil, err
	}
	log.Info("migrations applied", zap.Int64("version", ver))
	return store.OpenPostgres(ctx, cfg.DSN)
}

func opsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}
