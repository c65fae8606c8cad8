// Package app wires one client instance: configuration, logger, session
// guard and the data store handle shared by every page.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/and161185/servicelog/internal/assistant"
	"github.com/and161185/servicelog/internal/config"
	"github.com/and161185/servicelog/internal/service"
	"github.com/and161185/servicelog/internal/session"
	"github.com/and161185/servicelog/internal/store"
	"github.com/and161185/servicelog/internal/store/remote"
)

const tokenTTL = 15 * time.Minute

// Context is the dependency container handed to controllers.
type Context struct {
	Config  config.CLIConfig
	Log     *zap.Logger
	Session *session.Guard

	rdb   *redis.Client
	store store.Store
}

// New builds the session storage. Nothing is read until Start.
func New(cfg config.CLIConfig, log *zap.Logger) *Context {
	a := &Context{Config: cfg, Log: log}
	var st session.Storage
	if cfg.RedisAddr != "" {
		a.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		st = session.NewRedisStorage(a.rdb, "servicelog:", 0)
	} else {
		dir := cfg.SessionDir
		if dir == "" {
			dir = session.DefaultDir()
		}
		st = session.FileStorage{Dir: dir}
	}
	a.Session = session.NewGuard(st, log)
	return a
}

// Start restores the saved session and opens the store. A store opened by
// an earlier Start is kept.
func (a *Context) Start(ctx context.Context) error {
	if err := a.Session.Restore(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if a.store != nil {
		return nil
	}
	st, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	a.store = st
	return nil
}

func (a *Context) openStore(ctx context.Context) (store.Store, error) {
	if a.Config.Local != "" {
		a.Log.Debug("using local database", zap.String("dsn", a.Config.Local))
		return store.OpenSQLite(a.Config.Local)
	}
	token := ""
	if u, ok := a.Session.Current(); ok && a.Config.JWTKey != "" {
		var err error
		if token, _, err = service.IssueToken([]byte(a.Config.JWTKey), u, tokenTTL); err != nil {
			return nil, err
		}
	}
	return remote.Dial(remote.Options{
		Addr:       a.Config.Addr,
		CACert:     a.Config.CACert,
		SkipVerify: a.Config.Insecure,
		Plaintext:  a.Config.Plaintext,
		Token:      token,
	})
}

// Store returns the handle opened by Start.
func (a *Context) Store() store.Store { return a.store }

// Assistant starts a new chat over the configured Gemini client.
func (a *Context) Assistant() *assistant.Chat {
	g := assistant.NewGemini(a.Config.GeminiKey, a.Config.GeminiModel, a.Config.GeminiURL)
	return assistant.NewChat(g, a.Log)
}

// Logout clears the identity.
func (a *Context) Logout(ctx context.Context) error {
	return a.Session.Logout(ctx)
}

// Close releases the store and the redis client.
func (a *Context) Close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
	}
	if a.rdb != nil {
		err = errors.Join(err, a.rdb.Close())
	}
	return err
}
