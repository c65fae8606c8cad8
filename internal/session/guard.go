// Package session holds the signed-in user and persists it between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
)

// StorageKey is where the identity is persisted.
const StorageKey = "servicelog_auth"

// Demo credentials. Login is a literal comparison against these.
const (
	AdminEmail    = "admin@servicelog.pl"
	AdminPassword = "password123"
	AdminID       = "u1"
	AdminName     = "Jan Kowalski"
)

// LoginFailedMessage is shown for every rejected login.
const LoginFailedMessage = "Błędne dane logowania."

// AuthError is returned by Login; it wraps errs.ErrUnauthorized.
type AuthError struct{ Msg string }

func (e *AuthError) Error() string { return e.Msg }
func (e *AuthError) Unwrap() error { return errs.ErrUnauthorized }

// Guard holds at most one authenticated user.
type Guard struct {
	mu    sync.Mutex
	store Storage
	log   *zap.Logger
	now   func() time.Time
	user  *model.User
}

// NewGuard constructs a guard over the given storage.
func NewGuard(st Storage, log *zap.Logger) *Guard {
	return &Guard{store: st, log: log, now: time.Now}
}

// Restore loads a persisted identity. A missing value leaves the guard
// unauthenticated; an unreadable one is cleared.
func (g *Guard) Restore(ctx context.Context) error {
	b, err := g.store.Get(ctx, StorageKey)
	if errors.Is(err, ErrNoValue) {
		g.set(nil)
		return nil
	}
	if err != nil {
		return err
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil || u.ID == "" {
		g.log.Warn("discarding unreadable session", zap.Error(err))
		g.set(nil)
		return g.store.Delete(ctx, StorageKey)
	}
	g.set(&u)
	return nil
}

// Login accepts exactly the demo credentials and persists the identity.
func (g *Guard) Login(ctx context.Context, email, password string) (model.User, error) {
	if email != AdminEmail || password != AdminPassword {
		return model.User{}, &AuthError{Msg: LoginFailedMessage}
	}
	u := model.User{
		ID:        AdminID,
		Email:     AdminEmail,
		Name:      AdminName,
		Role:      model.RoleAdmin,
		CompanyID: model.DefaultCompanyID,
		CreatedAt: g.now(),
	}
	b, err := json.Marshal(u)
	if err != nil {
		return model.User{}, err
	}
	if err := g.store.Set(ctx, StorageKey, b); err != nil {
		return model.User{}, err
	}
	g.set(&u)
	g.log.Info("login", zap.String("user", u.ID))
	return u, nil
}

// Logout clears the identity in memory and in storage.
func (g *Guard) Logout(ctx context.Context) error {
	g.set(nil)
	return g.store.Delete(ctx, StorageKey)
}

// Current returns the signed-in user, if any.
func (g *Guard) Current() (model.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return model.User{}, false
	}
	return *g.user, true
}

// Authenticated reports whether a user is signed in.
func (g *Guard) Authenticated() bool {
	_, ok := g.Current()
	return ok
}

func (g *Guard) set(u *model.User) {
	g.mu.Lock()
	g.user = u
	g.mu.Unlock()
}
