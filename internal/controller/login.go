package controller

import (
	"context"
	"errors"

	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/nav"
	"github.com/and161185/servicelog/internal/session"
)

// Login drives the sign-in form.
type Login struct {
	guard *session.Guard
	msg   string
}

func NewLogin(g *session.Guard) *Login { return &Login{guard: g} }

// Submit signs in and returns the route to go to next. A rejected login
// leaves the user-facing message in Message.
func (l *Login) Submit(ctx context.Context, email, password string) (model.User, string, error) {
	l.msg = ""
	u, err := l.guard.Login(ctx, email, password)
	if err != nil {
		var ae *session.AuthError
		if errors.As(err, &ae) {
			l.msg = ae.Msg
		}
		return model.User{}, nav.Login, err
	}
	return u, nav.Dashboard, nil
}

// Message is the last error shown on the form.
func (l *Login) Message() string { return l.msg }
