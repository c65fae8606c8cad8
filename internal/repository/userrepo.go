// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/servicelog/internal/model"
)

// UserRepository provides access to companies and their users.
type UserRepository interface {
	// EnsureCompany inserts the company if it does not exist yet.
	EnsureCompany(ctx context.Context, c model.Company) error
	// EnsureUser inserts the user if no user with the same email exists.
	EnsureUser(ctx context.Context, u *model.User) error
}
