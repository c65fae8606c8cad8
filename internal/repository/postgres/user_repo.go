package postgres

import (
	"context"

	"github.com/and161185/servicelog/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// EnsureCompany inserts the company row unless it exists.
func (r *UserRepo) EnsureCompany(ctx context.Context, c model.Company) error {
	const q = `INSERT INTO companies (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, c.ID, c.Name)
	return err
}

// EnsureUser inserts the user unless the email is taken.
func (r *UserRepo) EnsureUser(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, email, password_hash, name, role, company_id)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (email) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Email, u.PasswordHash, u.Name, string(u.Role), u.CompanyID)
	return err
}
