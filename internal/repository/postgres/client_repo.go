package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/jackc/pgx/v5"
)

// ClientRepo implements ClientRepository using PostgreSQL.
type ClientRepo struct{ db *DB }

// NewClientRepo constructs a client repository.
func NewClientRepo(db *DB) *ClientRepo { return &ClientRepo{db: db} }

const clientCols = `id, name, email, phone, address, company_id, created_at`

func scanClient(s scanner, c *model.Client) error {
	return s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CompanyID, &c.CreatedAt)
}

// List returns all clients ordered by creation time.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientCols + ` FROM clients ORDER BY created_at, id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err = scanClient(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get selects a client by ID.
func (r *ClientRepo) Get(ctx context.Context, id string) (*model.Client, error) {
	const q = `SELECT ` + clientCols + ` FROM clients WHERE id=$1`
	var c model.Client
	if err := scanClient(r.db.Pool.QueryRow(ctx, q, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a client row and reads back created_at.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	const q = `
INSERT INTO clients (id, name, email, phone, address, company_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`
	err := r.db.Pool.QueryRow(ctx, q, c.ID, c.Name, c.Email, c.Phone, c.Address, c.CompanyID).Scan(&c.CreatedAt)
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: unknown company %q", errs.ErrValidation, c.CompanyID)
	case isUniqueViolation(err):
		return fmt.Errorf("%w: duplicate id", errs.ErrConflict)
	}
	return err
}

// Update applies the non-nil fields of the patch.
func (r *ClientRepo) Update(ctx context.Context, id string, p model.ClientPatch) (*model.Client, error) {
	b := newUpdate("clients")
	if p.Name != nil {
		b.set("name", *p.Name)
	}
	if p.Email != nil {
		b.set("email", *p.Email)
	}
	if p.Phone != nil {
		b.set("phone", *p.Phone)
	}
	if p.Address != nil {
		b.set("address", *p.Address)
	}
	if !b.empty() {
		q, args := b.build(id)
		tag, err := r.db.Pool.Exec(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, errs.ErrNotFound
		}
	}
	return r.Get(ctx, id)
}

// Delete removes a client. Work orders referencing it block the delete.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM clients WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: client %s has work orders", errs.ErrConflict, id)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
