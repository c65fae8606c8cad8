package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/jackc/pgx/v5"
)

// WorkOrderRepo implements WorkOrderRepository using PostgreSQL.
type WorkOrderRepo struct{ db *DB }

// NewWorkOrderRepo constructs a work order repository.
func NewWorkOrderRepo(db *DB) *WorkOrderRepo { return &WorkOrderRepo{db: db} }

const orderWithClientCols = `w.id, w.title, w.description, w.status, w.client_id, w.company_id, w.created_at, w.total_time_minutes,
       c.id, c.name, c.email, c.phone, c.address, c.company_id, c.created_at`

// orderDest returns scan destinations for orderWithClientCols.
func orderDest(o *model.WorkOrder, status *string, c *model.Client) []any {
	return []any{
		&o.ID, &o.Title, &o.Description, status, &o.ClientID, &o.CompanyID, &o.CreatedAt, &o.TotalTimeMinutes,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CompanyID, &c.CreatedAt,
	}
}

func scanOrderWithClient(s scanner) (model.WorkOrder, error) {
	var (
		o      model.WorkOrder
		c      model.Client
		status string
	)
	if err := s.Scan(orderDest(&o, &status, &c)...); err != nil {
		return model.WorkOrder{}, err
	}
	o.Status = model.OrderStatus(status)
	o.Client = &c
	return o, nil
}

// List returns work orders joined with their client, in creation order.
func (r *WorkOrderRepo) List(ctx context.Context, f model.WorkOrderFilter) ([]model.WorkOrder, error) {
	const q = `
SELECT ` + orderWithClientCols + `
FROM work_orders w
JOIN clients c ON c.id = w.client_id
WHERE ($1::text = '' OR w.status = $1) AND ($2::text = '' OR w.client_id = $2)
ORDER BY w.created_at, w.id`
	rows, err := r.db.Pool.Query(ctx, q, string(f.Status), f.ClientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WorkOrder{}
	for rows.Next() {
		o, err := scanOrderWithClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Get selects a single work order with its client.
func (r *WorkOrderRepo) Get(ctx context.Context, id string) (*model.WorkOrder, error) {
	const q = `
SELECT ` + orderWithClientCols + `
FROM work_orders w
JOIN clients c ON c.id = w.client_id
WHERE w.id=$1`
	o, err := scanOrderWithClient(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create inserts a work order; a missing client surfaces as a validation error.
func (r *WorkOrderRepo) Create(ctx context.Context, o *model.WorkOrder) error {
	const q = `
INSERT INTO work_orders (id, title, description, status, client_id, company_id, total_time_minutes)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`
	err := r.db.Pool.QueryRow(ctx, q,
		o.ID, o.Title, o.Description, string(o.Status), o.ClientID, o.CompanyID, o.TotalTimeMinutes,
	).Scan(&o.CreatedAt)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: unknown client %q", errs.ErrValidation, o.ClientID)
	}
	return err
}

// Update applies the non-nil fields of the patch.
func (r *WorkOrderRepo) Update(ctx context.Context, id string, p model.WorkOrderPatch) (*model.WorkOrder, error) {
	b := newUpdate("work_orders")
	if p.Title != nil {
		b.set("title", *p.Title)
	}
	if p.Description != nil {
		b.set("description", *p.Description)
	}
	if p.Status != nil {
		b.set("status", string(*p.Status))
	}
	if p.TotalTimeMinutes != nil {
		b.set("total_time_minutes", *p.TotalTimeMinutes)
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
