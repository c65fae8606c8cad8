package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/jackc/pgx/v5"
)

// ServiceReportRepo implements ServiceReportRepository using PostgreSQL.
type ServiceReportRepo struct{ db *DB }

// NewServiceReportRepo constructs a service report repository.
func NewServiceReportRepo(db *DB) *ServiceReportRepo { return &ServiceReportRepo{db: db} }

const reportJoinedSelect = `
SELECT r.id, r.work_order_id, r.notes, r.equipment, r.completed_at, r.photos, r.parts_cost, r.service_cost,
       ` + orderWithClientCols + `
FROM service_reports r
JOIN work_orders w ON w.id = r.work_order_id
JOIN clients c ON c.id = w.client_id`

func scanReport(s scanner) (model.ServiceReport, error) {
	var (
		rep          model.ServiceReport
		o            model.WorkOrder
		c            model.Client
		status       string
		parts, labor int64
	)
	dest := append([]any{
		&rep.ID, &rep.WorkOrderID, &rep.Notes, &rep.Equipment, &rep.CompletedAt, &rep.Photos, &parts, &labor,
	}, orderDest(&o, &status, &c)...)
	if err := s.Scan(dest...); err != nil {
		return model.ServiceReport{}, err
	}
	rep.PartsCost = model.Money(parts)
	rep.ServiceCost = model.Money(labor)
	o.Status = model.OrderStatus(status)
	o.Client = &c
	rep.WorkOrder = &o
	return rep, nil
}

// List returns reports joined with work order and client, in completion order.
func (r *ServiceReportRepo) List(ctx context.Context, f model.ServiceReportFilter) ([]model.ServiceReport, error) {
	const q = reportJoinedSelect + `
WHERE ($1::text = '' OR r.work_order_id = $1)
ORDER BY r.completed_at, r.id`
	rows, err := r.db.Pool.Query(ctx, q, f.WorkOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ServiceReport{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Get selects a single report with its work order and client.
func (r *ServiceReportRepo) Get(ctx context.Context, id string) (*model.ServiceReport, error) {
	const q = reportJoinedSelect + `
WHERE r.id=$1`
	rep, err := scanReport(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &rep, nil
}

// Create inserts a report and reads back completed_at.
func (r *ServiceReportRepo) Create(ctx context.Context, rep *model.ServiceReport) error {
	const q = `
INSERT INTO service_reports (id, work_order_id, notes, equipment, photos, parts_cost, service_cost)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING completed_at`
	photos := rep.Photos
	if photos == nil {
		photos = [][]byte{}
	}
	err := r.db.Pool.QueryRow(ctx, q,
		rep.ID, rep.WorkOrderID, rep.Notes, rep.Equipment, photos, int64(rep.PartsCost), int64(rep.ServiceCost),
	).Scan(&rep.CompletedAt)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: unknown work order %q", errs.ErrValidation, rep.WorkOrderID)
	}
	return err
}

// Update applies the non-nil fields of the patch.
func (r *ServiceReportRepo) Update(ctx context.Context, id string, p model.ServiceReportPatch) (*model.ServiceReport, error) {
	b := newUpdate("service_reports")
	if p.Notes != nil {
		b.set("notes", *p.Notes)
	}
	if p.Equipment != nil {
		b.set("equipment", *p.Equipment)
	}
	if p.Photos != nil {
		b.set("photos", *p.Photos)
	}
	if p.PartsCost != nil {
		b.set("parts_cost", int64(*p.PartsCost))
	}
	if p.ServiceCost != nil {
		b.set("service_cost", int64(*p.ServiceCost))
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
