package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/jackc/pgx/v5"
)

// TimeEntryRepo implements TimeEntryRepository using PostgreSQL.
type TimeEntryRepo struct{ db *DB }

// NewTimeEntryRepo constructs a work time entry repository.
func NewTimeEntryRepo(db *DB) *TimeEntryRepo { return &TimeEntryRepo{db: db} }

const timeEntryCols = `id, work_order_id, duration_min, date`

// List returns entries in date order.
func (r *TimeEntryRepo) List(ctx context.Context, f model.TimeEntryFilter) ([]model.WorkTimeEntry, error) {
	const q = `SELECT ` + timeEntryCols + ` FROM work_time_entries
WHERE ($1::text = '' OR work_order_id = $1)
ORDER BY date, id`
	rows, err := r.db.Pool.Query(ctx, q, f.WorkOrderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WorkTimeEntry{}
	for rows.Next() {
		var e model.WorkTimeEntry
		if err = rows.Scan(&e.ID, &e.WorkOrderID, &e.DurationMin, &e.Date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Create inserts an entry.
func (r *TimeEntryRepo) Create(ctx context.Context, e *model.WorkTimeEntry) error {
	const q = `INSERT INTO work_time_entries (id, work_order_id, duration_min, date) VALUES ($1, $2, $3, $4)`
	_, err := r.db.Pool.Exec(ctx, q, e.ID, e.WorkOrderID, e.DurationMin, e.Date)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: unknown work order %q", errs.ErrValidation, e.WorkOrderID)
	}
	return err
}

// Update applies the non-nil fields of the patch.
func (r *TimeEntryRepo) Update(ctx context.Context, id string, p model.TimeEntryPatch) (*model.WorkTimeEntry, error) {
	b := newUpdate("work_time_entries")
	if p.DurationMin != nil {
		b.set("duration_min", *p.DurationMin)
	}
	if p.Date != nil {
		b.set("date", *p.Date)
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

// Get selects an entry by ID.
func (r *TimeEntryRepo) Get(ctx context.Context, id string) (*model.WorkTimeEntry, error) {
	const q = `SELECT ` + timeEntryCols + ` FROM work_time_entries WHERE id=$1`
	var e model.WorkTimeEntry
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&e.ID, &e.WorkOrderID, &e.DurationMin, &e.Date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Delete removes an entry.
func (r *TimeEntryRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM work_time_entries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// TotalMinutes sums durations for a work order.
func (r *TimeEntryRepo) TotalMinutes(ctx context.Context, workOrderID string) (int, error) {
	const q = `SELECT COALESCE(SUM(duration_min),0) FROM work_time_entries WHERE work_order_id=$1`
	var v int64
	if err := r.db.Pool.QueryRow(ctx, q, workOrderID).Scan(&v); err != nil {
		return 0, err
	}
	return int(v), nil
}
