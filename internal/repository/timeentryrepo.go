package repository

import (
	"context"

	"github.com/and161185/servicelog/internal/model"
)

// TimeEntryRepository stores work time entries.
type TimeEntryRepository interface {
	List(ctx context.Context, f model.TimeEntryFilter) ([]model.WorkTimeEntry, error)
	Get(ctx context.Context, id string) (*model.WorkTimeEntry, error)
	Create(ctx context.Context, e *model.WorkTimeEntry) error
	Update(ctx context.Context, id string, p model.TimeEntryPatch) (*model.WorkTimeEntry, error)
	Delete(ctx context.Context, id string) error
	// TotalMinutes sums durations logged against a work order.
	TotalMinutes(ctx context.Context, workOrderID string) (int, error)
}
