package repository

import (
	"context"

	"github.com/and161185/servicelog/internal/model"
)

// ServiceReportRepository stores service reports. Reads attach the work order and its client.
type ServiceReportRepository interface {
	// List returns matching reports in completion order, each with WorkOrder (and Client) set.
	List(ctx context.Context, f model.ServiceReportFilter) ([]model.ServiceReport, error)
	// Get loads a report by ID.
	Get(ctx context.Context, id string) (*model.ServiceReport, error)
	// Create inserts a report; ErrValidation if the work order does not exist.
	Create(ctx context.Context, r *model.ServiceReport) error
	// Update applies a patch and returns the stored report.
	Update(ctx context.Context, id string, p model.ServiceReportPatch) (*model.ServiceReport, error)
}
