package repository

import (
	"context"

	"github.com/and161185/servicelog/internal/model"
)

// WorkOrderRepository stores work orders. Reads attach the referenced client.
type WorkOrderRepository interface {
	// List returns matching work orders in creation order, each with Client set.
	List(ctx context.Context, f model.WorkOrderFilter) ([]model.WorkOrder, error)
	// Get loads a work order by ID with Client set.
	Get(ctx context.Context, id string) (*model.WorkOrder, error)
	// Create inserts a work order; ErrValidation if the client does not exist.
	Create(ctx context.Context, o *model.WorkOrder) error
	// Update applies a patch and returns the stored work order.
	Update(ctx context.Context, id string, p model.WorkOrderPatch) (*model.WorkOrder, error)
}
