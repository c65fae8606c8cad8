package repository

import (
	"context"

	"github.com/and161185/servicelog/internal/model"
)

// ClientRepository stores clients.
type ClientRepository interface {
	// List returns every client in creation order.
	List(ctx context.Context) ([]model.Client, error)
	// Get loads a client by ID.
	Get(ctx context.Context, id string) (*model.Client, error)
	// Create inserts a client with a preassigned ID and fills CreatedAt.
	Create(ctx context.Context, c *model.Client) error
	// Update applies a patch and returns the stored client.
	Update(ctx context.Context, id string, p model.ClientPatch) (*model.Client, error)
	// Delete removes a client; ErrConflict while work orders reference it.
	Delete(ctx context.Context, id string) error
}
