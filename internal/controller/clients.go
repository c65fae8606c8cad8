package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/store"
)

// Confirmer asks the user to approve a destructive action.
type Confirmer func(prompt string) bool

// ClientsView is a snapshot of the clients page.
type ClientsView struct {
	State   State
	Clients []model.Client
}

type Clients struct {
	lifecycle
	st      store.Store
	clients []model.Client
}

func NewClients(st store.Store) *Clients { return &Clients{st: st} }

func (c *Clients) Mount(ctx context.Context) error {
	c.mount(ctx)
	return c.reload(ctx)
}

func (c *Clients) reload(ctx context.Context) error {
	lctx, cancel, gen := c.begin(ctx)
	defer cancel()
	list, err := c.st.Clients().List(lctx)
	if err != nil {
		return err
	}
	c.commit(gen, func() { c.clients = list })
	return nil
}

func (c *Clients) View() ClientsView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ClientsView{State: c.state, Clients: append([]model.Client(nil), c.clients...)}
}

// Filter returns the loaded clients matching query.
func (c *Clients) Filter(query string) []model.Client {
	return FilterClients(c.View().Clients, query)
}

// Create adds a client and reloads.
func (c *Clients) Create(ctx context.Context, d model.ClientDraft) (*model.Client, error) {
	sctx, cancel := c.scope(ctx)
	defer cancel()
	created, err := c.st.Clients().Create(sctx, d)
	if err != nil {
		return nil, err
	}
	return created, c.reload(ctx)
}

// Delete removes a client once confirm approves. It reports whether the
// delete was issued.
func (c *Clients) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	name := id
	for _, cl := range c.View().Clients {
		if cl.ID == id {
			name = cl.Name
			break
		}
	}
	if confirm == nil || !confirm(fmt.Sprintf("Czy na pewno chcesz usunąć klienta %s?", name)) {
		return false, nil
	}
	sctx, cancel := c.scope(ctx)
	defer cancel()
	if err := c.st.Clients().Delete(sctx, id); err != nil {
		return true, err
	}
	return true, c.reload(ctx)
}

// FilterClients matches query case-insensitively against name, email or phone.
func FilterClients(clients []model.Client, query string) []model.Client {
	q := strings.ToLower(query)
	out := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.Phone), q) {
			out = append(out, c)
		}
	}
	return out
}
