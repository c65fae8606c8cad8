package controller

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/store"
)

// Tab selects a subset of work orders.
type Tab string

const TabAll Tab = "ALL"

// Tabs in display order.
var Tabs = []Tab{
	TabAll,
	Tab(model.StatusOpen),
	Tab(model.StatusInProgress),
	Tab(model.StatusCompleted),
	Tab(model.StatusCancelled),
}

// ParseTab accepts ALL or a status name.
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown tab %q", errs.ErrValidation, s)
}

// FilterByTab keeps orders whose status equals tab; ALL keeps everything.
func FilterByTab(orders []model.WorkOrder, tab Tab) []model.WorkOrder {
	out := make([]model.WorkOrder, 0, len(orders))
	for _, o := range orders {
		if tab == TabAll || string(o.Status) == string(tab) {
			out = append(out, o)
		}
	}
	return out
}

// WorkOrdersView is a snapshot of the work orders page.
type WorkOrdersView struct {
	State   State
	Orders  []model.WorkOrder
	Clients []model.Client // for the client picker
}

type WorkOrders struct {
	lifecycle
	st      store.Store
	orders  []model.WorkOrder
	clients []model.Client
}

func NewWorkOrders(st store.Store) *WorkOrders { return &WorkOrders{st: st} }

func (w *WorkOrders) Mount(ctx context.Context) error {
	w.mount(ctx)
	return w.reload(ctx)
}

func (w *WorkOrders) reload(ctx context.Context) error {
	lctx, cancel, gen := w.begin(ctx)
	defer cancel()

	var (
		orders  []model.WorkOrder
		clients []model.Client
	)
	g, gctx := errgroup.WithContext(lctx)
	g.Go(func() (err error) {
		orders, err = w.st.WorkOrders().List(gctx, model.WorkOrderFilter{})
		return err
	})
	g.Go(func() (err error) {
		clients, err = w.st.Clients().List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	w.commit(gen, func() {
		w.orders = orders
		w.clients = clients
	})
	return nil
}

func (w *WorkOrders) View() WorkOrdersView {
	w.mu.Lock()
	defer w.mu.Unlock()
	return WorkOrdersView{
		State:   w.state,
		Orders:  append([]model.WorkOrder(nil), w.orders...),
		Clients: append([]model.Client(nil), w.clients...),
	}
}

// Tab returns the loaded orders visible under tab.
func (w *WorkOrders) Tab(tab Tab) []model.WorkOrder {
	return FilterByTab(w.View().Orders, tab)
}

// Create adds a work order; a client must be selected.
func (w *WorkOrders) Create(ctx context.Context, d model.WorkOrderDraft) (*model.WorkOrder, error) {
	if d.ClientID == "" {
		return nil, fmt.Errorf("%w: select a client", errs.ErrValidation)
	}
	sctx, cancel := w.scope(ctx)
	defer cancel()
	created, err := w.st.WorkOrders().Create(sctx, d)
	if err != nil {
		return nil, err
	}
	return created, w.reload(ctx)
}

// Advance moves an order one step forward: OPEN to IN_PROGRESS to COMPLETED.
func (w *WorkOrders) Advance(ctx context.Context, id string) (model.OrderStatus, error) {
	o, ok := w.find(id)
	if !ok {
		return "", fmt.Errorf("work order %s: %w", id, errs.ErrNotFound)
	}
	next, ok := o.Status.Next()
	if !ok {
		return "", fmt.Errorf("%w: work order %s is %s", errs.ErrValidation, id, o.Status)
	}
	return next, w.SetStatus(ctx, id, next)
}

// SetStatus writes any known status.
func (w *WorkOrders) SetStatus(ctx context.Context, id string, s model.OrderStatus) error {
	if !s.Valid() {
		return fmt.Errorf("%w: unknown status %q", errs.ErrValidation, s)
	}
	sctx, cancel := w.scope(ctx)
	defer cancel()
	if _, err := w.st.WorkOrders().Update(sctx, id, model.WorkOrderPatch{Status: &s}); err != nil {
		return err
	}
	return w.reload(ctx)
}

func (w *WorkOrders) find(id string) (model.WorkOrder, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, o := range w.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.WorkOrder{}, false
}
