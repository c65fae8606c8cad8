package controller

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/store"
)

const (
	recentOrdersLimit  = 5
	recentReportsLimit = 4
)

// Stats are the dashboard counters.
type Stats struct {
	ClientsCount   int
	OpenOrders     int // OPEN or IN_PROGRESS
	CompletedTotal int
	Revenue        model.Money
}

// DashboardView is a snapshot of the dashboard.
type DashboardView struct {
	State         State
	Stats         Stats
	RecentOrders  []model.WorkOrder
	RecentReports []model.ServiceReport
}

// Dashboard loads all three collections and summarizes them. Load errors are
// logged and the previous view is kept.
type Dashboard struct {
	lifecycle
	st   store.Store
	log  *zap.Logger
	view DashboardView
}

func NewDashboard(st store.Store, log *zap.Logger) *Dashboard {
	return &Dashboard{st: st, log: log}
}

// Mount loads the dashboard. It always ends Ready unless dismissed.
func (d *Dashboard) Mount(ctx context.Context) {
	d.mount(ctx)
	d.Refresh(ctx)
}

// Refresh reloads every collection.
func (d *Dashboard) Refresh(ctx context.Context) {
	lctx, cancel, gen := d.begin(ctx)
	defer cancel()

	var (
		clients []model.Client
		orders  []model.WorkOrder
		reports []model.ServiceReport
	)
	g, gctx := errgroup.WithContext(lctx)
	g.Go(func() (err error) {
		clients, err = d.st.Clients().List(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = d.st.WorkOrders().List(gctx, model.WorkOrderFilter{})
		return err
	})
	g.Go(func() (err error) {
		reports, err = d.st.ServiceReports().List(gctx, model.ServiceReportFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		if !d.dismissed() {
			d.log.Error("dashboard load failed", zap.Error(err))
		}
		d.commit(gen, func() {})
		return
	}
	d.commit(gen, func() {
		d.view.Stats = ComputeStats(clients, orders, reports)
		d.view.RecentOrders = lastReversed(orders, recentOrdersLimit)
		d.view.RecentReports = lastReversed(reports, recentReportsLimit)
	})
}

// View returns a copy of the current view.
func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.view
	v.State = d.state
	v.RecentOrders = append([]model.WorkOrder(nil), v.RecentOrders...)
	v.RecentReports = append([]model.ServiceReport(nil), v.RecentReports...)
	return v
}

// ComputeStats derives the dashboard counters.
func ComputeStats(clients []model.Client, orders []model.WorkOrder, reports []model.ServiceReport) Stats {
	s := Stats{ClientsCount: len(clients)}
	for _, o := range orders {
		switch o.Status {
		case model.StatusOpen, model.StatusInProgress:
			s.OpenOrders++
		case model.StatusCompleted:
			s.CompletedTotal++
		}
	}
	for _, r := range reports {
		s.Revenue += r.Total()
	}
	return s
}

// lastReversed returns up to n trailing items, newest first.
func lastReversed[T any](items []T, n int) []T {
	if len(items) < n {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		out = append(out, items[i])
	}
	return out
}
