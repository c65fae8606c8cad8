package controller

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/store"
)

// ReportRow is a report joined with its order and client.
type ReportRow struct {
	Report    model.ServiceReport
	Order     *model.WorkOrder // nil when the order is not loaded
	Client    *model.Client
	Total     model.Money
	TotalText string
}

// ReportForm is the raw new-report form.
type ReportForm struct {
	WorkOrderID string
	Notes       string
	Equipment   string
	PartsCost   string
	ServiceCost string
	Photos      [][]byte
}

// ServiceReportsView is a snapshot of the reports page.
type ServiceReportsView struct {
	State   State
	Reports []model.ServiceReport
	Orders  []model.WorkOrder
}

type ServiceReports struct {
	lifecycle
	st      store.Store
	reports []model.ServiceReport
	orders  []model.WorkOrder
}

func NewServiceReports(st store.Store) *ServiceReports { return &ServiceReports{st: st} }

func (s *ServiceReports) Mount(ctx context.Context) error {
	s.mount(ctx)
	return s.reload(ctx)
}

func (s *ServiceReports) reload(ctx context.Context) error {
	lctx, cancel, gen := s.begin(ctx)
	defer cancel()

	var (
		reports []model.ServiceReport
		orders  []model.WorkOrder
	)
	g, gctx := errgroup.WithContext(lctx)
	g.Go(func() (err error) {
		reports, err = s.st.ServiceReports().List(gctx, model.ServiceReportFilter{})
		return err
	})
	g.Go(func() (err error) {
		orders, err = s.st.WorkOrders().List(gctx, model.WorkOrderFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	s.commit(gen, func() {
		s.reports = reports
		s.orders = orders
	})
	return nil
}

func (s *ServiceReports) View() ServiceReportsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ServiceReportsView{
		State:   s.state,
		Reports: append([]model.ServiceReport(nil), s.reports...),
		Orders:  append([]model.WorkOrder(nil), s.orders...),
	}
}

// Rows joins the loaded reports to the loaded orders.
func (s *ServiceReports) Rows() []ReportRow {
	v := s.View()
	return JoinRows(v.Reports, v.Orders)
}

// CompletedOrders are the orders a new report can be written for.
func (s *ServiceReports) CompletedOrders() []model.WorkOrder {
	return FilterByTab(s.View().Orders, Tab(model.StatusCompleted))
}

// Select returns the printable row for a report.
func (s *ServiceReports) Select(id string) (ReportRow, error) {
	for _, r := range s.Rows() {
		if r.Report.ID == id {
			return r, nil
		}
	}
	return ReportRow{}, fmt.Errorf("service report %s: %w", id, errs.ErrNotFound)
}

// Create parses the form, stores the report and reloads.
func (s *ServiceReports) Create(ctx context.Context, f ReportForm) (*model.ServiceReport, error) {
	if f.WorkOrderID == "" {
		return nil, fmt.Errorf("%w: select a work order", errs.ErrValidation)
	}
	parts, err := model.ParseMoney(f.PartsCost)
	if err != nil {
		return nil, fmt.Errorf("%w: parts cost: %v", errs.ErrValidation, err)
	}
	labor, err := model.ParseMoney(f.ServiceCost)
	if err != nil {
		return nil, fmt.Errorf("%w: service cost: %v", errs.ErrValidation, err)
	}
	sctx, cancel := s.scope(ctx)
	defer cancel()
	created, err := s.st.ServiceReports().Create(sctx, model.ServiceReportDraft{
		WorkOrderID: f.WorkOrderID,
		Notes:       f.Notes,
		Equipment:   f.Equipment,
		Photos:      f.Photos,
		PartsCost:   parts,
		ServiceCost: labor,
	})
	if err != nil {
		return nil, err
	}
	return created, s.reload(ctx)
}

// JoinRows looks each report's order up by linear scan.
func JoinRows(reports []model.ServiceReport, orders []model.WorkOrder) []ReportRow {
	rows := make([]ReportRow, 0, len(reports))
	for _, r := range reports {
		row := ReportRow{Report: r, Total: r.Total()}
		row.TotalText = row.Total.String()
		for i := range orders {
			if orders[i].ID == r.WorkOrderID {
				o := orders[i]
				row.Order = &o
				row.Client = o.Client
				break
			}
		}
		if row.Order == nil && r.WorkOrder != nil {
			row.Order = r.WorkOrder
			row.Client = r.WorkOrder.Client
		}
		rows = append(rows, row)
	}
	return rows
}
