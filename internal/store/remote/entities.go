package remote

import (
	"context"

	"github.com/and161185/servicelog/internal/convert"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/rpcapi"
)

type clients struct{ c *rpcapi.DataStoreClient }

func (r clients) List(ctx context.Context) ([]model.Client, error) {
	return invokeList[model.Client](ctx, r.c, rpcapi.ListClients, convert.Empty{})
}

func (r clients) Create(ctx context.Context, d model.ClientDraft) (*model.Client, error) {
	return invoke[*model.Client](ctx, r.c, rpcapi.CreateClient, d)
}

func (r clients) Update(ctx context.Context, id string, p model.ClientPatch) (*model.Client, error) {
	return invoke[*model.Client](ctx, r.c, rpcapi.UpdateClient, convert.Update[model.ClientPatch]{ID: id, Patch: p})
}

func (r clients) Delete(ctx context.Context, id string) error {
	_, err := invoke[convert.Empty](ctx, r.c, rpcapi.DeleteClient, convert.ID{ID: id})
	return err
}

type workOrders struct{ c *rpcapi.DataStoreClient }

func (r workOrders) List(ctx context.Context, f model.WorkOrderFilter) ([]model.WorkOrder, error) {
	return invokeList[model.WorkOrder](ctx, r.c, rpcapi.ListWorkOrders, f)
}

func (r workOrders) Create(ctx context.Context, d model.WorkOrderDraft) (*model.WorkOrder, error) {
	return invoke[*model.WorkOrder](ctx, r.c, rpcapi.CreateWorkOrder, d)
}

func (r workOrders) Update(ctx context.Context, id string, p model.WorkOrderPatch) (*model.WorkOrder, error) {
	return invoke[*model.WorkOrder](ctx, r.c, rpcapi.UpdateWorkOrder, convert.Update[model.WorkOrderPatch]{ID: id, Patch: p})
}

type serviceReports struct{ c *rpcapi.DataStoreClient }

func (r serviceReports) List(ctx context.Context, f model.ServiceReportFilter) ([]model.ServiceReport, error) {
	return invokeList[model.ServiceReport](ctx, r.c, rpcapi.ListServiceReports, f)
}

func (r serviceReports) Create(ctx context.Context, d model.ServiceReportDraft) (*model.ServiceReport, error) {
	return invoke[*model.ServiceReport](ctx, r.c, rpcapi.CreateServiceReport, d)
}

func (r serviceReports) Update(ctx context.Context, id string, p model.ServiceReportPatch) (*model.ServiceReport, error) {
	return invoke[*model.ServiceReport](ctx, r.c, rpcapi.UpdateServiceReport, convert.Update[model.ServiceReportPatch]{ID: id, Patch: p})
}

type timeEntries struct{ c *rpcapi.DataStoreClient }

func (r timeEntries) List(ctx context.Context, f model.TimeEntryFilter) ([]model.WorkTimeEntry, error) {
	return invokeList[model.WorkTimeEntry](ctx, r.c, rpcapi.ListTimeEntries, f)
}

func (r timeEntries) Create(ctx context.Context, d model.TimeEntryDraft) (*model.WorkTimeEntry, error) {
	return invoke[*model.WorkTimeEntry](ctx, r.c, rpcapi.CreateTimeEntry, d)
}

func (r timeEntries) Update(ctx context.Context, id string, p model.TimeEntryPatch) (*model.WorkTimeEntry, error) {
	return invoke[*model.WorkTimeEntry](ctx, r.c, rpcapi.UpdateTimeEntry, convert.Update[model.TimeEntryPatch]{ID: id, Patch: p})
}

func (r timeEntries) Delete(ctx context.Context, id string) error {
	_, err := invoke[convert.Empty](ctx, r.c, rpcapi.DeleteTimeEntry, convert.ID{ID: id})
	return err
}
