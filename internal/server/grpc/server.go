// Package grpcserver exposes the ServiceLog data store over gRPC.
package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/and161185/servicelog/internal/convert"
	"github.com/and161185/servicelog/internal/metrics"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/rpcapi"
	"github.com/and161185/servicelog/internal/service"
)

// Server wires the entity services into DataStore handlers.
type Server struct {
	clients service.ClientService
	orders  service.WorkOrderService
	reports service.ServiceReportService
	entries service.TimeEntryService
}

var _ rpcapi.DataStoreServer = (*Server)(nil)

// New constructs a gRPC server with injected services.
func New(clients service.ClientService, orders service.WorkOrderService, reports service.ServiceReportService, entries service.TimeEntryService) *Server {
	return &Server{clients: clients, orders: orders, reports: reports, entries: entries}
}

// unary decodes the request into In, runs fn and encodes its result.
func unary[In, Out any](ctx context.Context, req *structpb.Struct, op string, fn func(context.Context, In) (Out, error)) (*structpb.Struct, error) {
	var in In
	if err := convert.FromStruct(req, &in); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "%s: %v", op, err)
	}
	out, err := fn(ctx, in)
	if err != nil {
		return nil, toStatus(op, err)
	}
	res, err := convert.ToStruct(out)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "%s: %v", op, err)
	}
	return res, nil
}

func list[In, T any](ctx context.Context, req *structpb.Struct, op string, fn func(context.Context, In) ([]T, error)) (*structpb.Struct, error) {
	return unary(ctx, req, op, func(ctx context.Context, in In) (convert.List[T], error) {
		items, err := fn(ctx, in)
		if items == nil {
			items = []T{}
		}
		return convert.List[T]{Items: items}, err
	})
}

// --- Clients ---

func (s *Server) ListClients(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return list(ctx, req, "list clients", func(ctx context.Context, _ convert.Empty) ([]model.Client, error) {
		return s.clients.List(ctx)
	})
}

func (s *Server) CreateClient(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "create client", func(ctx context.Context, d model.ClientDraft) (*model.Client, error) {
		c, err := s.clients.Create(ctx, d)
		if err == nil {
			metrics.IncrementMutation("client", "create")
		}
		return c, err
	})
}

func (s *Server) UpdateClient(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "update client", func(ctx context.Context, u convert.Update[model.ClientPatch]) (*model.Client, error) {
		c, err := s.clients.Update(ctx, u.ID, u.Patch)
		if err == nil {
			metrics.IncrementMutation("client", "update")
		}
		return c, err
	})
}

func (s *Server) DeleteClient(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "delete client", func(ctx context.Context, id convert.ID) (convert.Empty, error) {
		err := s.clients.Delete(ctx, id.ID)
		if err == nil {
			metrics.IncrementMutation("client", "delete")
		}
		return convert.Empty{}, err
	})
}

// --- Work orders ---

func (s *Server) ListWorkOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return list(ctx, req, "list work orders", s.orders.List)
}

func (s *Server) CreateWorkOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "create work order", func(ctx context.Context, d model.WorkOrderDraft) (*model.WorkOrder, error) {
		o, err := s.orders.Create(ctx, d)
		if err == nil {
			metrics.IncrementMutation("work_order", "create")
		}
		return o, err
	})
}

func (s *Server) UpdateWorkOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "update work order", func(ctx context.Context, u convert.Update[model.WorkOrderPatch]) (*model.WorkOrder, error) {
		o, err := s.orders.Update(ctx, u.ID, u.Patch)
		if err == nil {
			metrics.IncrementMutation("work_order", "update")
		}
		return o, err
	})
}

// --- Service reports ---

func (s *Server) ListServiceReports(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return list(ctx, req, "list service reports", s.reports.List)
}

func (s *Server) CreateServiceReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "create service report", func(ctx context.Context, d model.ServiceReportDraft) (*model.ServiceReport, error) {
		r, err := s.reports.Create(ctx, d)
		if err == nil {
			metrics.IncrementMutation("service_report", "create")
		}
		return r, err
	})
}

func (s *Server) UpdateServiceReport(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "update service report", func(ctx context.Context, u convert.Update[model.ServiceReportPatch]) (*model.ServiceReport, error) {
		r, err := s.reports.Update(ctx, u.ID, u.Patch)
		if err == nil {
			metrics.IncrementMutation("service_report", "update")
		}
		return r, err
	})
}

// --- Time entries ---

func (s *Server) ListTimeEntries(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return list(ctx, req, "list time entries", s.entries.List)
}

func (s *Server) CreateTimeEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "create time entry", func(ctx context.Context, d model.TimeEntryDraft) (*model.WorkTimeEntry, error) {
		e, err := s.entries.Create(ctx, d)
		if err == nil {
			metrics.IncrementMutation("time_entry", "create")
		}
		return e, err
	})
}

func (s *Server) UpdateTimeEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "update time entry", func(ctx context.Context, u convert.Update[model.TimeEntryPatch]) (*model.WorkTimeEntry, error) {
		e, err := s.entries.Update(ctx, u.ID, u.Patch)
		if err == nil {
			metrics.IncrementMutation("time_entry", "update")
		}
		return e, err
	})
}

func (s *Server) DeleteTimeEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return unary(ctx, req, "delete time entry", func(ctx context.Context, id convert.ID) (convert.Empty, error) {
		err := s.entries.Delete(ctx, id.ID)
		if err == nil {
			metrics.IncrementMutation("time_entry", "delete")
		}
		return convert.Empty{}, err
	})
}
