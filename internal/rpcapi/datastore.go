// Package rpcapi describes the servicelog.v1.DataStore gRPC service.
// Every method takes and returns a google.protobuf.Struct; see package convert
// for the payload shapes.
package rpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "servicelog.v1.DataStore"

const (
	ListClients         = "ListClients"
	CreateClient        = "CreateClient"
	UpdateClient        = "UpdateClient"
	DeleteClient        = "DeleteClient"
	ListWorkOrders      = "ListWorkOrders"
	CreateWorkOrder     = "CreateWorkOrder"
	UpdateWorkOrder     = "UpdateWorkOrder"
	ListServiceReports  = "ListServiceReports"
	CreateServiceReport = "CreateServiceReport"
	UpdateServiceReport = "UpdateServiceReport"
	ListTimeEntries     = "ListTimeEntries"
	CreateTimeEntry     = "CreateTimeEntry"
	UpdateTimeEntry     = "UpdateTimeEntry"
	DeleteTimeEntry     = "DeleteTimeEntry"
)

// FullMethod returns "/servicelog.v1.DataStore/<name>".
func FullMethod(name string) string { return "/" + ServiceName + "/" + name }

// DataStoreServer is implemented by the server.
type DataStoreServer interface {
	ListClients(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateClient(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateClient(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteClient(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListWorkOrders(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateWorkOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateWorkOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListServiceReports(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateServiceReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateServiceReport(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListTimeEntries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateTimeEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateTimeEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteTimeEntry(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type serverMethod func(DataStoreServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(name string, call serverMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DataStoreServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DataStoreServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is registered with grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DataStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(ListClients, DataStoreServer.ListClients),
		unaryHandler(CreateClient, DataStoreServer.CreateClient),
		unaryHandler(UpdateClient, DataStoreServer.UpdateClient),
		unaryHandler(DeleteClient, DataStoreServer.DeleteClient),
		unaryHandler(ListWorkOrders, DataStoreServer.ListWorkOrders),
		unaryHandler(CreateWorkOrder, DataStoreServer.CreateWorkOrder),
		unaryHandler(UpdateWorkOrder, DataStoreServer.UpdateWorkOrder),
		unaryHandler(ListServiceReports, DataStoreServer.ListServiceReports),
		unaryHandler(CreateServiceReport, DataStoreServer.CreateServiceReport),
		unaryHandler(UpdateServiceReport, DataStoreServer.UpdateServiceReport),
		unaryHandler(ListTimeEntries, DataStoreServer.ListTimeEntries),
		unaryHandler(CreateTimeEntry, DataStoreServer.CreateTimeEntry),
		unaryHandler(UpdateTimeEntry, DataStoreServer.UpdateTimeEntry),
		unaryHandler(DeleteTimeEntry, DataStoreServer.DeleteTimeEntry),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "servicelog/v1/datastore.proto",
}

// RegisterDataStoreServer registers srv on s.
func RegisterDataStoreServer(s grpc.ServiceRegistrar, srv DataStoreServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// DataStoreClient calls a DataStore method by name.
type DataStoreClient struct {
	cc grpc.ClientConnInterface
}

// NewDataStoreClient wraps a connection.
func NewDataStoreClient(cc grpc.ClientConnInterface) *DataStoreClient {
	return &DataStoreClient{cc: cc}
}

// Call invokes a unary method.
func (c *DataStoreClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
