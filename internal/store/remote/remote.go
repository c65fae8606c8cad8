// Package remote implements store.Store over the DataStore gRPC service.
package remote

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/and161185/servicelog/internal/convert"
	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/rpcapi"
	"github.com/and161185/servicelog/internal/service"
	"github.com/and161185/servicelog/internal/store"
)

// Options configures the connection.
type Options struct {
	Addr       string
	CACert     string // PEM file; empty uses system roots
	SkipVerify bool
	Plaintext  bool
	Token      string // bearer token attached to every call when set
}

type bearerCreds struct {
	token  string
	secure bool
}

func (b bearerCreds) GetRequestMetadata(context.Context, ...string) (map[string]string, error) {
	return map[string]string{"authorization": "Bearer " + b.token}, nil
}
func (b bearerCreds) RequireTransportSecurity() bool { return b.secure }

func transportCreds(o Options) (credentials.TransportCredentials, error) {
	switch {
	case o.Plaintext:
		return insecure.NewCredentials(), nil
	case o.SkipVerify:
		return credentials.NewTLS(&tls.Config{InsecureSkipVerify: true}), nil //nolint:gosec // dev flag
	case o.CACert == "":
		return credentials.NewClientTLSFromCert(nil, ""), nil
	}
	pem, err := os.ReadFile(o.CACert)
	if err != nil {
		return nil, err
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("bad CA cert")
	}
	return credentials.NewTLS(&tls.Config{RootCAs: pool}), nil
}

// Store is a store.Store backed by a gRPC connection.
type Store struct {
	cc      *grpc.ClientConn
	clients clients
	orders  workOrders
	reports serviceReports
	entries timeEntries
}

var _ store.Store = (*Store)(nil)

// Dial creates the client connection. No I/O happens until the first call.
func Dial(o Options, extra ...grpc.DialOption) (*Store, error) {
	creds, err := transportCreds(o)
	if err != nil {
		return nil, err
	}
	opts := []grpc.DialOption{grpc.WithTransportCredentials(creds)}
	if o.Token != "" {
		opts = append(opts, grpc.WithPerRPCCredentials(bearerCreds{token: o.Token, secure: !o.Plaintext}))
	}
	cc, err := grpc.NewClient(o.Addr, append(opts, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", o.Addr, err)
	}
	return newStore(cc), nil
}

func newStore(cc *grpc.ClientConn) *Store {
	c := rpcapi.NewDataStoreClient(cc)
	return &Store{
		cc:      cc,
		clients: clients{c},
		orders:  workOrders{c},
		reports: serviceReports{c},
		entries: timeEntries{c},
	}
}

func (s *Store) Clients() service.ClientService               { return s.clients }
func (s *Store) WorkOrders() service.WorkOrderService         { return s.orders }
func (s *Store) ServiceReports() service.ServiceReportService { return s.reports }
func (s *Store) TimeEntries() service.TimeEntryService        { return s.entries }
func (s *Store) Close() error                                 { return s.cc.Close() }

// invoke encodes in, calls method and decodes the reply into Out.
func invoke[Out any](ctx context.Context, c *rpcapi.DataStoreClient, method string, in any) (Out, error) {
	var out Out
	req, err := convert.ToStruct(in)
	if err != nil {
		return out, err
	}
	var res *structpb.Struct
	if res, err = c.Call(ctx, method, req); err != nil {
		return out, fromStatus(err)
	}
	err = convert.FromStruct(res, &out)
	return out, err
}

func invokeList[T any](ctx context.Context, c *rpcapi.DataStoreClient, method string, in any) ([]T, error) {
	l, err := invoke[convert.List[T]](ctx, c, method, in)
	if err != nil {
		return nil, err
	}
	if l.Items == nil {
		l.Items = []T{}
	}
	return l.Items, nil
}

// fromStatus maps gRPC codes back onto domain sentinels.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", errs.ErrValidation, st.Message())
	case codes.NotFound:
		return fmt.Errorf("%w: %s", errs.ErrNotFound, st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", errs.ErrConflict, st.Message())
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", errs.ErrUnauthorized, st.Message())
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	}
	return fmt.Errorf("rpc %s: %s", st.Code(), st.Message())
}
