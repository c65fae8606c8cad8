// Package store is the data store boundary used by controllers: one handle
// exposing the entity facades, backed either by a local database or by the
// remote gRPC server (package remote).
package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/and161185/servicelog/internal/repository"
	"github.com/and161185/servicelog/internal/repository/gormdb"
	"github.com/and161185/servicelog/internal/repository/postgres"
	"github.com/and161185/servicelog/internal/service"
)

// Store exposes the entity facades.
type Store interface {
	Clients() service.ClientService
	WorkOrders() service.WorkOrderService
	ServiceReports() service.ServiceReportService
	TimeEntries() service.TimeEntryService
	Close() error
}

// Local is a Store over an in-process database.
type Local struct {
	users   repository.UserRepository
	clients *service.ClientServiceImpl
	orders  *service.WorkOrderServiceImpl
	reports *service.ServiceReportServiceImpl
	entries *service.TimeEntryServiceImpl
	close   func() error
}

var _ Store = (*Local)(nil)

// Repos groups one backend's repositories.
type Repos struct {
	Users          repository.UserRepository
	Clients        repository.ClientRepository
	WorkOrders     repository.WorkOrderRepository
	ServiceReports repository.ServiceReportRepository
	TimeEntries    repository.TimeEntryRepository
}

// NewLocal builds the facades over the given repositories. closeFn may be nil.
func NewLocal(r Repos, closeFn func() error) *Local {
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return &Local{
		users:   r.Users,
		clients: service.NewClientService(r.Clients),
		orders:  service.NewWorkOrderService(r.WorkOrders),
		reports: service.NewServiceReportService(r.ServiceReports),
		entries: service.NewTimeEntryService(r.TimeEntries, r.WorkOrders),
		close:   closeFn,
	}
}

// OpenSQLite opens (and migrates) a SQLite database through gorm.
func OpenSQLite(dsn string) (*Local, error) {
	db, err := gormdb.Open(dsn)
	if err != nil {
		return nil, err
	}
	return NewLocal(GormRepos(db), func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}), nil
}

// GormRepos returns the gorm-backed repositories.
func GormRepos(db *gorm.DB) Repos {
	return Repos{
		Users:          gormdb.NewUserRepo(db),
		Clients:        gormdb.NewClientRepo(db),
		WorkOrders:     gormdb.NewWorkOrderRepo(db),
		ServiceReports: gormdb.NewServiceReportRepo(db),
		TimeEntries:    gormdb.NewTimeEntryRepo(db),
	}
}

// OpenPostgres connects a pgx pool and checks it answers. Migrations are applied separately.
func OpenPostgres(ctx context.Context, dsn string) (*Local, error) {
	db, err := postgres.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return NewLocal(PostgresRepos(db), func() error { db.Close(); return nil }), nil
}

// PostgresRepos returns the pgx-backed repositories.
func PostgresRepos(db *postgres.DB) Repos {
	return Repos{
		Users:          postgres.NewUserRepo(db),
		Clients:        postgres.NewClientRepo(db),
		WorkOrders:     postgres.NewWorkOrderRepo(db),
		ServiceReports: postgres.NewServiceReportRepo(db),
		TimeEntries:    postgres.NewTimeEntryRepo(db),
	}
}

func (l *Local) Users() repository.UserRepository             { return l.users }
func (l *Local) Clients() service.ClientService               { return l.clients }
func (l *Local) WorkOrders() service.WorkOrderService         { return l.orders }
func (l *Local) ServiceReports() service.ServiceReportService { return l.reports }
func (l *Local) TimeEntries() service.TimeEntryService        { return l.entries }
func (l *Local) Close() error                                 { return l.close() }
