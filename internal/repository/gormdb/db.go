// Package gormdb implements the repository interfaces on top of gorm.
// It backs the embedded SQLite mode used by the CLI and the server when no
// PostgreSQL DSN is configured.
package gormdb

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
)

type companyRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	CreatedAt time.Time
}

func (companyRow) TableName() string { return "companies" }

type userRow struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash []byte
	Name         string `gorm:"not null"`
	Role         string `gorm:"not null"`
	CompanyID    string `gorm:"not null;index"`
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type clientRow struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string
	Phone     string
	Address   string
	CompanyID string `gorm:"not null;index"`
	CreatedAt time.Time
}

func (clientRow) TableName() string { return "clients" }

type workOrderRow struct {
	ID               string `gorm:"primaryKey"`
	Title            string `gorm:"not null"`
	Description      string
	Status           string    `gorm:"not null;index;default:'OPEN'"`
	ClientID         string    `gorm:"not null;index"`
	Client           clientRow `gorm:"foreignKey:ClientID"`
	CompanyID        string    `gorm:"not null;index"`
	CreatedAt        time.Time
	TotalTimeMinutes *int
}

func (workOrderRow) TableName() string { return "work_orders" }

type serviceReportRow struct {
	ID          string       `gorm:"primaryKey"`
	WorkOrderID string       `gorm:"not null;index"`
	WorkOrder   workOrderRow `gorm:"foreignKey:WorkOrderID"`
	Notes       string
	Equipment   string
	CompletedAt time.Time
	Photos      [][]byte `gorm:"serializer:json"`
	PartsCost   int64
	ServiceCost int64
}

func (serviceReportRow) TableName() string { return "service_reports" }

type timeEntryRow struct {
	ID          string    `gorm:"primaryKey"`
	WorkOrderID string    `gorm:"not null;index"`
	DurationMin int       `gorm:"not null"`
	Date        time.Time `gorm:"column:date"`
}

func (timeEntryRow) TableName() string { return "work_time_entries" }

// Open connects to a SQLite database and migrates the schema.
// Use "file::memory:?cache=shared" for a throwaway store.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates tables and ensures the default company.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&companyRow{}, &userRow{}, &clientRow{}, &workOrderRow{}, &serviceReportRow{}, &timeEntryRow{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return db.Where(companyRow{ID: model.DefaultCompanyID}).
		Attrs(companyRow{Name: "ServiceLog"}).
		FirstOrCreate(&companyRow{}).Error
}

// notFound maps gorm's record-not-found onto errs.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}

// exists reports whether a row with the given id is present in the model's table.
func exists(db *gorm.DB, m any, id string) (bool, error) {
	var n int64
	if err := db.Model(m).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r clientRow) toModel() model.Client {
	return model.Client{
		ID: r.ID, Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address,
		CompanyID: r.CompanyID, CreatedAt: r.CreatedAt,
	}
}

func (r workOrderRow) toModel() model.WorkOrder {
	o := model.WorkOrder{
		ID: r.ID, Title: r.Title, Description: r.Description, Status: model.OrderStatus(r.Status),
		ClientID: r.ClientID, CompanyID: r.CompanyID, CreatedAt: r.CreatedAt, TotalTimeMinutes: r.TotalTimeMinutes,
	}
	if r.Client.ID != "" {
		c := r.Client.toModel()
		o.Client = &c
	}
	return o
}

func (r serviceReportRow) toModel() model.ServiceReport {
	rep := model.ServiceReport{
		ID: r.ID, WorkOrderID: r.WorkOrderID, Notes: r.Notes, Equipment: r.Equipment,
		CompletedAt: r.CompletedAt, Photos: r.Photos,
		PartsCost: model.Money(r.PartsCost), ServiceCost: model.Money(r.ServiceCost),
	}
	if r.WorkOrder.ID != "" {
		o := r.WorkOrder.toModel()
		rep.WorkOrder = &o
	}
	return rep
}

func (r timeEntryRow) toModel() model.WorkTimeEntry {
	return model.WorkTimeEntry{ID: r.ID, WorkOrderID: r.WorkOrderID, DurationMin: r.DurationMin, Date: r.Date}
}
