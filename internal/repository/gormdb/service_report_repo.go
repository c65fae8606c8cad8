package gormdb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
)

// ServiceReportRepo implements repository.ServiceReportRepository.
type ServiceReportRepo struct{ db *gorm.DB }

// NewServiceReportRepo constructs a service report repository.
func NewServiceReportRepo(db *gorm.DB) *ServiceReportRepo { return &ServiceReportRepo{db: db} }

func (r *ServiceReportRepo) List(ctx context.Context, f model.ServiceReportFilter) ([]model.ServiceReport, error) {
	q := r.db.WithContext(ctx).Preload("WorkOrder.Client")
	if f.WorkOrderID != "" {
		q = q.Where("work_order_id = ?", f.WorkOrderID)
	}
	var rows []serviceReportRow
	if err := q.Order("completed_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.ServiceReport, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *ServiceReportRepo) Get(ctx context.Context, id string) (*model.ServiceReport, error) {
	var row serviceReportRow
	if err := r.db.WithContext(ctx).Preload("WorkOrder.Client").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	rep := row.toModel()
	return &rep, nil
}

func (r *ServiceReportRepo) Create(ctx context.Context, rep *model.ServiceReport) error {
	db := r.db.WithContext(ctx)
	ok, err := exists(db, &workOrderRow{}, rep.WorkOrderID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown work order %q", errs.ErrValidation, rep.WorkOrderID)
	}
	photos := rep.Photos
	if photos == nil {
		photos = [][]byte{}
	}
	row := serviceReportRow{
		ID: rep.ID, WorkOrderID: rep.WorkOrderID, Notes: rep.Notes, Equipment: rep.Equipment,
		CompletedAt: time.Now().UTC(), Photos: photos,
		PartsCost: int64(rep.PartsCost), ServiceCost: int64(rep.ServiceCost),
	}
	if err := db.Omit(clause.Associations).Create(&row).Error; err != nil {
		return err
	}
	rep.CompletedAt = row.CompletedAt
	return nil
}

func (r *ServiceReportRepo) Update(ctx context.Context, id string, p model.ServiceReportPatch) (*model.ServiceReport, error) {
	var row serviceReportRow
	db := r.db.WithContext(ctx)
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	if p.Notes != nil {
		row.Notes = *p.Notes
	}
	if p.Equipment != nil {
		row.Equipment = *p.Equipment
	}
	if p.Photos != nil {
		row.Photos = *p.Photos
	}
	if p.PartsCost != nil {
		row.PartsCost = int64(*p.PartsCost)
	}
	if p.ServiceCost != nil {
		row.ServiceCost = int64(*p.ServiceCost)
	}
	if !p.Empty() {
		if err := db.Omit(clause.Associations).Save(&row).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, id)
}
