package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
)

// WorkOrderRepo implements repository.WorkOrderRepository.
type WorkOrderRepo struct{ db *gorm.DB }

// NewWorkOrderRepo constructs a work order repository.
func NewWorkOrderRepo(db *gorm.DB) *WorkOrderRepo { return &WorkOrderRepo{db: db} }

func (r *WorkOrderRepo) List(ctx context.Context, f model.WorkOrderFilter) ([]model.WorkOrder, error) {
	q := r.db.WithContext(ctx).Preload("Client")
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	var rows []workOrderRow
	if err := q.Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.WorkOrder, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *WorkOrderRepo) Get(ctx context.Context, id string) (*model.WorkOrder, error) {
	var row workOrderRow
	if err := r.db.WithContext(ctx).Preload("Client").Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	o := row.toModel()
	return &o, nil
}

func (r *WorkOrderRepo) Create(ctx context.Context, o *model.WorkOrder) error {
	db := r.db.WithContext(ctx)
	ok, err := exists(db, &clientRow{}, o.ClientID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown client %q", errs.ErrValidation, o.ClientID)
	}
	row := workOrderRow{
		ID: o.ID, Title: o.Title, Description: o.Description, Status: string(o.Status),
		ClientID: o.ClientID, CompanyID: o.CompanyID, TotalTimeMinutes: o.TotalTimeMinutes,
	}
	if err := db.Omit(clause.Associations).Create(&row).Error; err != nil {
		return err
	}
	o.CreatedAt = row.CreatedAt
	return nil
}

func (r *WorkOrderRepo) Update(ctx context.Context, id string, p model.WorkOrderPatch) (*model.WorkOrder, error) {
	set := map[string]any{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.TotalTimeMinutes != nil {
		set["total_time_minutes"] = *p.TotalTimeMinutes
	}
	if len(set) > 0 {
		res := r.db.WithContext(ctx).Model(&workOrderRow{}).Where("id = ?", id).Updates(set)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, errs.ErrNotFound
		}
	}
	return r.Get(ctx, id)
}
