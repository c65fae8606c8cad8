package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
)

// TimeEntryRepo implements repository.TimeEntryRepository.
type TimeEntryRepo struct{ db *gorm.DB }

// NewTimeEntryRepo constructs a work time entry repository.
func NewTimeEntryRepo(db *gorm.DB) *TimeEntryRepo { return &TimeEntryRepo{db: db} }

func (r *TimeEntryRepo) List(ctx context.Context, f model.TimeEntryFilter) ([]model.WorkTimeEntry, error) {
	q := r.db.WithContext(ctx)
	if f.WorkOrderID != "" {
		q = q.Where("work_order_id = ?", f.WorkOrderID)
	}
	var rows []timeEntryRow
	if err := q.Order("date, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.WorkTimeEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *TimeEntryRepo) Get(ctx context.Context, id string) (*model.WorkTimeEntry, error) {
	var row timeEntryRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	e := row.toModel()
	return &e, nil
}

func (r *TimeEntryRepo) Create(ctx context.Context, e *model.WorkTimeEntry) error {
	db := r.db.WithContext(ctx)
	ok, err := exists(db, &workOrderRow{}, e.WorkOrderID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown work order %q", errs.ErrValidation, e.WorkOrderID)
	}
	row := timeEntryRow{ID: e.ID, WorkOrderID: e.WorkOrderID, DurationMin: e.DurationMin, Date: e.Date}
	return db.Create(&row).Error
}

func (r *TimeEntryRepo) Update(ctx context.Context, id string, p model.TimeEntryPatch) (*model.WorkTimeEntry, error) {
	db := r.db.WithContext(ctx)
	var row timeEntryRow
	if err := db.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	if p.DurationMin != nil {
		row.DurationMin = *p.DurationMin
	}
	if p.Date != nil {
		row.Date = *p.Date
	}
	if !p.Empty() {
		if err := db.Save(&row).Error; err != nil {
			return nil, err
		}
	}
	e := row.toModel()
	return &e, nil
}

func (r *TimeEntryRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&timeEntryRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *TimeEntryRepo) TotalMinutes(ctx context.Context, workOrderID string) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&timeEntryRow{}).
		Where("work_order_id = ?", workOrderID).
		Select("COALESCE(SUM(duration_min), 0)").
		Scan(&total).Error
	return int(total), err
}
