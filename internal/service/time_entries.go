package service

import (
	"context"
	"fmt"
	"time"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/repository"
)

// TimeEntryService manages work time entries. Every change recomputes the
// owning order's TotalTimeMinutes.
type TimeEntryService interface {
	List(ctx context.Context, f model.TimeEntryFilter) ([]model.WorkTimeEntry, error)
	Create(ctx context.Context, d model.TimeEntryDraft) (*model.WorkTimeEntry, error)
	Update(ctx context.Context, id string, p model.TimeEntryPatch) (*model.WorkTimeEntry, error)
	Delete(ctx context.Context, id string) error
}

type TimeEntryServiceImpl struct {
	entries repository.TimeEntryRepository
	orders  repository.WorkOrderRepository
	now     func() time.Time
}

// NewTimeEntryService constructs TimeEntryService.
func NewTimeEntryService(entries repository.TimeEntryRepository, orders repository.WorkOrderRepository) *TimeEntryServiceImpl {
	return &TimeEntryServiceImpl{entries: entries, orders: orders, now: time.Now}
}

func (s *TimeEntryServiceImpl) List(ctx context.Context, f model.TimeEntryFilter) ([]model.WorkTimeEntry, error) {
	return s.entries.List(ctx, f)
}

func (s *TimeEntryServiceImpl) Create(ctx context.Context, d model.TimeEntryDraft) (*model.WorkTimeEntry, error) {
	if err := required("workOrderId", d.WorkOrderID); err != nil {
		return nil, err
	}
	if d.DurationMin <= 0 {
		return nil, fmt.Errorf("%w: durationMin must be positive", errs.ErrValidation)
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	e := &model.WorkTimeEntry{ID: id, WorkOrderID: d.WorkOrderID, DurationMin: d.DurationMin, Date: d.Date}
	if e.Date.IsZero() {
		e.Date = s.now().UTC()
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	if err := s.refreshTotal(ctx, e.WorkOrderID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *TimeEntryServiceImpl) Update(ctx context.Context, id string, p model.TimeEntryPatch) (*model.WorkTimeEntry, error) {
	if err := required("id", id); err != nil {
		return nil, err
	}
	if p.DurationMin != nil && *p.DurationMin <= 0 {
		return nil, fmt.Errorf("%w: durationMin must be positive", errs.ErrValidation)
	}
	if p.Empty() {
		return s.entries.Get(ctx, id)
	}
	e, err := s.entries.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTotal(ctx, e.WorkOrderID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *TimeEntryServiceImpl) Delete(ctx context.Context, id string) error {
	if err := required("id", id); err != nil {
		return err
	}
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	return s.refreshTotal(ctx, e.WorkOrderID)
}

func (s *TimeEntryServiceImpl) refreshTotal(ctx context.Context, orderID string) error {
	total, err := s.entries.TotalMinutes(ctx, orderID)
	if err != nil {
		return fmt.Errorf("sum time entries: %w", err)
	}
	if _, err := s.orders.Update(ctx, orderID, model.WorkOrderPatch{TotalTimeMinutes: &total}); err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	return nil
}
