package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/repository"
)

// WorkOrderService manages work orders. Results carry the joined client.
type WorkOrderService interface {
	List(ctx context.Context, f model.WorkOrderFilter) ([]model.WorkOrder, error)
	Create(ctx context.Context, d model.WorkOrderDraft) (*model.WorkOrder, error)
	Update(ctx context.Context, id string, p model.WorkOrderPatch) (*model.WorkOrder, error)
}

type WorkOrderServiceImpl struct {
	repo repository.WorkOrderRepository
}

// NewWorkOrderService constructs WorkOrderService.
func NewWorkOrderService(repo repository.WorkOrderRepository) *WorkOrderServiceImpl {
	return &WorkOrderServiceImpl{repo: repo}
}

func (s *WorkOrderServiceImpl) List(ctx context.Context, f model.WorkOrderFilter) ([]model.WorkOrder, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, f.Status)
	}
	return s.repo.List(ctx, f)
}

// Create stores a new order. Status defaults to OPEN.
func (s *WorkOrderServiceImpl) Create(ctx context.Context, d model.WorkOrderDraft) (*model.WorkOrder, error) {
	if err := required("title", d.Title); err != nil {
		return nil, err
	}
	if err := required("clientId", d.ClientID); err != nil {
		return nil, err
	}
	status := d.Status
	if status == "" {
		status = model.StatusOpen
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, status)
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	o := &model.WorkOrder{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Status:      status,
		ClientID:    d.ClientID,
		CompanyID:   companyOrDefault(d.CompanyID, model.DefaultCompanyID),
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Update applies the patch. Any known status may be written; transitions are not guarded here.
func (s *WorkOrderServiceImpl) Update(ctx context.Context, id string, p model.WorkOrderPatch) (*model.WorkOrder, error) {
	if err := required("id", id); err != nil {
		return nil, err
	}
	if p.Title != nil {
		if err := required("title", *p.Title); err != nil {
			return nil, err
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", errs.ErrValidation, *p.Status)
	}
	if p.TotalTimeMinutes != nil && *p.TotalTimeMinutes < 0 {
		return nil, fmt.Errorf("%w: totalTimeMinutes must not be negative", errs.ErrValidation)
	}
	if p.Empty() {
		return s.repo.Get(ctx, id)
	}
	return s.repo.Update(ctx, id, p)
}
