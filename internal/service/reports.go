package service

import (
	"context"
	"fmt"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/repository"
)

// ServiceReportService manages service reports. Results carry the joined work order and client.
type ServiceReportService interface {
	List(ctx context.Context, f model.ServiceReportFilter) ([]model.ServiceReport, error)
	Create(ctx context.Context, d model.ServiceReportDraft) (*model.ServiceReport, error)
	Update(ctx context.Context, id string, p model.ServiceReportPatch) (*model.ServiceReport, error)
}

type ServiceReportServiceImpl struct {
	repo repository.ServiceReportRepository
}

// NewServiceReportService constructs ServiceReportService.
func NewServiceReportService(repo repository.ServiceReportRepository) *ServiceReportServiceImpl {
	return &ServiceReportServiceImpl{repo: repo}
}

func (s *ServiceReportServiceImpl) List(ctx context.Context, f model.ServiceReportFilter) ([]model.ServiceReport, error) {
	return s.repo.List(ctx, f)
}

func checkCosts(parts, service *model.Money) error {
	if parts != nil && *parts < 0 {
		return fmt.Errorf("%w: partsCost must not be negative", errs.ErrValidation)
	}
	if service != nil && *service < 0 {
		return fmt.Errorf("%w: serviceCost must not be negative", errs.ErrValidation)
	}
	return nil
}

// Create stores a report; completedAt is assigned by storage.
func (s *ServiceReportServiceImpl) Create(ctx context.Context, d model.ServiceReportDraft) (*model.ServiceReport, error) {
	if err := required("workOrderId", d.WorkOrderID); err != nil {
		return nil, err
	}
	if err := required("notes", d.Notes); err != nil {
		return nil, err
	}
	if err := checkCosts(&d.PartsCost, &d.ServiceCost); err != nil {
		return nil, err
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	rep := &model.ServiceReport{
		ID:          id,
		WorkOrderID: d.WorkOrderID,
		Notes:       d.Notes,
		Equipment:   d.Equipment,
		Photos:      d.Photos,
		PartsCost:   d.PartsCost,
		ServiceCost: d.ServiceCost,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *ServiceReportServiceImpl) Update(ctx context.Context, id string, p model.ServiceReportPatch) (*model.ServiceReport, error) {
	if err := required("id", id); err != nil {
		return nil, err
	}
	if p.Notes != nil {
		if err := required("notes", *p.Notes); err != nil {
			return nil, err
		}
	}
	if err := checkCosts(p.PartsCost, p.ServiceCost); err != nil {
		return nil, err
	}
	if p.Empty() {
		return s.repo.Get(ctx, id)
	}
	return s.repo.Update(ctx, id, p)
}
