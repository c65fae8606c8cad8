package service

import (
	"context"
	"strings"

	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/repository"
)

// ClientService manages clients.
type ClientService interface {
	List(ctx context.Context) ([]model.Client, error)
	Create(ctx context.Context, d model.ClientDraft) (*model.Client, error)
	Update(ctx context.Context, id string, p model.ClientPatch) (*model.Client, error)
	// Delete fails with errs.ErrConflict while work orders reference the client.
	Delete(ctx context.Context, id string) error
}

type ClientServiceImpl struct {
	repo repository.ClientRepository
}

// NewClientService constructs ClientService.
func NewClientService(repo repository.ClientRepository) *ClientServiceImpl {
	return &ClientServiceImpl{repo: repo}
}

func (s *ClientServiceImpl) List(ctx context.Context) ([]model.Client, error) {
	return s.repo.List(ctx)
}

// Create validates the draft, assigns an id and stores the client.
func (s *ClientServiceImpl) Create(ctx context.Context, d model.ClientDraft) (*model.Client, error) {
	if err := required("name", d.Name); err != nil {
		return nil, err
	}
	id, err := newID()
	if err != nil {
		return nil, err
	}
	c := &model.Client{
		ID:        id,
		Name:      strings.TrimSpace(d.Name),
		Email:     strings.TrimSpace(d.Email),
		Phone:     strings.TrimSpace(d.Phone),
		Address:   strings.TrimSpace(d.Address),
		CompanyID: companyOrDefault(d.CompanyID, model.DefaultCompanyID),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientServiceImpl) Update(ctx context.Context, id string, p model.ClientPatch) (*model.Client, error) {
	if err := required("id", id); err != nil {
		return nil, err
	}
	if p.Name != nil {
		if err := required("name", *p.Name); err != nil {
			return nil, err
		}
	}
	if p.Empty() {
		return s.repo.Get(ctx, id)
	}
	return s.repo.Update(ctx, id, p)
}

func (s *ClientServiceImpl) Delete(ctx context.Context, id string) error {
	if err := required("id", id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
