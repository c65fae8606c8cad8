package service

import (
	"context"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/repository"
)

type fakeClientRepo struct {
	created   []*model.Client
	createErr error
	deleted   []string
	updated   int
	got       int
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func (f *fakeClientRepo) List(context.Context) ([]model.Client, error) { return []model.Client{}, nil }
func (f *fakeClientRepo) Get(_ context.Context, id string) (*model.Client, error) {
	f.got++
	return &model.Client{ID: id}, nil
}
func (f *fakeClientRepo) Create(_ context.Context, c *model.Client) error {
	f.created = append(f.created, c)
	return f.createErr
}
func (f *fakeClientRepo) Update(_ context.Context, id string, _ model.ClientPatch) (*model.Client, error) {
	f.updated++
	return &model.Client{ID: id}, nil
}
func (f *fakeClientRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeOrderRepo struct {
	orders  map[string]*model.WorkOrder
	patches []model.WorkOrderPatch
}

var _ repository.WorkOrderRepository = (*fakeOrderRepo)(nil)

func newFakeOrderRepo() *fakeOrderRepo { return &fakeOrderRepo{orders: map[string]*model.WorkOrder{}} }

func (f *fakeOrderRepo) List(context.Context, model.WorkOrderFilter) ([]model.WorkOrder, error) {
	return []model.WorkOrder{}, nil
}
func (f *fakeOrderRepo) Get(_ context.Context, id string) (*model.WorkOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *o
	return &cp, nil
}
func (f *fakeOrderRepo) Create(_ context.Context, o *model.WorkOrder) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}
func (f *fakeOrderRepo) Update(ctx context.Context, id string, p model.WorkOrderPatch) (*model.WorkOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	f.patches = append(f.patches, p)
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.TotalTimeMinutes != nil {
		v := *p.TotalTimeMinutes
		o.TotalTimeMinutes = &v
	}
	return f.Get(ctx, id)
}

type fakeEntryRepo struct {
	entries map[string]model.WorkTimeEntry
}

var _ repository.TimeEntryRepository = (*fakeEntryRepo)(nil)

func newFakeEntryRepo() *fakeEntryRepo { return &fakeEntryRepo{entries: map[string]model.WorkTimeEntry{}} }

func (f *fakeEntryRepo) List(context.Context, model.TimeEntryFilter) ([]model.WorkTimeEntry, error) {
	out := []model.WorkTimeEntry{}
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}
func (f *fakeEntryRepo) Get(_ context.Context, id string) (*model.WorkTimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &e, nil
}
func (f *fakeEntryRepo) Create(_ context.Context, e *model.WorkTimeEntry) error {
	f.entries[e.ID] = *e
	return nil
}
func (f *fakeEntryRepo) Update(_ context.Context, id string, p model.TimeEntryPatch) (*model.WorkTimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if p.DurationMin != nil {
		e.DurationMin = *p.DurationMin
	}
	f.entries[id] = e
	return &e, nil
}
func (f *fakeEntryRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.entries, id)
	return nil
}
func (f *fakeEntryRepo) TotalMinutes(_ context.Context, orderID string) (int, error) {
	t := 0
	for _, e := range f.entries {
		if e.WorkOrderID == orderID {
			t += e.DurationMin
		}
	}
	return t, nil
}

type fakeUserRepo struct {
	companies []model.Company
	users     []*model.User
}

func (f *fakeUserRepo) EnsureCompany(_ context.Context, c model.Company) error {
	f.companies = append(f.companies, c)
	return nil
}
func (f *fakeUserRepo) EnsureUser(_ context.Context, u *model.User) error {
	f.users = append(f.users, u)
	return nil
}
