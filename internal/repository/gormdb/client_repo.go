package gormdb

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/and161185/servicelog/internal/errs"
	"github.com/and161185/servicelog/internal/model"
)

// ClientRepo implements repository.ClientRepository.
type ClientRepo struct{ db *gorm.DB }

// NewClientRepo constructs a client repository.
func NewClientRepo(db *gorm.DB) *ClientRepo { return &ClientRepo{db: db} }

func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	var rows []clientRow
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *ClientRepo) Get(ctx context.Context, id string) (*model.Client, error) {
	var row clientRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	c := row.toModel()
	return &c, nil
}

func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	db := r.db.WithContext(ctx)
	ok, err := exists(db, &companyRow{}, c.CompanyID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: unknown company %q", errs.ErrValidation, c.CompanyID)
	}
	if dup, err := exists(db, &clientRow{}, c.ID); err != nil {
		return err
	} else if dup {
		return fmt.Errorf("%w: duplicate id", errs.ErrConflict)
	}
	row := clientRow{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address, CompanyID: c.CompanyID}
	if err := db.Create(&row).Error; err != nil {
		return err
	}
	c.CreatedAt = row.CreatedAt
	return nil
}

func (r *ClientRepo) Update(ctx context.Context, id string, p model.ClientPatch) (*model.Client, error) {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Address != nil {
		set["address"] = *p.Address
	}
	if len(set) > 0 {
		res := r.db.WithContext(ctx).Model(&clientRow{}).Where("id = ?", id).Updates(set)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, errs.ErrNotFound
		}
	}
	return r.Get(ctx, id)
}

// Delete refuses to remove a client that still has work orders.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	var n int64
	if err := db.Model(&workOrderRow{}).Where("client_id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: client %s has work orders", errs.ErrConflict, id)
	}
	res := db.Where("id = ?", id).Delete(&clientRow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
