package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/and161185/servicelog/internal/model"
)

// UserRepo implements repository.UserRepository.
type UserRepo struct{ db *gorm.DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) EnsureCompany(ctx context.Context, c model.Company) error {
	row := companyRow{ID: c.ID, Name: c.Name}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r *UserRepo) EnsureUser(ctx context.Context, u *model.User) error {
	row := userRow{
		ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, Name: u.Name,
		Role: string(u.Role), CompanyID: u.CompanyID,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}
