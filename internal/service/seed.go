package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/and161185/servicelog/internal/crypto"
	"github.com/and161185/servicelog/internal/model"
	"github.com/and161185/servicelog/internal/repository"
)

// Account describes the user created by Seed.
type Account struct {
	ID       string
	Email    string
	Password string
	Name     string
	Role     model.Role
}

// Seed ensures the default company and the given account exist. It is idempotent.
func Seed(ctx context.Context, users repository.UserRepository, acc Account, log *zap.Logger) error {
	if err := users.EnsureCompany(ctx, model.Company{ID: model.DefaultCompanyID, Name: "ServiceLog"}); err != nil {
		return fmt.Errorf("seed company: %w", err)
	}
	hash, err := crypto.HashPassword([]byte(acc.Password))
	if err != nil {
		return err
	}
	u := &model.User{
		ID:           acc.ID,
		Email:        acc.Email,
		PasswordHash: hash,
		Name:         acc.Name,
		Role:         acc.Role,
		CompanyID:    model.DefaultCompanyID,
	}
	if err := users.EnsureUser(ctx, u); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	log.Info("seed ok", zap.String("company", model.DefaultCompanyID), zap.String("user", acc.Email))
	return nil
}
