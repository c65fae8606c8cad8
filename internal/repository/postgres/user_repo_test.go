package postgres

import (
	"context"
	"testing"

	"github.com/and161185/servicelog/internal/model"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestUserRepo_EnsureCompanyAndUser(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO companies \(id, name\) VALUES \(\$1, \$2\) ON CONFLICT \(id\) DO NOTHING`).
		WithArgs("c1", "ServiceLog").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.EnsureCompany(ctx, model.Company{ID: "c1", Name: "ServiceLog"}))

	u := &model.User{ID: "u1", Email: "admin@servicelog.pl", PasswordHash: []byte("h"), Name: "Jan", Role: model.RoleAdmin, CompanyID: "c1"}
	mock.ExpectExec(`INSERT INTO users .* ON CONFLICT \(email\) DO NOTHING`).
		WithArgs("u1", "admin@servicelog.pl", []byte("h"), "Jan", "ADMIN", "c1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	require.NoError(t, r.EnsureUser(ctx, u))
	require.NoError(t, mock.ExpectationsWereMet())
}
