package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooladmin/internal/domain"
)

func TestRoleRepository_GetByCode(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRoleRepository(db)

	mock.ExpectQuery(`SELECT id, code FROM roles WHERE code = \$1`).
		WithArgs(domain.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).AddRow("role-1", "admin"))
	role, err := repo.GetByCode(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, &domain.Role{ID: "role-1", Code: "admin"}, role)

	mock.ExpectQuery(`FROM roles WHERE code`).WithArgs("janitor").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByCode(ctx, "janitor")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleRepository_ListByUserID(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM roles r\s+INNER JOIN user_roles ur ON ur.role_id = r.id`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).
			AddRow("role-1", "admin").
			AddRow("role-2", "teacher"))

	roles, err := NewRoleRepository(db).ListByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "teacher", roles[1].Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
