package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var userCols = []string{"id", "first_name", "last_name", "email", "phone_number", "role", "created_at", "updated_at"}

func TestUserRepo_Create_OK_y_EmailDuplicado(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewUserRepository(mock)
	ctx := context.Background()

	u := &entity.User{
		ID:           "01HX4Y0000000000000000USER",
		FirstName:    "Ana",
		LastName:     "Gómez",
		Email:        "ana@example.com",
		PhoneNumber:  573001112233,
		Role:         entity.RoleManager,
		PasswordHash: "$argon2id$v=19$m=65536,t=2,p=1$c2FsdA$ZGlnZXN0",
	}
	insertSQL := regexp.QuoteMeta("INSERT INTO users (id, first_name, last_name, email, phone_number, role, password) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at")

	now := time.Now()
	mock.ExpectQuery(insertSQL).
		WithArgs(u.ID, u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.Role, u.PasswordHash).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, r.Create(ctx, u))

	mock.ExpectQuery(insertSQL).
		WithArgs(u.ID, u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.Role, u.PasswordHash).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, r.Create(ctx, u), domain.ErrEmailAlreadyExists)

	require.NoError(t, mock.ExpectationsWereMet())
}

// GetByID no debe seleccionar la columna password.
func TestUserRepo_GetByID_SinHash(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewUserRepository(mock)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE id = $1")).
		WithArgs("01HX").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("01HX", "Ana", "Gómez", "ana@example.com", int64(573001112233), "manager", now, now))

	u, err := r.GetByID(context.Background(), "01HX")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Empty(t, u.PasswordHash, "el hash no sale de las variantes WithPassword")
}

func TestUserRepo_GetByEmailWithPassword(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewUserRepository(mock)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + ", password FROM users WHERE email = $1")).
		WithArgs("ana@example.com").
		WillReturnRows(pgxmock.NewRows(append(userCols, "password")).
			AddRow("01HX", "Ana", "Gómez", "ana@example.com", int64(0), "manager", now, now, "$argon2id$..."))

	u, err := r.GetByEmailWithPassword(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "$argon2id$...", u.PasswordHash)

	// Email inexistente → (nil, nil): el servicio decide cómo reportarlo.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + ", password FROM users WHERE email = $1")).
		WithArgs("nadie@example.com").
		WillReturnError(pgx.ErrNoRows)
	u, err = r.GetByEmailWithPassword(context.Background(), "nadie@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUserRepo_UpdatePassword(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewUserRepository(mock)
	ctx := context.Background()

	sql := regexp.QuoteMeta("UPDATE users SET password = $2, updated_at = now() WHERE id = $1")

	mock.ExpectExec(sql).
		WithArgs("01HX", "$argon2id$nuevo").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.UpdatePassword(ctx, "01HX", "$argon2id$nuevo"))

	mock.ExpectExec(sql).
		WithArgs("01NO", "$argon2id$nuevo").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	assert.ErrorIs(t, r.UpdatePassword(ctx, "01NO", "$argon2id$nuevo"), domain.ErrUserNotFound)
}

func TestUserRepo_Update_PatchVacio_SoloLee(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewUserRepository(mock)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + userColumns + " FROM users WHERE id = $1")).
		WithArgs("01HX").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("01HX", "Ana", "Gómez", "ana@example.com", int64(0), "manager", now, now))

	u, err := r.Update(context.Background(), "01HX", entity.UserPatch{})
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_List_FiltroPorRol(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewUserRepository(mock)

	now := time.Now()
	rows := pgxmock.NewRows(append(userCols, "total_count")).
		AddRow("01HX", "Ana", "Gómez", "ana@example.com", int64(0), "operator", now, now, 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+userColumns+", COUNT(*) OVER() AS total_count FROM users"+
		" WHERE role = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("operator", 20, 0).
		WillReturnRows(rows)

	page, err := r.List(context.Background(), repository.Window{Page: 1, Limit: 20}, repository.UserFilter{Role: "operator"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}
