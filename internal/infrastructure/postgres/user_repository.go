package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// Columnas públicas: el hash de contraseña solo se selecciona en las variantes
// WithPassword, que consume únicamente el servicio de auth.
const userColumns = "id, first_name, last_name, email, phone_number, role, created_at, updated_at"

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario (el hash viene ya calculado por el caso de uso).
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	fields := []Field{
		{Name: "id", Value: u.ID},
		{Name: "first_name", Value: u.FirstName},
		{Name: "last_name", Value: u.LastName},
		{Name: "email", Value: u.Email},
		{Name: "phone_number", Value: u.PhoneNumber},
		{Name: "role", Value: u.Role},
		{Name: "password", Value: u.PasswordHash},
	}
	query, params := BuildInsert("users", fields)
	query += " RETURNING created_at, updated_at"

	err := r.q.QueryRow(ctx, query, params...).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID, sin hash. Retorna (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"
	u, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email, sin hash. Retorna (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"
	u, err := r.scanOne(r.q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetByIDWithPassword obtiene un usuario por ID incluyendo el hash (solo auth).
func (r *UserRepo) GetByIDWithPassword(ctx context.Context, id string) (*entity.User, error) {
	query := "SELECT " + userColumns + ", password FROM users WHERE id = $1"
	u, err := r.scanOneWithPassword(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get user by id with password: %w", err)
	}
	return u, nil
}

// GetByEmailWithPassword obtiene un usuario por email incluyendo el hash (solo auth).
func (r *UserRepo) GetByEmailWithPassword(ctx context.Context, email string) (*entity.User, error) {
	query := "SELECT " + userColumns + ", password FROM users WHERE email = $1"
	u, err := r.scanOneWithPassword(r.q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("get user by email with password: %w", err)
	}
	return u, nil
}

// Update aplica un patch parcial y refresca updated_at. Un patch vacío no
// emite SQL y devuelve la fila actual. Retorna (nil, nil) si no existe.
func (r *UserRepo) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	var fields []Field
	if patch.FirstName != nil {
		fields = append(fields, Field{Name: "first_name", Value: *patch.FirstName})
	}
	if patch.LastName != nil {
		fields = append(fields, Field{Name: "last_name", Value: *patch.LastName})
	}
	if patch.Email != nil {
		fields = append(fields, Field{Name: "email", Value: *patch.Email})
	}
	if patch.PhoneNumber != nil {
		fields = append(fields, Field{Name: "phone_number", Value: *patch.PhoneNumber})
	}
	if patch.Role != nil {
		fields = append(fields, Field{Name: "role", Value: *patch.Role})
	}
	if patch.PasswordHash != nil {
		fields = append(fields, Field{Name: "password", Value: *patch.PasswordHash})
	}

	query, params, ok := BuildUpdate("users", id, fields)
	if !ok {
		return r.GetByID(ctx, id)
	}
	query += " RETURNING " + userColumns

	u, err := r.scanOne(r.q.QueryRow(ctx, query, params...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// UpdatePassword reemplaza solo el hash de contraseña (login con rehash y cambio de contraseña).
func (r *UserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	cmd, err := r.q.Exec(ctx,
		"UPDATE users SET password = $2, updated_at = now() WHERE id = $1",
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un usuario por ID. Retorna false si no existía.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List pagina usuarios con filtro opcional por rol. El total se calcula con
// COUNT(*) OVER() en la misma consulta.
func (r *UserRepo) List(ctx context.Context, w repository.Window, f repository.UserFilter) (*repository.UserPage, error) {
	w.Normalize()

	var clauses []string
	var params []any
	if f.Role != "" {
		params = append(params, f.Role)
		clauses = append(clauses, fmt.Sprintf("role = $%d", len(params)))
	}

	query := "SELECT " + userColumns + ", COUNT(*) OVER() AS total_count FROM users"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(params)+1, len(params)+2)
	params = append(params, w.Limit, w.Offset())

	rows, err := r.q.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	page := &repository.UserPage{Items: []*entity.User{}}
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
			&u.Role, &u.CreatedAt, &u.UpdatedAt, &page.Total); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		page.Items = append(page.Items, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	page.TotalPages = w.TotalPages(page.Total)
	return page, nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
		&u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) scanOneWithPassword(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PhoneNumber,
		&u.Role, &u.CreatedAt, &u.UpdatedAt, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
