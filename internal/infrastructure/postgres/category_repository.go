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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = "id, name, description, parent_id, created_at, updated_at"

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. parent_id solo se incluye si viene en la entidad.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	fields := []Field{
		{Name: "id", Value: c.ID},
		{Name: "name", Value: c.Name},
	}
	if c.Description != "" {
		fields = append(fields, Field{Name: "description", Value: c.Description})
	}
	if c.ParentID != nil {
		fields = append(fields, Field{Name: "parent_id", Value: *c.ParentID})
	}
	query, params := BuildInsert("categories", fields)
	query += " RETURNING created_at, updated_at"

	err := r.q.QueryRow(ctx, query, params...).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID. Retorna (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE id = $1"
	c, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// GetByName obtiene una categoría por nombre (único). Retorna (nil, nil) si no existe.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	query := "SELECT " + categoryColumns + " FROM categories WHERE name = $1"
	c, err := r.scanOne(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return c, nil
}

// Update aplica un patch parcial y refresca updated_at. Un patch vacío
// devuelve la fila actual. Retorna (nil, nil) si no existe.
func (r *CategoryRepo) Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error) {
	var fields []Field
	if patch.Name != nil {
		fields = append(fields, Field{Name: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		fields = append(fields, Field{Name: "description", Value: *patch.Description})
	}
	if patch.ParentID != nil {
		fields = append(fields, Field{Name: "parent_id", Value: *patch.ParentID})
	}

	query, params, ok := BuildUpdate("categories", id, fields)
	if !ok {
		return r.GetByID(ctx, id)
	}
	query += " RETURNING " + categoryColumns

	c, err := r.scanOne(r.q.QueryRow(ctx, query, params...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrInvalidInput
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

// Delete elimina una categoría por ID. Retorna false si no existía.
// Una categoría referenciada por productos o subcategorías no se puede borrar.
func (r *CategoryRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrInvalidInput
		}
		return false, fmt.Errorf("delete category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List pagina categorías con filtro opcional por categoría padre.
func (r *CategoryRepo) List(ctx context.Context, w repository.Window, f repository.CategoryFilter) (*repository.CategoryPage, error) {
	w.Normalize()

	var clauses []string
	var params []any
	if f.ParentID != "" {
		params = append(params, f.ParentID)
		clauses = append(clauses, fmt.Sprintf("parent_id = $%d", len(params)))
	}

	query := "SELECT " + categoryColumns + ", COUNT(*) OVER() AS total_count FROM categories"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(params)+1, len(params)+2)
	params = append(params, w.Limit, w.Offset())

	rows, err := r.q.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	page := &repository.CategoryPage{Items: []*entity.Category{}}
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID,
			&c.CreatedAt, &c.UpdatedAt, &page.Total); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		page.Items = append(page.Items, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	page.TotalPages = w.TotalPages(page.Total)
	return page, nil
}

func (r *CategoryRepo) scanOne(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
