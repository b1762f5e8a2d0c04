package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.TagRepository = (*TagRepo)(nil)

const tagColumns = "id, name, description, color, created_at, updated_at"

// TagRepo implementación del puerto TagRepository sobre PostgreSQL.
type TagRepo struct {
	q Querier
}

// NewTagRepository construye el adaptador de persistencia para etiquetas. Pasar pool o tx (Querier).
func NewTagRepository(q Querier) *TagRepo {
	return &TagRepo{q: q}
}

// Create persiste una nueva etiqueta.
func (r *TagRepo) Create(ctx context.Context, t *entity.Tag) error {
	fields := []Field{
		{Name: "id", Value: t.ID},
		{Name: "name", Value: t.Name},
		{Name: "color", Value: t.Color},
	}
	if t.Description != "" {
		fields = append(fields, Field{Name: "description", Value: t.Description})
	}
	query, params := BuildInsert("tags", fields)
	query += " RETURNING created_at, updated_at"

	err := r.q.QueryRow(ctx, query, params...).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

// GetByID obtiene una etiqueta por ID. Retorna (nil, nil) si no existe.
func (r *TagRepo) GetByID(ctx context.Context, id string) (*entity.Tag, error) {
	query := "SELECT " + tagColumns + " FROM tags WHERE id = $1"
	t, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return t, nil
}

// GetByName obtiene una etiqueta por nombre (único). Retorna (nil, nil) si no existe.
func (r *TagRepo) GetByName(ctx context.Context, name string) (*entity.Tag, error) {
	query := "SELECT " + tagColumns + " FROM tags WHERE name = $1"
	t, err := r.scanOne(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get tag by name: %w", err)
	}
	return t, nil
}

// Update aplica un patch parcial y refresca updated_at. Un patch vacío
// devuelve la fila actual. Retorna (nil, nil) si no existe.
func (r *TagRepo) Update(ctx context.Context, id string, patch entity.TagPatch) (*entity.Tag, error) {
	var fields []Field
	if patch.Name != nil {
		fields = append(fields, Field{Name: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		fields = append(fields, Field{Name: "description", Value: *patch.Description})
	}
	if patch.Color != nil {
		fields = append(fields, Field{Name: "color", Value: *patch.Color})
	}

	query, params, ok := BuildUpdate("tags", id, fields)
	if !ok {
		return r.GetByID(ctx, id)
	}
	query += " RETURNING " + tagColumns

	t, err := r.scanOne(r.q.QueryRow(ctx, query, params...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return t, nil
}

// Delete elimina una etiqueta por ID. Retorna false si no existía.
func (r *TagRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, "DELETE FROM tags WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete tag: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List pagina etiquetas ordenadas por fecha de creación descendente.
func (r *TagRepo) List(ctx context.Context, w repository.Window) (*repository.TagPage, error) {
	w.Normalize()

	query := "SELECT " + tagColumns + ", COUNT(*) OVER() AS total_count FROM tags" +
		" ORDER BY created_at DESC LIMIT $1 OFFSET $2"

	rows, err := r.q.Query(ctx, query, w.Limit, w.Offset())
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	page := &repository.TagPage{Items: []*entity.Tag{}}
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Color,
			&t.CreatedAt, &t.UpdatedAt, &page.Total); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		page.Items = append(page.Items, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	page.TotalPages = w.TotalPages(page.Total)
	return page, nil
}

func (r *TagRepo) scanOne(row pgx.Row) (*entity.Tag, error) {
	var t entity.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
