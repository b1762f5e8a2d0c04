package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// CategoryPage resultado paginado de categorías.
type CategoryPage struct {
	Items      []*entity.Category
	Total      int
	TotalPages int
}

// CategoryFilter predicados opcionales del listado.
type CategoryFilter struct {
	ParentID string // igualdad sobre parent_id
}

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, id string, patch entity.CategoryPatch) (*entity.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, w Window, f CategoryFilter) (*CategoryPage, error)
}
