package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// TagPage resultado paginado de etiquetas.
type TagPage struct {
	Items      []*entity.Tag
	Total      int
	TotalPages int
}

// TagRepository define el puerto de persistencia para Tag (DIP).
type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	GetByID(ctx context.Context, id string) (*entity.Tag, error)
	GetByName(ctx context.Context, name string) (*entity.Tag, error)
	Update(ctx context.Context, id string, patch entity.TagPatch) (*entity.Tag, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, w Window) (*TagPage, error)
}
