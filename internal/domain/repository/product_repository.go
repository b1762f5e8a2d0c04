package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// ProductPage resultado paginado de productos.
type ProductPage struct {
	Items      []*entity.Product
	Total      int
	TotalPages int
}

// ProductFilter predicados opcionales del listado (cadena vacía = sin filtro).
type ProductFilter struct {
	CategoryID string // igualdad sobre category_id
	Tag        string // contención: tags @> ARRAY[tag]
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, w Window, f ProductFilter) (*ProductPage, error)
}
