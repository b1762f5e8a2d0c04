package usecase

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/ids"
)

// ProductUseCase casos de uso CRUD para productos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto. El nombre es único en el catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	product := &entity.Product{
		ID:          ids.New(),
		Name:        in.Name,
		Description: in.Description,
		Stock:       in.Stock,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
		Tags:        in.Tags,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica un patch parcial sobre un producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, domain.ErrInvalidInput
	}
	patch := entity.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Stock:       in.Stock,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
		Tags:        in.Tags,
	}
	product, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos con paginación y filtros opcionales.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest, categoryID, tag string) (*dto.ProductListResponse, error) {
	w := repository.Window{Page: page.Page, Limit: page.Limit}
	w.Normalize()
	result, err := uc.repo.List(ctx, w, repository.ProductFilter{CategoryID: categoryID, Tag: tag})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items:      items,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price,
		CategoryID:  p.CategoryID,
		Image:       p.Image,
		Tags:        tags,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
