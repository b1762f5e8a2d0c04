package usecase

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/ids"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una nueva categoría. El nombre es único; parent_id opcional
// referencia a otra categoría existente.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	category := &entity.Category{
		ID:          ids.New(),
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Update aplica un patch parcial sobre una categoría.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	patch := entity.CategoryPatch{
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
	}
	category, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría por ID.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// List lista categorías con paginación y filtro opcional por categoría padre.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest, parentID string) (*dto.CategoryListResponse, error) {
	w := repository.Window{Page: page.Page, Limit: page.Limit}
	w.Normalize()
	result, err := uc.repo.List(ctx, w, repository.CategoryFilter{ParentID: parentID})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(result.Items))
	for _, c := range result.Items {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Items:      items,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
