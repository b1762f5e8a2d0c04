package usecase

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/ids"
)

// TagUseCase casos de uso CRUD para etiquetas.
type TagUseCase struct {
	repo repository.TagRepository
}

// NewTagUseCase construye el caso de uso.
func NewTagUseCase(repo repository.TagRepository) *TagUseCase {
	return &TagUseCase{repo: repo}
}

// Create crea una nueva etiqueta. El nombre es único.
func (uc *TagUseCase) Create(ctx context.Context, in dto.CreateTagRequest) (*dto.TagResponse, error) {
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

	tag := &entity.Tag{
		ID:          ids.New(),
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
	}
	if err := uc.repo.Create(ctx, tag); err != nil {
		return nil, err
	}
	return toTagResponse(tag), nil
}

// GetByID obtiene una etiqueta por ID.
func (uc *TagUseCase) GetByID(ctx context.Context, id string) (*dto.TagResponse, error) {
	tag, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	return toTagResponse(tag), nil
}

// Update aplica un patch parcial sobre una etiqueta.
func (uc *TagUseCase) Update(ctx context.Context, id string, in dto.UpdateTagRequest) (*dto.TagResponse, error) {
	patch := entity.TagPatch{
		Name:        in.Name,
		Description: in.Description,
		Color:       in.Color,
	}
	tag, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	return toTagResponse(tag), nil
}

// Delete elimina una etiqueta por ID.
func (uc *TagUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// List lista etiquetas con paginación.
func (uc *TagUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.TagListResponse, error) {
	w := repository.Window{Page: page.Page, Limit: page.Limit}
	w.Normalize()
	result, err := uc.repo.List(ctx, w)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TagResponse, 0, len(result.Items))
	for _, t := range result.Items {
		items = append(items, *toTagResponse(t))
	}
	return &dto.TagListResponse{
		Items:      items,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}, nil
}

func toTagResponse(t *entity.Tag) *dto.TagResponse {
	if t == nil {
		return nil
	}
	return &dto.TagResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Color:       t.Color,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
