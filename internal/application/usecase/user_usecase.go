package usecase

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/hash"
	"github.com/jhoicas/catalog-api/pkg/ids"
)

// UserUseCase casos de uso CRUD para usuarios. El password entra en texto
// plano y se hashea aquí; nunca llega en claro al repositorio.
type UserUseCase struct {
	repo   repository.UserRepository
	hasher *hash.Hasher
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, hasher *hash.Hasher) *UserUseCase {
	return &UserUseCase{repo: repo, hasher: hasher}
}

// Create crea un nuevo usuario. El email es único.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	passwordHash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           ids.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Role:         in.Role,
		PasswordHash: passwordHash,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID (sin hash de contraseña).
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update aplica un patch parcial sobre un usuario. Si el patch trae password,
// se hashea antes de persistir.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.Role != nil && !entity.ValidRole(*in.Role) {
		return nil, domain.ErrInvalidInput
	}
	patch := entity.UserPatch{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Role:        in.Role,
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrInvalidInput
		}
		passwordHash, err := uc.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &passwordHash
	}
	user, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario por ID.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}
	return nil
}

// List lista usuarios con paginación y filtro opcional por rol.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest, role string) (*dto.UserListResponse, error) {
	if role != "" && !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	w := repository.Window{Page: page.Page, Limit: page.Limit}
	w.Normalize()
	result, err := uc.repo.List(ctx, w, repository.UserFilter{Role: role})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(result.Items))
	for _, u := range result.Items {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items:      items,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
