package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// UserPage resultado paginado de usuarios.
type UserPage struct {
	Items      []*entity.User
	Total      int
	TotalPages int
}

// UserFilter predicados opcionales del listado (cadena vacía = sin filtro).
type UserFilter struct {
	Role string
}

// UserRepository define el puerto de persistencia para User (DIP).
// Los Get* devuelven (nil, nil) cuando no hay fila: la ausencia no es un error
// del repositorio, la decide la capa de servicio.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByEmail no cargan el hash de contraseña.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Las variantes WithPassword son de uso exclusivo del servicio de auth.
	GetByIDWithPassword(ctx context.Context, id string) (*entity.User, error)
	GetByEmailWithPassword(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, w Window, f UserFilter) (*UserPage, error)
}
