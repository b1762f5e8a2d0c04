package auth

import (
	"context"
	"time"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/hash"
	"github.com/jhoicas/catalog-api/pkg/jwt"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase casos de uso de autenticación: login con migración de hash y
// cambio de contraseña.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher *hash.Hasher
	jwtCfg JWTConfig
	log    *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, hasher *hash.Hasher, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, jwtCfg: jwtCfg, log: log}
}

// Login verifica email/password y emite un JWT. Email inexistente y contraseña
// incorrecta producen exactamente el mismo ErrInvalidCredentials: la respuesta
// no debe revelar si la cuenta existe.
//
// Si el hash almacenado fue producido con parámetros de costo antiguos, se
// re-hashea con los actuales y se persiste de forma oportunista; un fallo al
// persistir el nuevo hash se registra pero no aborta el login (el hash viejo
// sigue siendo válido y se reintentará en el próximo login).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmailWithPassword(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	res, err := uc.hasher.VerifyAndRehash(user.PasswordHash, in.Password)
	if err != nil {
		// Hash almacenado malformado: se trata como credenciales inválidas de
		// cara al cliente, pero queda registrado para diagnóstico.
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("hash almacenado ilegible")
		return nil, domain.ErrInvalidCredentials
	}
	if !res.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	if res.NeedsRehash && res.NewHash != "" {
		if err := uc.users.UpdatePassword(ctx, user.ID, res.NewHash); err != nil {
			uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo persistir el rehash de contraseña")
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		User:        dto.AuthUser{ID: user.ID, Email: user.Email, Role: user.Role},
	}, nil
}

// ChangePassword cambia la contraseña del usuario autenticado. La nueva
// contraseña se hashea siempre con los parámetros actuales, así que no hay
// chequeo de rehash. No se emite token nuevo: el existente sigue vigente hasta
// su expiración natural.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.users.GetByIDWithPassword(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	currentOK, err := uc.hasher.Verify(user.PasswordHash, in.CurrentPassword)
	if err != nil {
		return err
	}
	if !currentOK {
		return domain.ErrIncorrectPassword
	}

	sameAsCurrent, err := uc.hasher.Verify(user.PasswordHash, in.NewPassword)
	if err != nil {
		return err
	}
	if sameAsCurrent {
		return domain.ErrSamePassword
	}

	newHash, err := uc.hasher.Hash(in.NewPassword)
	if err != nil {
		return err
	}
	return uc.users.UpdatePassword(ctx, userID, newHash)
}
