package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/pkg/hash"
	pkgjwt "github.com/jhoicas/catalog-api/pkg/jwt"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// fakeUserRepo stub en memoria del puerto UserRepository para los tests de auth.
type fakeUserRepo struct {
	users             map[string]*entity.User // por id
	updatePasswordErr error
	passwordUpdates   map[string]string // id -> último hash persistido
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	m := make(map[string]*entity.User)
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m, passwordUpdates: make(map[string]string)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	pub := *u
	pub.PasswordHash = ""
	return &pub, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			pub := *u
			pub.PasswordHash = ""
			return &pub, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByIDWithPassword(ctx context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmailWithPassword(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if f.updatePasswordErr != nil {
		return f.updatePasswordErr
	}
	u, ok := f.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.passwordUpdates[id] = passwordHash
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := f.users[id]
	delete(f.users, id)
	return ok, nil
}

func (f *fakeUserRepo) List(ctx context.Context, w repository.Window, fl repository.UserFilter) (*repository.UserPage, error) {
	return &repository.UserPage{Items: []*entity.User{}}, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

// Parámetros reducidos para acelerar los tests.
var (
	testHashParams = hash.Params{Memory: 8 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	oldHashParams  = hash.Params{Memory: 4 * 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	testJWT        = JWTConfig{Secret: "test-secret", TTL: time.Hour, Issuer: "catalog-api-test"}
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func mustHash(t *testing.T, h *hash.Hasher, password string) string {
	t.Helper()
	enc, err := h.Hash(password)
	require.NoError(t, err)
	return enc
}

func TestLogin_OK_EmiteTokenConIdentidad(t *testing.T) {
	hasher := hash.New(testHashParams)
	repo := newFakeUserRepo(&entity.User{
		ID:           "01USER",
		Email:        "ana@example.com",
		Role:         entity.RoleManager,
		PasswordHash: mustHash(t, hasher, "secreto-123"),
	})
	uc := NewAuthUseCase(repo, hasher, testJWT, testLogger())

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto-123"})
	require.NoError(t, err)
	assert.Equal(t, "01USER", out.User.ID)
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, entity.RoleManager, out.User.Role)

	id, err := pkgjwt.Parse(testJWT.Secret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "01USER", id.ID)
	assert.Equal(t, entity.RoleManager, id.Role)
}

// Email inexistente y contraseña incorrecta deben producir el MISMO error:
// la respuesta no puede revelar si la cuenta existe.
func TestLogin_SinFiltracionDeExistencia(t *testing.T) {
	hasher := hash.New(testHashParams)
	repo := newFakeUserRepo(&entity.User{
		ID:           "01USER",
		Email:        "ana@example.com",
		Role:         entity.RoleUser,
		PasswordHash: mustHash(t, hasher, "secreto-123"),
	})
	uc := NewAuthUseCase(repo, hasher, testJWT, testLogger())
	ctx := context.Background()

	_, errWrongPass := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	_, errNoUser := uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "cualquiera"})

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass, errNoUser)
}

// Un hash con parámetros antiguos se migra en el login exitoso.
func TestLogin_RehashOportunista(t *testing.T) {
	oldHasher := hash.New(oldHashParams)
	repo := newFakeUserRepo(&entity.User{
		ID:           "01USER",
		Email:        "ana@example.com",
		Role:         entity.RoleUser,
		PasswordHash: mustHash(t, oldHasher, "secreto-123"),
	})
	currentHasher := hash.New(testHashParams)
	uc := NewAuthUseCase(repo, currentHasher, testJWT, testLogger())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto-123"})
	require.NoError(t, err)

	newHash, ok := repo.passwordUpdates["01USER"]
	require.True(t, ok, "el login debe persistir el hash migrado")
	assert.False(t, currentHasher.NeedsRehash(newHash))

	valid, err := currentHasher.Verify(newHash, "secreto-123")
	require.NoError(t, err)
	assert.True(t, valid)
}

// El fallo al persistir el rehash se registra pero no tumba el login.
func TestLogin_FalloDePersistenciaDelRehash_NoFallaElLogin(t *testing.T) {
	oldHasher := hash.New(oldHashParams)
	repo := newFakeUserRepo(&entity.User{
		ID:           "01USER",
		Email:        "ana@example.com",
		Role:         entity.RoleUser,
		PasswordHash: mustHash(t, oldHasher, "secreto-123"),
	})
	repo.updatePasswordErr = errors.New("conexión perdida")
	uc := NewAuthUseCase(repo, hash.New(testHashParams), testJWT, testLogger())

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "secreto-123"})
	require.NoError(t, err, "la sesión se emite aunque el rehash no se haya podido guardar")
	assert.NotEmpty(t, out.AccessToken)
}

func TestChangePassword_Flujos(t *testing.T) {
	hasher := hash.New(testHashParams)
	repo := newFakeUserRepo(&entity.User{
		ID:           "01USER",
		Email:        "ana@example.com",
		Role:         entity.RoleUser,
		PasswordHash: mustHash(t, hasher, "actual-123"),
	})
	uc := NewAuthUseCase(repo, hasher, testJWT, testLogger())
	ctx := context.Background()

	// Usuario inexistente
	err := uc.ChangePassword(ctx, "01NADIE", dto.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "y"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Contraseña actual incorrecta
	err = uc.ChangePassword(ctx, "01USER", dto.ChangePasswordRequest{CurrentPassword: "incorrecta", NewPassword: "nueva-456"})
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)

	// Nueva igual a la actual
	err = uc.ChangePassword(ctx, "01USER", dto.ChangePasswordRequest{CurrentPassword: "actual-123", NewPassword: "actual-123"})
	assert.ErrorIs(t, err, domain.ErrSamePassword)

	// Cambio correcto: la vieja deja de verificar y la nueva sí lo hace
	err = uc.ChangePassword(ctx, "01USER", dto.ChangePasswordRequest{CurrentPassword: "actual-123", NewPassword: "nueva-456"})
	require.NoError(t, err)

	stored := repo.users["01USER"].PasswordHash
	oldOK, err := hasher.Verify(stored, "actual-123")
	require.NoError(t, err)
	assert.False(t, oldOK)
	newOK, err := hasher.Verify(stored, "nueva-456")
	require.NoError(t, err)
	assert.True(t, newOK)
}
