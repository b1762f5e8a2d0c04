package entity

import "time"

// Roles válidos para User (enumeración cerrada).
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
	RoleUser     = "user"
)

// ValidRole verifica que role pertenezca a la enumeración.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleOperator, RoleUser:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // único en el store
	PhoneNumber  int64
	Role         string // admin, manager, operator, user
	PasswordHash string // hash argon2id; nunca sale del servicio de auth
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch actualización parcial: solo los campos no-nil se escriben.
// El password llega ya hasheado desde el caso de uso.
type UserPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PhoneNumber  *int64
	Role         *string
	PasswordHash *string
}
