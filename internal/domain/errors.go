package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP son la
// única capa que los traduce a códigos de estado; nunca se recuperan
// inspeccionando el texto del mensaje.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	// ErrInvalidCredentials cubre tanto email inexistente como contraseña
	// incorrecta: el login no debe revelar cuál de los dos falló.
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrIncorrectPassword  = errors.New("la contraseña actual es incorrecta")
	ErrSamePassword       = errors.New("la nueva contraseña no puede ser igual a la actual")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
