package entity

import "time"

// Product representa un producto del catálogo.
// Price se maneja en unidades menores (int64): valores mayores a 2^53 deben
// conservarse exactos, por eso no se usa float en ninguna capa.
type Product struct {
	ID          string
	Name        string
	Description string
	Stock       int
	Price       int64
	CategoryID  string
	Image       string
	Tags        []string // ids de Tag (text[] en el store)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch actualización parcial: solo los campos no-nil se escriben.
type ProductPatch struct {
	Name        *string
	Description *string
	Stock       *int
	Price       *int64
	CategoryID  *string
	Image       *string
	Tags        *[]string
}
