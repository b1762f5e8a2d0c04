package entity

import "time"

// Tag etiqueta asignable a productos.
type Tag struct {
	ID          string
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TagPatch actualización parcial: solo los campos no-nil se escriben.
type TagPatch struct {
	Name        *string
	Description *string
	Color       *string
}
