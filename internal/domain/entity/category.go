package entity

import "time"

// Category representa una categoría de productos; puede colgar de otra (ParentID).
type Category struct {
	ID          string
	Name        string
	Description string
	ParentID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryPatch actualización parcial: solo los campos no-nil se escriben.
type CategoryPatch struct {
	Name        *string
	Description *string
	ParentID    *string
}
