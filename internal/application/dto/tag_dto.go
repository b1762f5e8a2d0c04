package dto

import "time"

// CreateTagRequest entrada para crear una etiqueta.
type CreateTagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// UpdateTagRequest patch parcial: solo los campos presentes se aplican.
type UpdateTagRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// TagResponse salida de una etiqueta.
type TagResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TagListResponse página de etiquetas con metadatos de paginación.
type TagListResponse struct {
	Items      []TagResponse `json:"items"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
}
