package dto

import "time"

// CreateProductRequest entrada para crear un producto. Price en unidades
// menores (int64); los valores grandes se conservan exactos de extremo a extremo.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stock       int      `json:"stock"`
	Price       int64    `json:"price"`
	CategoryID  string   `json:"category_id"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
}

// UpdateProductRequest patch parcial: solo los campos presentes se aplican.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Stock       *int      `json:"stock"`
	Price       *int64    `json:"price"`
	CategoryID  *string   `json:"category_id"`
	Image       *string   `json:"image"`
	Tags        *[]string `json:"tags"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	Price       int64     `json:"price"`
	CategoryID  string    `json:"category_id"`
	Image       string    `json:"image,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResponse página de productos con metadatos de paginación.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}
