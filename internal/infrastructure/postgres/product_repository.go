package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, name, description, stock, price, category_id, image, tags, created_at, updated_at"

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El ID viene ya generado por el caso de uso.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	fields := []Field{
		{Name: "id", Value: p.ID},
		{Name: "name", Value: p.Name},
		{Name: "stock", Value: p.Stock},
		{Name: "price", Value: p.Price},
		{Name: "category_id", Value: p.CategoryID},
	}
	if p.Description != "" {
		fields = append(fields, Field{Name: "description", Value: p.Description})
	}
	if p.Image != "" {
		fields = append(fields, Field{Name: "image", Value: p.Image})
	}
	if len(p.Tags) > 0 {
		fields = append(fields, Field{Name: "tags", Value: p.Tags})
	}
	query, params := BuildInsert("products", fields)
	query += " RETURNING created_at, updated_at"

	err := r.q.QueryRow(ctx, query, params...).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"
	p, err := r.scanOne(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByName obtiene un producto por nombre (único). Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE name = $1"
	p, err := r.scanOne(r.q.QueryRow(ctx, query, name))
	if err != nil {
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// Update aplica un patch parcial: solo los campos no-nil se escriben y
// updated_at se refresca. Un patch vacío no emite SQL y devuelve la fila
// actual sin cambios. Retorna (nil, nil) si el producto no existe.
func (r *ProductRepo) Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	var fields []Field
	if patch.Name != nil {
		fields = append(fields, Field{Name: "name", Value: *patch.Name})
	}
	if patch.Description != nil {
		fields = append(fields, Field{Name: "description", Value: *patch.Description})
	}
	if patch.Stock != nil {
		fields = append(fields, Field{Name: "stock", Value: *patch.Stock})
	}
	if patch.Price != nil {
		fields = append(fields, Field{Name: "price", Value: *patch.Price})
	}
	if patch.CategoryID != nil {
		fields = append(fields, Field{Name: "category_id", Value: *patch.CategoryID})
	}
	if patch.Image != nil {
		fields = append(fields, Field{Name: "image", Value: *patch.Image})
	}
	if patch.Tags != nil {
		fields = append(fields, Field{Name: "tags", Value: *patch.Tags})
	}

	query, params, ok := BuildUpdate("products", id, fields)
	if !ok {
		return r.GetByID(ctx, id)
	}
	query += " RETURNING " + productColumns

	p, err := r.scanOne(r.q.QueryRow(ctx, query, params...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrInvalidInput
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete elimina un producto por ID. Retorna false si no existía.
func (r *ProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List pagina productos con filtros opcionales de categoría (igualdad) y
// etiqueta (contención sobre el arreglo tags). El total se calcula con una
// función de ventana en la misma consulta; cero coincidencias es una página
// vacía, no un error.
func (r *ProductRepo) List(ctx context.Context, w repository.Window, f repository.ProductFilter) (*repository.ProductPage, error) {
	w.Normalize()

	var clauses []string
	var params []any
	if f.CategoryID != "" {
		params = append(params, f.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id = $%d", len(params)))
	}
	if f.Tag != "" {
		params = append(params, f.Tag)
		clauses = append(clauses, fmt.Sprintf("tags @> ARRAY[$%d]", len(params)))
	}

	query := "SELECT " + productColumns + ", COUNT(*) OVER() AS total_count FROM products"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(params)+1, len(params)+2)
	params = append(params, w.Limit, w.Offset())

	rows, err := r.q.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	page := &repository.ProductPage{Items: []*entity.Product{}}
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Stock, &p.Price,
			&p.CategoryID, &p.Image, &p.Tags, &p.CreatedAt, &p.UpdatedAt, &page.Total); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		page.Items = append(page.Items, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	page.TotalPages = w.TotalPages(page.Total)
	return page, nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Stock, &p.Price,
		&p.CategoryID, &p.Image, &p.Tags, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
