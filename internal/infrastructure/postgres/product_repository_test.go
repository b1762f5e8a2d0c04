package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

var productCols = []string{"id", "name", "description", "stock", "price", "category_id", "image", "tags", "created_at", "updated_at"}

func TestProductRepo_Create_OK_y_Duplicado(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewProductRepository(mock)
	ctx := context.Background()

	p := &entity.Product{
		ID:          "01HX4Y0000000000000000PROD",
		Name:        "Teclado mecánico",
		Description: "Switches rojos",
		Stock:       5,
		Price:       1000,
		CategoryID:  "01HX4Y0000000000000000CATG",
		Tags:        []string{"01HX4Y00000000000000000TAG"},
	}
	insertSQL := regexp.QuoteMeta("INSERT INTO products (id, name, stock, price, category_id, description, tags) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at, updated_at")

	now := time.Now()
	mock.ExpectQuery(insertSQL).
		WithArgs(p.ID, p.Name, p.Stock, p.Price, p.CategoryID, p.Description, p.Tags).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	require.NoError(t, r.Create(ctx, p))
	assert.Equal(t, now, p.CreatedAt)

	// Violación de unicidad sobre name → ErrDuplicate
	mock.ExpectQuery(insertSQL).
		WithArgs(p.ID, p.Name, p.Stock, p.Price, p.CategoryID, p.Description, p.Tags).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, r.Create(ctx, p), domain.ErrDuplicate)

	// category_id inexistente → ErrInvalidInput
	mock.ExpectQuery(insertSQL).
		WithArgs(p.ID, p.Name, p.Stock, p.Price, p.CategoryID, p.Description, p.Tags).
		WillReturnError(&pgconn.PgError{Code: "23503"})
	assert.ErrorIs(t, r.Create(ctx, p), domain.ErrInvalidInput)

	require.NoError(t, mock.ExpectationsWereMet())
}

// El precio es int64: valores por encima de 2^53 deben ir y volver exactos.
func TestProductRepo_GetByID_PrecioGrandeSinTruncar(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewProductRepository(mock)

	const bigPrice = int64(9007199254740993) // 2^53 + 1
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + productColumns + " FROM products WHERE id = $1")).
		WithArgs("01HX").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow("01HX", "Servidor", "", 5, bigPrice, "01CAT", "", []string{}, now, now))

	p, err := r.GetByID(context.Background(), "01HX")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, bigPrice, p.Price)
	assert.Equal(t, 5, p.Stock)
}

func TestProductRepo_GetByID_NoExiste_RetornaNil(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewProductRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + productColumns + " FROM products WHERE id = $1")).
		WithArgs("01NO").
		WillReturnError(pgx.ErrNoRows)

	p, err := r.GetByID(context.Background(), "01NO")
	require.NoError(t, err, "la ausencia de fila no es un error del repositorio")
	assert.Nil(t, p)
}

func TestProductRepo_Update_PatchParcial(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewProductRepository(mock)

	name := "Nuevo nombre"
	stock := 9
	patch := entity.ProductPatch{Name: &name, Stock: &stock}

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET name = $2, stock = $3, updated_at = now() WHERE id = $1 RETURNING "+productColumns)).
		WithArgs("01HX", name, stock).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow("01HX", name, "", stock, int64(1000), "01CAT", "", []string{}, now, now))

	p, err := r.Update(context.Background(), "01HX", patch)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, name, p.Name)
	assert.Equal(t, stock, p.Stock)
}

// Un patch sin campos no debe emitir UPDATE: se responde con la fila actual.
func TestProductRepo_Update_PatchVacio_SoloLee(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewProductRepository(mock)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + productColumns + " FROM products WHERE id = $1")).
		WithArgs("01HX").
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow("01HX", "Igual", "", 5, int64(1000), "01CAT", "", []string{}, now, now))

	p, err := r.Update(context.Background(), "01HX", entity.ProductPatch{})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Igual", p.Name)
	require.NoError(t, mock.ExpectationsWereMet(), "no debe ejecutarse ningún UPDATE")
}

func TestProductRepo_Delete(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewProductRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs("01HX").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	ok, err := r.Delete(context.Background(), "01HX")
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs("01NO").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	ok, err = r.Delete(context.Background(), "01NO")
	require.NoError(t, err)
	assert.False(t, ok, "borrar un id inexistente retorna false, no error")
}

func TestProductRepo_List_FiltrosYTotalPorVentana(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewProductRepository(mock)

	listSQL := regexp.QuoteMeta("SELECT " + productColumns + ", COUNT(*) OVER() AS total_count FROM products" +
		" WHERE category_id = $1 AND tags @> ARRAY[$2] ORDER BY created_at DESC LIMIT $3 OFFSET $4")

	now := time.Now()
	rows := pgxmock.NewRows(append(productCols, "total_count"))
	for i := 0; i < 10; i++ {
		rows.AddRow("01HX", "P", "", 1, int64(100), "01CAT", "", []string{"01TAG"}, now, now, 25)
	}
	mock.ExpectQuery(listSQL).
		WithArgs("01CAT", "01TAG", 10, 0).
		WillReturnRows(rows)

	page, err := r.List(context.Background(),
		repository.Window{Page: 1, Limit: 10},
		repository.ProductFilter{CategoryID: "01CAT", Tag: "01TAG"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages, "ceil(25/10) = 3")
}

// Cero coincidencias es un resultado del filtrado, no un fallo.
func TestProductRepo_List_SinCoincidencias_PaginaVacia(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	r := NewProductRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+productColumns+", COUNT(*) OVER() AS total_count FROM products"+
		" WHERE category_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("01NADA", 20, 0).
		WillReturnRows(pgxmock.NewRows(append(productCols, "total_count")))

	page, err := r.List(context.Background(),
		repository.Window{Page: 1, Limit: 20},
		repository.ProductFilter{CategoryID: "01NADA"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
}

func TestTxRunner_CommitYRollback(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	runner := NewTxRunner(mock)
	ctx := context.Background()

	// Commit cuando fn retorna nil
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs("01HX").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	err := runner.WithTx(ctx, func(q Querier) error {
		_, err := NewProductRepository(q).Delete(ctx, "01HX")
		return err
	})
	require.NoError(t, err)

	// Rollback cuando fn falla
	mock.ExpectBegin()
	mock.ExpectRollback()
	err = runner.WithTx(ctx, func(q Querier) error {
		return domain.ErrInvalidInput
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, mock.ExpectationsWereMet())
}
