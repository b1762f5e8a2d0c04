package postgres

import (
	"context"
	"fmt"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los repositorios aceptan Querier, así que dentro del callback se pueden
// construir repos atados a la tx con los mismos constructores.
type TxRunner struct {
	pool PgxPool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool PgxPool) *TxRunner {
	return &TxRunner{pool: pool}
}

// WithTx inicia una transacción, ejecuta fn con un Querier atado a la tx y
// hace Commit si fn retorna nil o Rollback en cualquier otro caso. La conexión
// se libera siempre: el Rollback diferido es inocuo tras un Commit exitoso.
func (r *TxRunner) WithTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
