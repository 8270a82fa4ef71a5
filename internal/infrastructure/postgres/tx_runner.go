package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool          *pgxpool.Pool
	lockTimeoutMs int
}

// NewTxRunner construye el runner con el pool. lockTimeoutMs <= 0 deja el valor del servidor.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMs int) *TxRunner {
	return &TxRunner{pool: pool, lockTimeoutMs: lockTimeoutMs}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un bloqueo que no se obtiene dentro de lock_timeout termina en ErrConcurrencyConflict.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	entryRepo repository.LedgerEntryRepository,
	outboxRepo repository.OutboxRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return classify("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeoutMs > 0 {
		// SET no acepta parámetros; el valor es un entero de configuración.
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = %d", r.lockTimeoutMs)); err != nil {
			return classify("set lock_timeout", err)
		}
	}

	if err := fn(NewStockRepository(tx), NewLedgerEntryRepository(tx), NewOutboxRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return classify("commit transaction", err)
	}
	return nil
}
