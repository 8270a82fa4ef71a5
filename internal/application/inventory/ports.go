package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado (Rollback); si no, se confirma todo junto.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		entryRepo repository.LedgerEntryRepository,
		outboxRepo repository.OutboxRepository,
	) error) error
}
