package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto para el registro de stock por producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve nil, nil si el producto no existe.
	Get(ctx context.Context, productID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea el registro hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, productID string) (*entity.StockRecord, error)
	Create(ctx context.Context, record *entity.StockRecord) error
	// UpdateStock escribe el nuevo stock si la versión coincide; si no, ErrConcurrencyConflict.
	UpdateStock(ctx context.Context, productID string, stock decimal.Decimal, expectedVersion int64) error
	// UpdatePolicy cambia unidad y paso mínimo hacia adelante (no revalida historia).
	UpdatePolicy(ctx context.Context, productID, unit string, minQuantity decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.StockRecord, int, error)
}
