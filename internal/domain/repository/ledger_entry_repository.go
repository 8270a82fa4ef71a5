package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Campos de ordenamiento del historial.
const (
	SortByTimestamp = "timestamp"
	SortByQuantity  = "quantity"
	SortByProduct   = "product_id"
	SortByCause     = "cause"
)

// LedgerFilter filtros conjuntivos, orden y paginación (offset) del historial.
type LedgerFilter struct {
	ProductID string
	From      *time.Time // inclusivo
	To        *time.Time // inclusivo
	Causes    []string
	Reference string
	SortField string
	SortDesc  bool
	Limit     int
	Offset    int

	// ReversesEntryID filtra las anulaciones de un movimiento.
	ReversesEntryID string
}

// LedgerEntryRepository define el puerto de persistencia del libro de stock.
// Solo inserción: no existen métodos de actualización ni borrado.
type LedgerEntryRepository interface {
	Append(ctx context.Context, entry *entity.LedgerEntry) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	// Query devuelve la página pedida y el total de coincidencias.
	Query(ctx context.Context, filter LedgerFilter) ([]*entity.LedgerEntry, int, error)
	// ListByProduct devuelve todos los movimientos del producto en orden cronológico.
	ListByProduct(ctx context.Context, productID string) ([]*entity.LedgerEntry, error)
}
