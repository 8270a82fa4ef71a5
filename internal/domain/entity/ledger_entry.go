package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry es un registro inmutable del libro de stock (un cambio de cantidad).
// Las correcciones son nuevos movimientos compensatorios, nunca ediciones.
type LedgerEntry struct {
	ID            string // UUIDv7: ordenable por tiempo + secuencia
	ProductID     string
	BatchID       string // vacío si no pertenece a un lote
	Timestamp     time.Time
	Cause         string
	Polarity      string // congelada al escribir
	Delta         decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	MinQuantity   decimal.Decimal // paso vigente al escribir
	Unit          string
	Reason        string
	Reference     string
	ActorID       string

	// ReversesEntryID movimiento que este compensa. Solo lo fija una anulación.
	ReversesEntryID string
}

// Quantity magnitud del movimiento.
func (e *LedgerEntry) Quantity() decimal.Decimal {
	return e.Delta.Abs()
}

// CheckInvariant verifica NewStock = PreviousStock + Delta, NewStock >= 0 y Delta != 0.
func (e *LedgerEntry) CheckInvariant() error {
	if e.Delta.IsZero() {
		return fmt.Errorf("movimiento %s: delta cero", e.ID)
	}
	if !e.PreviousStock.Add(e.Delta).Equal(e.NewStock) {
		return fmt.Errorf("movimiento %s: %s + %s != %s", e.ID, e.PreviousStock, e.Delta, e.NewStock)
	}
	if e.NewStock.IsNegative() {
		return fmt.Errorf("movimiento %s: stock resultante negativo %s", e.ID, e.NewStock)
	}
	return nil
}
