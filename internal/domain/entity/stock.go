package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord es el stock actual de un producto (un escalar por producto).
// Solo el procesador de ajustes modifica Stock; Version se incrementa en cada escritura.
type StockRecord struct {
	ProductID   string
	Unit        string
	MinQuantity decimal.Decimal // paso mínimo vigente
	Stock       decimal.Decimal // siempre >= 0
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
