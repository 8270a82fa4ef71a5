package inventory

import (
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// StockStatus banda de severidad del stock actual.
type StockStatus string

const (
	StatusHealthy    StockStatus = "healthy"
	StatusLow        StockStatus = "low"
	StatusCritical   StockStatus = "critical"
	StatusOutOfStock StockStatus = "out_of_stock"
)

// Classify clasifica el stock según los umbrales configurados.
//
//	OutOfStock  stock == 0
//	Critical    0 < stock <= critical
//	Low         critical < stock <= low
//	Healthy     en otro caso
func Classify(stock, low, critical decimal.Decimal) StockStatus {
	switch {
	case stock.IsZero():
		return StatusOutOfStock
	case stock.LessThanOrEqual(critical):
		return StatusCritical
	case stock.LessThanOrEqual(low):
		return StatusLow
	default:
		return StatusHealthy
	}
}

// ValidateThresholds exige 0 <= critical <= low.
func ValidateThresholds(low, critical decimal.Decimal) error {
	if low.IsNegative() || critical.IsNegative() || critical.GreaterThan(low) {
		return domain.ErrInvalidThresholds
	}
	return nil
}
