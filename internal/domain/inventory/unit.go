package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Unit es la unidad de medida de un producto (enumeración cerrada).
type Unit string

const (
	UnitPiece  Unit = "piece"
	UnitKg     Unit = "kg"
	UnitGram   Unit = "gram"
	UnitLiter  Unit = "liter"
	UnitMl     Unit = "ml"
	UnitPacket Unit = "packet"
	UnitBox    Unit = "box"
	UnitDozen  Unit = "dozen"
)

var units = []Unit{UnitPiece, UnitKg, UnitGram, UnitLiter, UnitMl, UnitPacket, UnitBox, UnitDozen}

var (
	integerStep    = decimal.NewFromInt(1)
	fractionalStep = decimal.New(1, -2) // 0.01
)

// Units devuelve todas las unidades soportadas.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// ParseUnit convierte un código en Unit. Ignora mayúsculas y espacios.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range units {
		if u == known {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownUnit, s)
}

// Fractional indica si la unidad admite cantidades no enteras.
func (u Unit) Fractional() bool {
	switch u {
	case UnitKg, UnitGram, UnitLiter, UnitMl:
		return true
	}
	return false
}

// DefaultMinQuantity paso mínimo por defecto: 1 para unidades enteras, 0.01 para fraccionarias.
func DefaultMinQuantity(u Unit) decimal.Decimal {
	if u.Fractional() {
		return fractionalStep
	}
	return integerStep
}
