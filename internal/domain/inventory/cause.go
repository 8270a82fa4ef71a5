package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Polarity indica si una causa suma o resta stock.
type Polarity string

const (
	PolarityAddition Polarity = "addition"
	PolarityRemoval  Polarity = "removal"
)

// Sign aplica la polaridad a una magnitud positiva.
func (p Polarity) Sign(quantity decimal.Decimal) decimal.Decimal {
	if p == PolarityRemoval {
		return quantity.Neg()
	}
	return quantity
}

// AdjustmentCause es una causa de ajuste del catálogo cerrado.
// Solo existen los valores declarados en este paquete; no se construye desde fuera.
type AdjustmentCause struct {
	code              string
	polarity          Polarity
	requiresReference bool
	label             string
}

func (c AdjustmentCause) Code() string            { return c.code }
func (c AdjustmentCause) Polarity() Polarity      { return c.polarity }
func (c AdjustmentCause) RequiresReference() bool { return c.requiresReference }
func (c AdjustmentCause) Label() string           { return c.label }
func (c AdjustmentCause) IsZero() bool            { return c.code == "" }
func (c AdjustmentCause) String() string          { return c.code }

// Catálogo de causas.
var (
	CausePurchase           = AdjustmentCause{"purchase", PolarityAddition, true, "Compra a proveedor"}
	CauseCustomerReturn     = AdjustmentCause{"customer_return", PolarityAddition, true, "Devolución de cliente"}
	CauseInitial            = AdjustmentCause{"initial", PolarityAddition, false, "Stock inicial"}
	CauseAdjustmentPositive = AdjustmentCause{"adjustment_positive", PolarityAddition, false, "Ajuste positivo"}
	CauseSale               = AdjustmentCause{"sale", PolarityRemoval, false, "Venta"}
	CauseDamaged            = AdjustmentCause{"damaged", PolarityRemoval, false, "Producto dañado"}
	CauseTheft              = AdjustmentCause{"theft", PolarityRemoval, false, "Robo o pérdida"}
	CauseExpired            = AdjustmentCause{"expired", PolarityRemoval, false, "Producto vencido"}
	CauseAdjustmentNegative = AdjustmentCause{"adjustment_negative", PolarityRemoval, false, "Ajuste negativo"}
)

var causes = []AdjustmentCause{
	CausePurchase, CauseCustomerReturn, CauseInitial, CauseAdjustmentPositive,
	CauseSale, CauseDamaged, CauseTheft, CauseExpired, CauseAdjustmentNegative,
}

// Causes devuelve el catálogo completo en orden estable.
func Causes() []AdjustmentCause {
	out := make([]AdjustmentCause, len(causes))
	copy(out, causes)
	return out
}

// ParseCause busca una causa por código.
func ParseCause(code string) (AdjustmentCause, error) {
	c := strings.ToLower(strings.TrimSpace(code))
	for _, known := range causes {
		if known.code == c {
			return known, nil
		}
	}
	return AdjustmentCause{}, fmt.Errorf("%w: %q", domain.ErrUnknownCause, code)
}

// ReversalCause devuelve la causa de ajuste que compensa un movimiento de la polaridad dada.
func ReversalCause(original Polarity) AdjustmentCause {
	if original == PolarityAddition {
		return CauseAdjustmentNegative
	}
	return CauseAdjustmentPositive
}
