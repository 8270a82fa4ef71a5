package inventory

import (
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// StepTolerance es la tolerancia numérica al comparar una cantidad con un múltiplo del paso.
// Absorbe el ruido de punto flotante de los clientes (p. ej. 2.4999999999 con paso 0.01).
var StepTolerance = decimal.New(1, -5) // 0.00001

// StepScale decimales que conserva el almacenamiento (NUMERIC(20, 6)).
const StepScale = 6

// ValidateStep verifica que el paso mínimo sea positivo y representable con StepScale decimales.
func ValidateStep(minQuantity decimal.Decimal) error {
	if !minQuantity.IsPositive() {
		return fmt.Errorf("%w: el paso mínimo debe ser positivo", domain.ErrInvalidInput)
	}
	if !minQuantity.Equal(minQuantity.Truncate(StepScale)) {
		return fmt.Errorf("%w: el paso %s admite a lo sumo %d decimales", domain.ErrInvalidInput, minQuantity, StepScale)
	}
	return nil
}

// ValidateQuantity aplica la política de unidad y paso a una cantidad solicitada (magnitud positiva).
// Devuelve el múltiplo exacto n*paso más cercano cuando la cantidad cae dentro de StepTolerance.
//
//   - ErrNonPositiveQuantity si quantity <= 0.
//   - *InvalidStepError si |quantity - n*paso| > StepTolerance o n < 1.
func ValidateQuantity(minQuantity, quantity decimal.Decimal) (decimal.Decimal, error) {
	if !quantity.IsPositive() {
		return decimal.Zero, domain.ErrNonPositiveQuantity
	}
	if err := ValidateStep(minQuantity); err != nil {
		return decimal.Zero, err
	}
	n := quantity.DivRound(minQuantity, 16).Round(0)
	if n.LessThan(decimal.NewFromInt(1)) {
		return decimal.Zero, &domain.InvalidStepError{Step: minQuantity, Quantity: quantity}
	}
	exact := n.Mul(minQuantity)
	if quantity.Sub(exact).Abs().GreaterThan(StepTolerance) {
		return decimal.Zero, &domain.InvalidStepError{Step: minQuantity, Quantity: quantity}
	}
	return exact, nil
}

// IsMultipleOf indica si value (>= 0) es múltiplo del paso dentro de la tolerancia.
// Cero se considera múltiplo válido (stock agotado).
func IsMultipleOf(minQuantity, value decimal.Decimal) bool {
	if value.IsZero() {
		return true
	}
	_, err := ValidateQuantity(minQuantity, value)
	return err == nil
}
