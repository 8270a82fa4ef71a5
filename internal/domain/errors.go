package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrEntryNotFound       = errors.New("movimiento no encontrado")
	ErrUnknownCause        = errors.New("causa de ajuste desconocida")
	ErrUnknownUnit         = errors.New("unidad de medida desconocida")
	ErrInvalidThresholds   = errors.New("umbrales inválidos: se requiere 0 <= crítico <= bajo")
	ErrStorageFailure      = errors.New("fallo de almacenamiento")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia")
	ErrAlreadyReversed     = errors.New("el movimiento ya fue anulado")

	// Errores de validación corregibles por el cliente.
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidStep         = errors.New("la cantidad no es múltiplo del paso mínimo")
	ErrMissingReason       = errors.New("el motivo es obligatorio")
	ErrMissingReference    = errors.New("la causa exige una referencia externa")
	ErrInsufficientStock   = errors.New("stock insuficiente")

	ErrBatchValidationFailed = errors.New("lote rechazado: uno o más ítems inválidos")
)

// InvalidStepError indica el paso requerido para que el cliente corrija la cantidad.
type InvalidStepError struct {
	Step     decimal.Decimal
	Quantity decimal.Decimal
}

func (e *InvalidStepError) Error() string {
	return fmt.Sprintf("%s: cantidad %s, paso mínimo %s", ErrInvalidStep, e.Quantity, e.Step)
}

func (e *InvalidStepError) Unwrap() error { return ErrInvalidStep }

// InsufficientStockError indica la cantidad máxima que se podía retirar.
type InsufficientStockError struct {
	ProductID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: producto %s, disponible %s, solicitado %s",
		ErrInsufficientStock, e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ItemFailure describe un ítem inválido dentro de un lote.
type ItemFailure struct {
	Index     int
	ProductID string
	Err       error
}

// BatchValidationError agrupa todos los ítems que fallaron la validación previa.
type BatchValidationError struct {
	Failures []ItemFailure
}

func (e *BatchValidationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("[%d] %s: %v", f.Index, f.ProductID, f.Err))
	}
	return fmt.Sprintf("%s: %s", ErrBatchValidationFailed, strings.Join(parts, "; "))
}

func (e *BatchValidationError) Unwrap() error { return ErrBatchValidationFailed }

// IsValidation indica si el error es corregible por el cliente (se devuelve tal cual).
func IsValidation(err error) bool {
	return errors.Is(err, ErrNonPositiveQuantity) ||
		errors.Is(err, ErrInvalidStep) ||
		errors.Is(err, ErrMissingReason) ||
		errors.Is(err, ErrMissingReference) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrUnknownCause) ||
		errors.Is(err, ErrUnknownUnit) ||
		errors.Is(err, ErrInvalidInput)
}
