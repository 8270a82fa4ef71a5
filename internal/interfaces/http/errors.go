package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// errorStatus traduce un error de dominio a status HTTP y código estable.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBatchValidationFailed):
		return fiber.StatusUnprocessableEntity, "BATCH_VALIDATION_FAILED"
	case errors.Is(err, domain.ErrInvalidStep):
		return fiber.StatusUnprocessableEntity, "INVALID_STEP"
	case errors.Is(err, domain.ErrNonPositiveQuantity):
		return fiber.StatusUnprocessableEntity, "NON_POSITIVE_QUANTITY"
	case errors.Is(err, domain.ErrMissingReason):
		return fiber.StatusUnprocessableEntity, "MISSING_REASON"
	case errors.Is(err, domain.ErrMissingReference):
		return fiber.StatusUnprocessableEntity, "MISSING_REFERENCE"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrUnknownCause):
		return fiber.StatusBadRequest, "UNKNOWN_CAUSE"
	case errors.Is(err, domain.ErrUnknownUnit):
		return fiber.StatusBadRequest, "UNKNOWN_UNIT"
	case errors.Is(err, domain.ErrInvalidThresholds):
		return fiber.StatusBadRequest, "INVALID_THRESHOLDS"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrProductNotFound):
		return fiber.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrEntryNotFound):
		return fiber.StatusNotFound, "ENTRY_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrAlreadyReversed):
		return fiber.StatusConflict, "ALREADY_REVERSED"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return fiber.StatusConflict, "CONCURRENCY_CONFLICT"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrStorageFailure):
		return fiber.StatusServiceUnavailable, "STORAGE_UNAVAILABLE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// errorBody arma el cuerpo con los datos que el cliente necesita para corregir la petición.
func errorBody(err error) (int, dto.ErrorResponse) {
	status, code := errorStatus(err)
	body := dto.ErrorResponse{Code: code, Message: err.Error()}
	if status >= fiber.StatusInternalServerError {
		body.Message = "error interno, intente más tarde"
	}

	var stepErr *domain.InvalidStepError
	if errors.As(err, &stepErr) {
		body.Step = stepErr.Step.String()
	}
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		body.Available = stockErr.Available.String()
	}
	var batchErr *domain.BatchValidationError
	if errors.As(err, &batchErr) {
		body.Message = domain.ErrBatchValidationFailed.Error()
		for _, f := range batchErr.Failures {
			_, itemBody := errorBody(f.Err)
			body.Details = append(body.Details, dto.ItemErrorDTO{
				Index:     f.Index,
				ProductID: f.ProductID,
				Code:      itemBody.Code,
				Message:   itemBody.Message,
				Available: itemBody.Available,
				Step:      itemBody.Step,
			})
		}
	}
	return status, body
}

// writeError responde el error de dominio; los errores internos se registran con el request id.
func (h *handlerBase) writeError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	if status >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Path()).Str("request_id", requestID(c)).Msg("error procesando petición")
	}
	return c.Status(status).JSON(body)
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
