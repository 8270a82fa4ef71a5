package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	inv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Options parámetros de ejecución de los ajustes.
type Options struct {
	MaxAttempts   int           // intentos ante conflicto de concurrencia (>= 1)
	RetryBackoff  time.Duration // espera base entre intentos (lineal)
	MaxBatchItems int           // 0 = sin límite
}

// DefaultOptions valores usados cuando no se configura nada.
func DefaultOptions() Options {
	return Options{MaxAttempts: 3, RetryBackoff: 25 * time.Millisecond, MaxBatchItems: 500}
}

// AdjustStockUseCase aplica ajustes individuales y en lote sobre el libro de stock.
// Valida todos los ítems antes de aplicar cualquiera; dentro de la transacción bloquea
// los productos (SELECT FOR UPDATE) en orden de productID y hace Commit o Rollback completo.
type AdjustStockUseCase struct {
	txRunner   TxRunner
	entryRepo  repository.LedgerEntryRepository
	thresholds *ThresholdResolver
	log        *logger.Logger
	opts       Options
	now        func() time.Time
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	entryRepo repository.LedgerEntryRepository,
	thresholds *ThresholdResolver,
	log *logger.Logger,
	opts Options,
) *AdjustStockUseCase {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustStockUseCase{
		txRunner:   txRunner,
		entryRepo:  entryRepo,
		thresholds: thresholds,
		log:        log.Component("adjust_stock"),
		opts:       opts,
		now:        ledgerNow,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *AdjustStockUseCase) WithClock(now func() time.Time) *AdjustStockUseCase {
	uc.now = func() time.Time { return normalizeTime(now()) }
	return uc
}

// Apply registra un ajuste individual. Devuelve el movimiento creado o el error de validación del ítem.
func (uc *AdjustStockUseCase) Apply(ctx context.Context, in AdjustmentInput) (*entity.LedgerEntry, error) {
	actorID := strings.TrimSpace(in.ActorID)
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor requerido", domain.ErrInvalidInput)
	}
	entries, err := uc.execute(ctx, []adjustmentRequest{requestFromInput(in)}, actorID, "", nil)
	if err != nil {
		var bve *domain.BatchValidationError
		if errors.As(err, &bve) && len(bve.Failures) == 1 {
			return nil, bve.Failures[0].Err
		}
		return nil, err
	}
	return entries[0], nil
}

// ApplyBatch aplica un lote completo o nada. Si algún ítem es inválido devuelve
// *domain.BatchValidationError con todos los ítems fallidos y no escribe nada.
func (uc *AdjustStockUseCase) ApplyBatch(ctx context.Context, in BatchInput) (*BatchResult, error) {
	actorID := strings.TrimSpace(in.ActorID)
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el lote está vacío", domain.ErrInvalidInput)
	}
	if uc.opts.MaxBatchItems > 0 && len(in.Items) > uc.opts.MaxBatchItems {
		return nil, fmt.Errorf("%w: el lote supera %d ítems", domain.ErrInvalidInput, uc.opts.MaxBatchItems)
	}
	batchID := uuid.New().String()
	entries, err := uc.execute(ctx, requestsFromBatch(in), actorID, batchID, nil)
	if err != nil {
		return nil, err
	}
	return &BatchResult{BatchID: batchID, Entries: entries}, nil
}

// Reverse anula un movimiento con un ajuste compensatorio de polaridad opuesta
// cuya referencia es el ID del movimiento original. Un movimiento se anula una sola vez.
func (uc *AdjustStockUseCase) Reverse(ctx context.Context, in ReverseInput) (*entity.LedgerEntry, error) {
	actorID := strings.TrimSpace(in.ActorID)
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor requerido", domain.ErrInvalidInput)
	}
	entryID := strings.TrimSpace(in.EntryID)
	original, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.ErrEntryNotFound
	}
	cause := inv.ReversalCause(inv.Polarity(original.Polarity))
	req := adjustmentRequest{
		ProductID: original.ProductID,
		Cause:     cause.Code(),
		Quantity:  original.Quantity(),
		Reason:    normalizeText(in.Reason),
		Reference: original.ID,
		reverses:  original.ID,
	}
	guard := func(ctx context.Context, entryRepo repository.LedgerEntryRepository) error {
		_, n, err := entryRepo.Query(ctx, repository.LedgerFilter{
			ProductID:       original.ProductID,
			ReversesEntryID: original.ID,
			Limit:           1,
		})
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyReversed, original.ID)
		}
		return nil
	}
	entries, err := uc.execute(ctx, []adjustmentRequest{req}, actorID, "", guard)
	if err != nil {
		var bve *domain.BatchValidationError
		if errors.As(err, &bve) && len(bve.Failures) == 1 {
			return nil, bve.Failures[0].Err
		}
		return nil, err
	}
	return entries[0], nil
}

// execute resuelve umbrales, y dentro de la transacción bloquea, valida y escribe.
// Reintenta la transacción completa ante ErrConcurrencyConflict.
func (uc *AdjustStockUseCase) execute(
	ctx context.Context,
	reqs []adjustmentRequest,
	actorID, batchID string,
	guard func(context.Context, repository.LedgerEntryRepository) error,
) ([]*entity.LedgerEntry, error) {
	alerts, err := uc.thresholds.ResolveMany(ctx, uniqueProductIDs(reqs))
	if err != nil {
		return nil, err
	}

	var created []*entity.LedgerEntry
	err = uc.withRetry(ctx, func() error {
		created = nil
		return uc.txRunner.Run(ctx, func(
			stockRepo repository.StockRepository,
			entryRepo repository.LedgerEntryRepository,
			outboxRepo repository.OutboxRepository,
		) error {
			records, order, err := lockProducts(ctx, stockRepo, reqs)
			if err != nil {
				return err
			}
			if guard != nil {
				if err := guard(ctx, entryRepo); err != nil {
					return err
				}
			}
			p, failures := buildPlan(records, order, reqs)
			if len(failures) > 0 {
				return &domain.BatchValidationError{Failures: failures}
			}
			entries, err := commitPlan(ctx, stockRepo, entryRepo, outboxRepo, p, commitMeta{
				actorID: actorID,
				batchID: batchID,
				now:     uc.now(),
				alerts:  alerts,
			})
			if err != nil {
				return err
			}
			created = entries
			return nil
		})
	})
	if err != nil {
		if domain.IsValidation(err) || errors.Is(err, domain.ErrBatchValidationFailed) {
			uc.log.Debug().Err(err).Str("actor_id", actorID).Int("items", len(reqs)).Msg("ajuste rechazado")
		} else {
			uc.log.Error().Err(err).Str("actor_id", actorID).Int("items", len(reqs)).Msg("ajuste fallido")
		}
		return nil, err
	}

	ev := uc.log.Info().Str("actor_id", actorID).Int("entries", len(created))
	if batchID != "" {
		ev = ev.Str("batch_id", batchID)
	}
	if len(created) == 1 {
		ev = ev.Str("entry_id", created[0].ID).Str("product_id", created[0].ProductID).
			Str("cause", created[0].Cause).Str("delta", created[0].Delta.String())
	}
	ev.Msg("ajuste registrado")
	return created, nil
}

// withRetry repite fn mientras falle por conflicto de concurrencia, con espera lineal.
// Los errores de almacenamiento y de validación no se reintentan.
func (uc *AdjustStockUseCase) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= uc.opts.MaxAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		if attempt == uc.opts.MaxAttempts {
			break
		}
		uc.log.Warn().Err(err).Int("attempt", attempt).Msg("conflicto de concurrencia, reintentando")
		if uc.opts.RetryBackoff > 0 {
			timer := time.NewTimer(uc.opts.RetryBackoff * time.Duration(attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	return fmt.Errorf("%w: %d intentos agotados", err, uc.opts.MaxAttempts)
}

// ledgerNow instante UTC con precisión de microsegundos (la de timestamptz).
func ledgerNow() time.Time {
	return normalizeTime(time.Now())
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
