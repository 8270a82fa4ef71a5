package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	inv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
	"github.com/shopspring/decimal"
)

const initialStockReason = "stock inicial"

// ProductStockUseCase alta y consulta de los registros de stock por producto.
// El catálogo de productos vive en otro sistema; aquí solo se guarda unidad, paso y stock.
type ProductStockUseCase struct {
	txRunner   TxRunner
	stockRepo  repository.StockRepository
	thresholds *ThresholdResolver
	log        *logger.Logger
	now        func() time.Time
}

// NewProductStockUseCase construye el caso de uso.
func NewProductStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	thresholds *ThresholdResolver,
	log *logger.Logger,
) *ProductStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductStockUseCase{
		txRunner:   txRunner,
		stockRepo:  stockRepo,
		thresholds: thresholds,
		log:        log.Component("product_stock"),
		now:        ledgerNow,
	}
}

// resolvePolicy valida la unidad y el paso; sin paso explícito usa el de la unidad.
func resolvePolicy(unit string, minQuantity *decimal.Decimal) (inv.Unit, decimal.Decimal, error) {
	u, err := inv.ParseUnit(unit)
	if err != nil {
		return "", decimal.Zero, err
	}
	step := inv.DefaultMinQuantity(u)
	if minQuantity != nil {
		step = *minQuantity
	}
	if err := inv.ValidateStep(step); err != nil {
		return "", decimal.Zero, err
	}
	return u, step, nil
}

// Register crea el registro con stock 0 y, si InitialStock > 0, un movimiento "initial"
// en la misma transacción.
func (uc *ProductStockUseCase) Register(ctx context.Context, in RegisterProductInput) (*entity.StockRecord, error) {
	productID := strings.TrimSpace(in.ProductID)
	actorID := strings.TrimSpace(in.ActorID)
	if productID == "" || actorID == "" {
		return nil, domain.ErrInvalidInput
	}
	unit, step, err := resolvePolicy(in.Unit, in.MinQuantity)
	if err != nil {
		return nil, err
	}
	if in.InitialStock.IsNegative() {
		return nil, fmt.Errorf("%w: stock inicial negativo", domain.ErrInvalidInput)
	}

	var alerts map[string]entity.AlertSettings
	if in.InitialStock.IsPositive() {
		if alerts, err = uc.thresholds.ResolveMany(ctx, []string{productID}); err != nil {
			return nil, err
		}
	}

	now := uc.now()
	var created *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		entryRepo repository.LedgerEntryRepository,
		outboxRepo repository.OutboxRepository,
	) error {
		existing, err := stockRepo.Get(ctx, productID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: producto %s ya registrado", domain.ErrDuplicate, productID)
		}
		rec := &entity.StockRecord{
			ProductID:   productID,
			Unit:        string(unit),
			MinQuantity: step,
			Stock:       decimal.Zero,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := stockRepo.Create(ctx, rec); err != nil {
			return err
		}
		created = rec
		if !in.InitialStock.IsPositive() {
			return nil
		}

		reqs := []adjustmentRequest{{
			ProductID: productID,
			Cause:     inv.CauseInitial.Code(),
			Quantity:  in.InitialStock,
			Reason:    initialStockReason,
		}}
		records, order, err := lockProducts(ctx, stockRepo, reqs)
		if err != nil {
			return err
		}
		p, failures := buildPlan(records, order, reqs)
		if len(failures) > 0 {
			return failures[0].Err
		}
		if _, err := commitPlan(ctx, stockRepo, entryRepo, outboxRepo, p, commitMeta{
			actorID: actorID,
			now:     now,
			alerts:  alerts,
		}); err != nil {
			return err
		}
		created.Stock = p.finals[productID]
		created.Version = records[productID].Version + 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Str("unit", created.Unit).
		Str("stock", created.Stock.String()).Str("actor_id", actorID).Msg("producto registrado")
	return created, nil
}

// Get devuelve el registro de stock o ErrProductNotFound.
func (uc *ProductStockUseCase) Get(ctx context.Context, productID string) (*entity.StockRecord, error) {
	rec, err := uc.stockRepo.Get(ctx, strings.TrimSpace(productID))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrProductNotFound
	}
	return rec, nil
}

// List devuelve una página de registros ordenados por productID y el total.
func (uc *ProductStockUseCase) List(ctx context.Context, limit, offset int) ([]*entity.StockRecord, int, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return uc.stockRepo.List(ctx, limit, offset)
}

// UpdatePolicy cambia unidad y paso para los ajustes futuros. Los movimientos ya escritos
// conservan el paso con que se registraron. El stock actual debe ser múltiplo del nuevo paso.
func (uc *ProductStockUseCase) UpdatePolicy(ctx context.Context, in UpdatePolicyInput) (*entity.StockRecord, error) {
	productID := strings.TrimSpace(in.ProductID)
	unit, step, err := resolvePolicy(in.Unit, in.MinQuantity)
	if err != nil {
		return nil, err
	}
	var updated *entity.StockRecord
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		_ repository.LedgerEntryRepository,
		_ repository.OutboxRepository,
	) error {
		rec, err := stockRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrProductNotFound
		}
		if !inv.IsMultipleOf(step, rec.Stock) {
			return &domain.InvalidStepError{Step: step, Quantity: rec.Stock}
		}
		if err := stockRepo.UpdatePolicy(ctx, productID, string(unit), step); err != nil {
			return err
		}
		rec.Unit = string(unit)
		rec.MinQuantity = step
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", productID).Str("unit", updated.Unit).
		Str("min_quantity", updated.MinQuantity.String()).Msg("política de cantidad actualizada")
	return updated, nil
}
