package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

const testActor = "00000000-0000-0000-0000-0000000000aa"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// stepClock avanza un segundo por llamada a partir de base.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(time.Second)
	return t
}

type fixture struct {
	store    *memory.Store
	adjust   *inventory.AdjustStockUseCase
	products *inventory.ProductStockUseCase
	history  *inventory.HistoryUseCase
	status   *inventory.StockStatusUseCase
	settings *inventory.AlertSettingsUseCase
	audit    *inventory.AuditUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithRunner(t, nil, inventory.Options{MaxAttempts: 3, MaxBatchItems: 50})
}

// newFixtureWithRunner permite envolver el TxRunner del store (conflictos y fallos simulados).
func newFixtureWithRunner(t *testing.T, wrap func(inventory.TxRunner) inventory.TxRunner, opts inventory.Options) *fixture {
	t.Helper()
	store := memory.NewStore()
	var runner inventory.TxRunner = store
	if wrap != nil {
		runner = wrap(store)
	}
	thresholds := inventory.NewThresholdResolver(store.AlertSettingsRepository(), d("10"), d("3"))
	log := logger.Nop()
	// Los ajustes quedan una hora después de las altas para que el orden cronológico sea determinista.
	clock := &stepClock{next: time.Now().UTC().Add(time.Hour).Truncate(time.Second)}

	return &fixture{
		store:    store,
		adjust:   inventory.NewAdjustStockUseCase(runner, store.LedgerEntryRepository(), thresholds, log, opts).WithClock(clock.Now),
		products: inventory.NewProductStockUseCase(store, store.StockRepository(), thresholds, log),
		history:  inventory.NewHistoryUseCase(store.LedgerEntryRepository()),
		status:   inventory.NewStockStatusUseCase(store.StockRepository(), thresholds),
		settings: inventory.NewAlertSettingsUseCase(store.AlertSettingsRepository(), store.StockRepository(), thresholds, log),
		audit:    inventory.NewAuditUseCase(store.StockRepository(), store.LedgerEntryRepository()),
	}
}

func (f *fixture) register(t *testing.T, productID, unit, initial string) *entity.StockRecord {
	t.Helper()
	rec, err := f.products.Register(context.Background(), inventory.RegisterProductInput{
		ProductID:    productID,
		Unit:         unit,
		InitialStock: d(initial),
		ActorID:      testActor,
	})
	require.NoError(t, err)
	return rec
}

func (f *fixture) stock(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	rec, err := f.products.Get(context.Background(), productID)
	require.NoError(t, err)
	return rec.Stock
}

func (f *fixture) entries(t *testing.T, productID string) []*entity.LedgerEntry {
	t.Helper()
	list, err := f.store.LedgerEntryRepository().ListByProduct(context.Background(), productID)
	require.NoError(t, err)
	return list
}

func (f *fixture) pendingAlerts(t *testing.T) []*entity.OutboxMessage {
	t.Helper()
	msgs, err := f.store.OutboxRepository().GetPendingBatch(context.Background(), 10, 100)
	require.NoError(t, err)
	return msgs
}

func adjustment(productID, cause, quantity string) inventory.AdjustmentInput {
	return inventory.AdjustmentInput{
		ProductID: productID,
		Cause:     cause,
		Quantity:  d(quantity),
		Reason:    "conteo físico",
		ActorID:   testActor,
	}
}

// conflictRunner devuelve conflictos de concurrencia en los primeros n intentos.
type conflictRunner struct {
	inner     inventory.TxRunner
	conflicts int
	calls     int
}

func (r *conflictRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	entryRepo repository.LedgerEntryRepository,
	outboxRepo repository.OutboxRepository,
) error) error {
	r.calls++
	if r.calls <= r.conflicts {
		return fmt.Errorf("update stock: %w", domain.ErrConcurrencyConflict)
	}
	return r.inner.Run(ctx, fn)
}

// failingAppendRunner ejecuta sobre el store real pero el libro falla al insertar.
type failingAppendRunner struct {
	inner inventory.TxRunner
	err   error
	calls int
}

type failingEntryRepo struct {
	repository.LedgerEntryRepository
	err error
}

func (r failingEntryRepo) Append(context.Context, *entity.LedgerEntry) error { return r.err }

func (r *failingAppendRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	entryRepo repository.LedgerEntryRepository,
	outboxRepo repository.OutboxRepository,
) error) error {
	r.calls++
	return r.inner.Run(ctx, func(
		stockRepo repository.StockRepository,
		entryRepo repository.LedgerEntryRepository,
		outboxRepo repository.OutboxRepository,
	) error {
		return fn(stockRepo, failingEntryRepo{LedgerEntryRepository: entryRepo, err: r.err}, outboxRepo)
	})
}
