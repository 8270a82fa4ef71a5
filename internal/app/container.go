// Package app arma los casos de uso sobre el almacenamiento configurado.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/messaging"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/outbox"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Container casos de uso y repositorios listos para usar.
type Container struct {
	Pool *pgxpool.Pool // nil con STORAGE_DRIVER=memory

	TxRunner     inventory.TxRunner
	StockRepo    repository.StockRepository
	EntryRepo    repository.LedgerEntryRepository
	OutboxRepo   repository.OutboxRepository
	SettingsRepo repository.AlertSettingsRepository

	Adjust        *inventory.AdjustStockUseCase
	History       *inventory.HistoryUseCase
	Products      *inventory.ProductStockUseCase
	Status        *inventory.StockStatusUseCase
	AlertSettings *inventory.AlertSettingsUseCase
	Audit         *inventory.AuditUseCase

	closers []func()
}

// Build conecta el almacenamiento y construye los casos de uso.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{}
	switch cfg.Storage {
	case "memory":
		store := memory.NewStore()
		c.TxRunner = store
		c.StockRepo = store.StockRepository()
		c.EntryRepo = store.LedgerEntryRepository()
		c.OutboxRepo = store.OutboxRepository()
		c.SettingsRepo = store.AlertSettingsRepository()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		c.Pool = pool
		c.closers = append(c.closers, pool.Close)
		c.TxRunner = postgres.NewTxRunner(pool, cfg.DB.LockTimeoutMs)
		c.StockRepo = postgres.NewStockRepository(pool)
		c.EntryRepo = postgres.NewLedgerEntryRepository(pool)
		c.OutboxRepo = postgres.NewOutboxRepository(pool)
		c.SettingsRepo = postgres.NewAlertSettingsRepository(pool)
	}

	thresholds := inventory.NewThresholdResolver(c.SettingsRepo, cfg.Alerts.LowThreshold, cfg.Alerts.CriticalThreshold)
	c.Adjust = inventory.NewAdjustStockUseCase(c.TxRunner, c.EntryRepo, thresholds, log, inventory.Options{
		MaxAttempts:   cfg.Ledger.MaxAttempts,
		RetryBackoff:  cfg.Ledger.RetryBackoff,
		MaxBatchItems: cfg.Ledger.MaxBatchItems,
	})
	c.History = inventory.NewHistoryUseCase(c.EntryRepo)
	c.Products = inventory.NewProductStockUseCase(c.TxRunner, c.StockRepo, thresholds, log)
	c.Status = inventory.NewStockStatusUseCase(c.StockRepo, thresholds)
	c.AlertSettings = inventory.NewAlertSettingsUseCase(c.SettingsRepo, c.StockRepo, thresholds, log)
	c.Audit = inventory.NewAuditUseCase(c.StockRepo, c.EntryRepo)
	return c, nil
}

// OutboxScheduler construye el despachador de alertas: RabbitMQ si hay AMQP_URL, si no log.
func (c *Container) OutboxScheduler(cfg *config.Config, log *logger.Logger) (*outbox.Scheduler, error) {
	var publisher outbox.Publisher
	if cfg.AMQP.URL != "" {
		p, err := messaging.NewRabbitMQPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, log)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = p.Close() })
		publisher = p
	} else {
		publisher = messaging.NewLogPublisher(log)
	}
	d := outbox.NewDispatcher(c.OutboxRepo, publisher, log, cfg.AMQP.MaxRetry, cfg.AMQP.BatchSize)
	return outbox.NewScheduler(d, cfg.AMQP.DispatchInterval, log), nil
}

// Close libera conexiones en orden inverso.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
