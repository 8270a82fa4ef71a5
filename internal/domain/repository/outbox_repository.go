package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// OutboxRepository define el puerto del outbox transaccional de eventos.
type OutboxRepository interface {
	Insert(ctx context.Context, msg *entity.OutboxMessage) error
	GetPendingBatch(ctx context.Context, maxRetry, batchSize int) ([]*entity.OutboxMessage, error)
	Save(ctx context.Context, msg *entity.OutboxMessage) error
}
