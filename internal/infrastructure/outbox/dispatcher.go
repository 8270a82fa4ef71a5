// Package outbox publica los eventos escritos en el outbox transaccional.
package outbox

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Publisher envía un mensaje ya serializado con su routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Dispatcher lee mensajes pendientes y los publica; marca procesados o suma un reintento.
type Dispatcher struct {
	repo      repository.OutboxRepository
	publisher Publisher
	log       *logger.Logger
	maxRetry  int
	batchSize int
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(
	repo repository.OutboxRepository,
	publisher Publisher,
	log *logger.Logger,
	maxRetry, batchSize int,
) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		repo:      repo,
		publisher: publisher,
		log:       log.Component("outbox"),
		maxRetry:  maxRetry,
		batchSize: batchSize,
	}
}

// DispatchOnce procesa un lote y devuelve cuántos mensajes se publicaron.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	msgs, err := d.repo.GetPendingBatch(ctx, d.maxRetry, d.batchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, msg := range msgs {
		if !json.Valid(msg.Payload) {
			d.log.Error().Str("message_id", msg.ID).Msg("payload inválido en outbox")
			msg.RetryCount = d.maxRetry
		} else if err := d.publisher.Publish(ctx, msg.Type, msg.Payload); err != nil {
			d.log.Warn().Err(err).Str("message_id", msg.ID).Str("type", msg.Type).
				Int("retry", msg.RetryCount+1).Msg("no se pudo publicar")
			msg.RetryCount++
		} else {
			now := time.Now().UTC()
			msg.ProcessedAt = &now
			processed++
		}

		if err := d.repo.Save(ctx, msg); err != nil {
			d.log.Error().Err(err).Str("message_id", msg.ID).Msg("no se pudo guardar el estado del mensaje")
		}
	}
	return processed, nil
}
