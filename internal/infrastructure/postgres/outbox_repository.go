package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo outbox transaccional de eventos de alerta.
type OutboxRepo struct {
	q Querier
}

// NewOutboxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutboxRepository(q Querier) *OutboxRepo {
	return &OutboxRepo{q: q}
}

func (r *OutboxRepo) Insert(ctx context.Context, msg *entity.OutboxMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.OccurredAt.IsZero() {
		msg.OccurredAt = time.Now().UTC()
	}
	query := `
		INSERT INTO outbox_messages (id, type, payload, occurred_at, retry_count, processed_at)
		VALUES ($1, $2, $3, $4, $5, NULL)`
	_, err := r.q.Exec(ctx, query, msg.ID, msg.Type, []byte(msg.Payload), msg.OccurredAt, msg.RetryCount)
	return classify("insert outbox message", err)
}

// GetPendingBatch mensajes no procesados con menos de maxRetry intentos, del más antiguo al más nuevo.
func (r *OutboxRepo) GetPendingBatch(ctx context.Context, maxRetry, batchSize int) ([]*entity.OutboxMessage, error) {
	query := `
		SELECT id::text, type, payload, occurred_at, retry_count, processed_at
		FROM outbox_messages
		WHERE processed_at IS NULL AND retry_count < $1
		ORDER BY occurred_at ASC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, maxRetry, batchSize)
	if err != nil {
		return nil, classify("get pending outbox", err)
	}
	defer rows.Close()

	var result []*entity.OutboxMessage
	for rows.Next() {
		var msg entity.OutboxMessage
		var payload []byte
		if err := rows.Scan(&msg.ID, &msg.Type, &payload, &msg.OccurredAt, &msg.RetryCount, &msg.ProcessedAt); err != nil {
			return nil, classify("scan outbox message", err)
		}
		msg.Payload = payload
		result = append(result, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("get pending outbox", err)
	}
	return result, nil
}

// Save persiste el contador de reintentos y la marca de procesado.
func (r *OutboxRepo) Save(ctx context.Context, msg *entity.OutboxMessage) error {
	query := `
		UPDATE outbox_messages
		SET retry_count = $2, processed_at = COALESCE($3, processed_at)
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, msg.ID, msg.RetryCount, msg.ProcessedAt)
	return classify("save outbox message", err)
}
