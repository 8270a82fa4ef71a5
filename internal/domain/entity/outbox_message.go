package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// OutboxMessage evento pendiente de publicar, escrito en la misma transacción que el ajuste.
type OutboxMessage struct {
	ID          string
	Type        string // routing key, ej. stock.alert.critical
	Payload     json.RawMessage
	OccurredAt  time.Time
	RetryCount  int
	ProcessedAt *time.Time
}

// StockAlertEvent cambio de banda de severidad de un producto tras un ajuste.
type StockAlertEvent struct {
	ProductID         string          `json:"product_id"`
	PreviousStatus    string          `json:"previous_status"`
	Status            string          `json:"status"`
	Stock             decimal.Decimal `json:"stock"`
	Unit              string          `json:"unit"`
	LowThreshold      decimal.Decimal `json:"low_threshold"`
	CriticalThreshold decimal.Decimal `json:"critical_threshold"`
	EntryID           string          `json:"entry_id"`
	ActorID           string          `json:"actor_id"`
	OccurredAt        time.Time       `json:"occurred_at"`
}
