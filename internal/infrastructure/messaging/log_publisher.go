package messaging

import (
	"context"

	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// LogPublisher registra las alertas en el log cuando no hay broker configurado.
type LogPublisher struct {
	log *logger.Logger
}

// NewLogPublisher construye el publicador.
func NewLogPublisher(log *logger.Logger) *LogPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &LogPublisher{log: log.Component("alerts")}
}

func (p *LogPublisher) Publish(_ context.Context, routingKey string, body []byte) error {
	p.log.Warn().Str("routing_key", routingKey).RawJSON("event", body).Msg("alerta de stock")
	return nil
}
