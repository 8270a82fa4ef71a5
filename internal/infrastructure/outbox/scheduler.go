package outbox

import (
	"context"
	"time"

	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// Scheduler ejecuta el dispatcher a intervalo fijo.
type Scheduler struct {
	dispatcher *Dispatcher
	interval   time.Duration
	log        *logger.Logger
}

// NewScheduler construye el scheduler. interval <= 0 usa 5s.
func NewScheduler(d *Dispatcher, interval time.Duration, log *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{dispatcher: d, interval: interval, log: log.Component("outbox_scheduler")}
}

// Run bloquea hasta que ctx se cancela.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("outbox scheduler iniciado")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("outbox scheduler detenido")
			return nil
		case <-ticker.C:
			n, err := s.dispatcher.DispatchOnce(ctx)
			if err != nil {
				s.log.Error().Err(err).Msg("error despachando outbox")
			} else if n > 0 {
				s.log.Debug().Int("published", n).Msg("outbox despachado")
			}
		}
	}
}
