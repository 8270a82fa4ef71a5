package repository

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// AlertSettingsRepository define el puerto de la configuración de alertas (global u override por producto).
type AlertSettingsRepository interface {
	// Get devuelve nil, nil si no hay configuración para el alcance.
	Get(ctx context.Context, scope string) (*entity.AlertSettings, error)
	Upsert(ctx context.Context, settings *entity.AlertSettings) error
}
