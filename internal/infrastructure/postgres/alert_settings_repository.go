package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.AlertSettingsRepository = (*AlertSettingsRepo)(nil)

// AlertSettingsRepo umbrales de alerta; scope '' es la fila global.
type AlertSettingsRepo struct {
	q Querier
}

// NewAlertSettingsRepository construye el adaptador.
func NewAlertSettingsRepository(q Querier) *AlertSettingsRepo {
	return &AlertSettingsRepo{q: q}
}

func (r *AlertSettingsRepo) Get(ctx context.Context, scope string) (*entity.AlertSettings, error) {
	query := `
		SELECT scope, low_threshold, critical_threshold, notify_low, notify_critical,
		       notify_out_of_stock, updated_by, updated_at
		FROM alert_settings WHERE scope = $1`
	var s entity.AlertSettings
	err := r.q.QueryRow(ctx, query, scope).Scan(
		&s.Scope, &s.LowThreshold, &s.CriticalThreshold, &s.NotifyLow, &s.NotifyCritical,
		&s.NotifyOutOfStock, &s.UpdatedBy, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get alert settings", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}

func (r *AlertSettingsRepo) Upsert(ctx context.Context, s *entity.AlertSettings) error {
	query := `
		INSERT INTO alert_settings (scope, low_threshold, critical_threshold, notify_low,
			notify_critical, notify_out_of_stock, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (scope) DO UPDATE SET
			low_threshold = EXCLUDED.low_threshold,
			critical_threshold = EXCLUDED.critical_threshold,
			notify_low = EXCLUDED.notify_low,
			notify_critical = EXCLUDED.notify_critical,
			notify_out_of_stock = EXCLUDED.notify_out_of_stock,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		s.Scope, s.LowThreshold, s.CriticalThreshold, s.NotifyLow,
		s.NotifyCritical, s.NotifyOutOfStock, s.UpdatedBy, s.UpdatedAt,
	)
	return classify("upsert alert settings", err)
}
