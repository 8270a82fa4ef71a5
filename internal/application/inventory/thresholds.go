package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ThresholdResolver resuelve los umbrales vigentes de un producto:
// override del producto, si no la configuración global, si no los valores por defecto.
type ThresholdResolver struct {
	settingsRepo repository.AlertSettingsRepository
	defaults     entity.AlertSettings
}

// NewThresholdResolver construye el resolvedor. Los defaults notifican las tres bandas.
func NewThresholdResolver(settingsRepo repository.AlertSettingsRepository, low, critical decimal.Decimal) *ThresholdResolver {
	return &ThresholdResolver{
		settingsRepo: settingsRepo,
		defaults: entity.AlertSettings{
			Scope:             entity.GlobalScope,
			LowThreshold:      low,
			CriticalThreshold: critical,
			NotifyLow:         true,
			NotifyCritical:    true,
			NotifyOutOfStock:  true,
		},
	}
}

// Global configuración global vigente.
func (r *ThresholdResolver) Global(ctx context.Context) (entity.AlertSettings, error) {
	s, err := r.settingsRepo.Get(ctx, entity.GlobalScope)
	if err != nil {
		return entity.AlertSettings{}, err
	}
	if s == nil {
		return r.defaults, nil
	}
	return *s, nil
}

// Resolve umbrales vigentes para un producto.
func (r *ThresholdResolver) Resolve(ctx context.Context, productID string) (entity.AlertSettings, error) {
	s, err := r.settingsRepo.Get(ctx, productID)
	if err != nil {
		return entity.AlertSettings{}, err
	}
	if s != nil {
		return *s, nil
	}
	return r.Global(ctx)
}

// ResolveMany umbrales para varios productos, leyendo la global una sola vez.
func (r *ThresholdResolver) ResolveMany(ctx context.Context, productIDs []string) (map[string]entity.AlertSettings, error) {
	global, err := r.Global(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]entity.AlertSettings, len(productIDs))
	for _, id := range productIDs {
		s, err := r.settingsRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if s != nil {
			out[id] = *s
			continue
		}
		out[id] = global
	}
	return out, nil
}
