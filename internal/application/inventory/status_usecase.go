package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	inv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// StockStatusView estado de un producto con los umbrales que se usaron para clasificarlo.
type StockStatusView struct {
	Record   *entity.StockRecord
	Status   inv.StockStatus
	Settings entity.AlertSettings
}

// StockStatusUseCase clasifica productos según los umbrales vigentes.
type StockStatusUseCase struct {
	stockRepo  repository.StockRepository
	thresholds *ThresholdResolver
}

// NewStockStatusUseCase construye el caso de uso.
func NewStockStatusUseCase(stockRepo repository.StockRepository, thresholds *ThresholdResolver) *StockStatusUseCase {
	return &StockStatusUseCase{stockRepo: stockRepo, thresholds: thresholds}
}

// Classify estado actual de un producto.
func (uc *StockStatusUseCase) Classify(ctx context.Context, productID string) (*StockStatusView, error) {
	rec, err := uc.stockRepo.Get(ctx, strings.TrimSpace(productID))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrProductNotFound
	}
	s, err := uc.thresholds.Resolve(ctx, rec.ProductID)
	if err != nil {
		return nil, err
	}
	return &StockStatusView{
		Record:   rec,
		Status:   inv.Classify(rec.Stock, s.LowThreshold, s.CriticalThreshold),
		Settings: s,
	}, nil
}

const attentionScanPage = 200

var severity = map[inv.StockStatus]int{
	inv.StatusOutOfStock: 0,
	inv.StatusCritical:   1,
	inv.StatusLow:        2,
	inv.StatusHealthy:    3,
}

// ListAttention productos que no están sanos, del más grave al menos grave
// (luego menor stock, luego productID). Devuelve la página pedida y el total.
func (uc *StockStatusUseCase) ListAttention(ctx context.Context, limit, offset int) ([]StockStatusView, int, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	global, err := uc.thresholds.Global(ctx)
	if err != nil {
		return nil, 0, err
	}

	var flagged []StockStatusView
	for scanned := 0; ; scanned += attentionScanPage {
		records, total, err := uc.stockRepo.List(ctx, attentionScanPage, scanned)
		if err != nil {
			return nil, 0, err
		}
		for _, rec := range records {
			s, err := uc.thresholds.settingsRepo.Get(ctx, rec.ProductID)
			if err != nil {
				return nil, 0, err
			}
			settings := global
			if s != nil {
				settings = *s
			}
			status := inv.Classify(rec.Stock, settings.LowThreshold, settings.CriticalThreshold)
			if status == inv.StatusHealthy {
				continue
			}
			flagged = append(flagged, StockStatusView{Record: rec, Status: status, Settings: settings})
		}
		if len(records) == 0 || scanned+len(records) >= total {
			break
		}
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		a, b := flagged[i], flagged[j]
		if severity[a.Status] != severity[b.Status] {
			return severity[a.Status] < severity[b.Status]
		}
		if !a.Record.Stock.Equal(b.Record.Stock) {
			return a.Record.Stock.LessThan(b.Record.Stock)
		}
		return a.Record.ProductID < b.Record.ProductID
	})

	total := len(flagged)
	if offset >= total {
		return []StockStatusView{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return flagged[offset:end], total, nil
}

// AlertSettingsUseCase lectura y actualización de umbrales (global u override por producto).
type AlertSettingsUseCase struct {
	settingsRepo repository.AlertSettingsRepository
	stockRepo    repository.StockRepository
	thresholds   *ThresholdResolver
	log          *logger.Logger
}

// NewAlertSettingsUseCase construye el caso de uso.
func NewAlertSettingsUseCase(
	settingsRepo repository.AlertSettingsRepository,
	stockRepo repository.StockRepository,
	thresholds *ThresholdResolver,
	log *logger.Logger,
) *AlertSettingsUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertSettingsUseCase{
		settingsRepo: settingsRepo,
		stockRepo:    stockRepo,
		thresholds:   thresholds,
		log:          log.Component("alert_settings"),
	}
}

// Get configuración vigente para el alcance (vacío = global).
func (uc *AlertSettingsUseCase) Get(ctx context.Context, scope string) (entity.AlertSettings, error) {
	scope = strings.TrimSpace(scope)
	if scope == entity.GlobalScope {
		return uc.thresholds.Global(ctx)
	}
	if err := uc.ensureProduct(ctx, scope); err != nil {
		return entity.AlertSettings{}, err
	}
	return uc.thresholds.Resolve(ctx, scope)
}

// Update valida 0 <= crítico <= bajo y guarda la configuración.
// Los cambios aplican a las clasificaciones siguientes; no reescriben nada.
func (uc *AlertSettingsUseCase) Update(ctx context.Context, in UpdateAlertSettingsInput) (*entity.AlertSettings, error) {
	if strings.TrimSpace(in.ActorID) == "" {
		return nil, fmt.Errorf("%w: actor requerido", domain.ErrInvalidInput)
	}
	if err := inv.ValidateThresholds(in.LowThreshold, in.CriticalThreshold); err != nil {
		return nil, err
	}
	scope := strings.TrimSpace(in.Scope)
	if scope != entity.GlobalScope {
		if err := uc.ensureProduct(ctx, scope); err != nil {
			return nil, err
		}
	}
	s := &entity.AlertSettings{
		Scope:             scope,
		LowThreshold:      in.LowThreshold,
		CriticalThreshold: in.CriticalThreshold,
		NotifyLow:         in.NotifyLow,
		NotifyCritical:    in.NotifyCritical,
		NotifyOutOfStock:  in.NotifyOutOfStock,
		UpdatedBy:         strings.TrimSpace(in.ActorID),
		UpdatedAt:         normalizeTime(time.Now()),
	}
	if err := uc.settingsRepo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("scope", scope).Str("low", s.LowThreshold.String()).
		Str("critical", s.CriticalThreshold.String()).Str("actor_id", s.UpdatedBy).Msg("umbrales actualizados")
	return s, nil
}

func (uc *AlertSettingsUseCase) ensureProduct(ctx context.Context, productID string) error {
	rec, err := uc.stockRepo.Get(ctx, productID)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrProductNotFound
	}
	return nil
}
