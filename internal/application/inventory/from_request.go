package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// ApplyFromRequest adapta el request HTTP al caso de uso Apply(ctx, AdjustmentInput).
func (uc *AdjustStockUseCase) ApplyFromRequest(ctx context.Context, actorID string, in dto.AdjustmentRequest) (*entity.LedgerEntry, error) {
	return uc.Apply(ctx, AdjustmentInput{
		ProductID: in.ProductID,
		Cause:     in.Cause,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		ActorID:   actorID,
	})
}

// ApplyBatchFromRequest adapta el request HTTP de lote a ApplyBatch(ctx, BatchInput).
func (uc *AdjustStockUseCase) ApplyBatchFromRequest(ctx context.Context, actorID string, in dto.BatchAdjustmentRequest) (*BatchResult, error) {
	items := make([]BatchItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, BatchItemInput{
			ProductID: it.ProductID,
			Cause:     it.Cause,
			Quantity:  it.Quantity,
			Reason:    it.Reason,
			Reference: it.Reference,
		})
	}
	return uc.ApplyBatch(ctx, BatchInput{
		Items:           items,
		SharedCause:     in.Cause,
		SharedReason:    in.Reason,
		SharedReference: in.Reference,
		ActorID:         actorID,
	})
}

// RegisterFromRequest adapta el request HTTP de alta de producto.
func (uc *ProductStockUseCase) RegisterFromRequest(ctx context.Context, actorID string, in dto.RegisterProductRequest) (*entity.StockRecord, error) {
	return uc.Register(ctx, RegisterProductInput{
		ProductID:    in.ProductID,
		Unit:         in.Unit,
		MinQuantity:  in.MinQuantity,
		InitialStock: in.InitialStock,
		ActorID:      actorID,
	})
}

// UpdateFromRequest adapta el request HTTP de umbrales. Los flags omitidos quedan activos.
func (uc *AlertSettingsUseCase) UpdateFromRequest(ctx context.Context, actorID string, in dto.AlertSettingsRequest) (*entity.AlertSettings, error) {
	flag := func(b *bool) bool { return b == nil || *b }
	return uc.Update(ctx, UpdateAlertSettingsInput{
		Scope:             in.ProductID,
		LowThreshold:      in.LowThreshold,
		CriticalThreshold: in.CriticalThreshold,
		NotifyLow:         flag(in.NotifyLow),
		NotifyCritical:    flag(in.NotifyCritical),
		NotifyOutOfStock:  flag(in.NotifyOutOfStock),
		ActorID:           actorID,
	})
}
