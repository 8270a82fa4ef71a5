package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	inv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// plannedEntry ítem validado, con su saldo corrido dentro del lote.
type plannedEntry struct {
	index     int
	record    *entity.StockRecord
	cause     inv.AdjustmentCause
	delta     decimal.Decimal
	previous  decimal.Decimal
	next      decimal.Decimal
	reason    string
	reference string
	reverses  string
}

// plan resultado de validar todos los ítems contra los registros bloqueados.
type plan struct {
	entries []plannedEntry
	records map[string]*entity.StockRecord // valores previos al lote
	finals  map[string]decimal.Decimal
	order   []string // productIDs ordenados (orden de bloqueo y escritura)
}

// commitMeta datos comunes a todos los movimientos de una escritura.
type commitMeta struct {
	actorID string
	batchID string
	now     time.Time
	alerts  map[string]entity.AlertSettings
}

// lockProducts bloquea los productos referenciados en orden ascendente de productID
// (orden fijo para evitar interbloqueos entre lotes concurrentes).
func lockProducts(ctx context.Context, stockRepo repository.StockRepository, reqs []adjustmentRequest) (map[string]*entity.StockRecord, []string, error) {
	ids := uniqueProductIDs(reqs)
	records := make(map[string]*entity.StockRecord, len(ids))
	order := make([]string, 0, len(ids))
	for _, id := range ids {
		rec, err := stockRepo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, nil, err
		}
		if rec == nil {
			continue
		}
		records[id] = rec
		order = append(order, id)
	}
	return records, order, nil
}

func uniqueProductIDs(reqs []adjustmentRequest) []string {
	seen := make(map[string]struct{}, len(reqs))
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r.ProductID == "" {
			continue
		}
		if _, ok := seen[r.ProductID]; ok {
			continue
		}
		seen[r.ProductID] = struct{}{}
		ids = append(ids, r.ProductID)
	}
	sort.Strings(ids)
	return ids
}

// buildPlan valida cada ítem en orden contra el saldo corrido de su producto.
// Un ítem inválido no altera el saldo corrido de los siguientes.
func buildPlan(records map[string]*entity.StockRecord, order []string, reqs []adjustmentRequest) (*plan, []domain.ItemFailure) {
	p := &plan{
		records: records,
		finals:  make(map[string]decimal.Decimal, len(records)),
		order:   order,
	}
	for id, rec := range records {
		p.finals[id] = rec.Stock
	}

	var failures []domain.ItemFailure
	for i, req := range reqs {
		planned, err := validateRequest(records, p.finals, req)
		if err != nil {
			failures = append(failures, domain.ItemFailure{Index: i, ProductID: req.ProductID, Err: err})
			continue
		}
		planned.index = i
		p.finals[req.ProductID] = planned.next
		p.entries = append(p.entries, planned)
	}
	return p, failures
}

// validateRequest pasos 1-7 del ajuste: existencia, política de paso, referencia, motivo, polaridad y stock.
func validateRequest(records map[string]*entity.StockRecord, running map[string]decimal.Decimal, req adjustmentRequest) (plannedEntry, error) {
	rec, ok := records[req.ProductID]
	if !ok {
		return plannedEntry{}, fmt.Errorf("%w: %q", domain.ErrProductNotFound, req.ProductID)
	}
	cause, err := inv.ParseCause(req.Cause)
	if err != nil {
		return plannedEntry{}, err
	}
	quantity, err := inv.ValidateQuantity(rec.MinQuantity, req.Quantity)
	if err != nil {
		return plannedEntry{}, err
	}
	if cause.RequiresReference() && req.Reference == "" {
		return plannedEntry{}, fmt.Errorf("%w: %s", domain.ErrMissingReference, cause.Code())
	}
	if req.Reason == "" {
		return plannedEntry{}, domain.ErrMissingReason
	}
	previous := running[req.ProductID]
	if cause.Polarity() == inv.PolarityRemoval && quantity.GreaterThan(previous) {
		return plannedEntry{}, &domain.InsufficientStockError{
			ProductID: req.ProductID,
			Available: previous,
			Requested: quantity,
		}
	}
	delta := cause.Polarity().Sign(quantity)
	return plannedEntry{
		record:    rec,
		cause:     cause,
		delta:     delta,
		previous:  previous,
		next:      previous.Add(delta),
		reason:    req.Reason,
		reference: req.Reference,
		reverses:  req.reverses,
	}, nil
}

// commitPlan escribe el nuevo stock de cada producto y agrega un movimiento por ítem,
// más los eventos de alerta que correspondan. Todo dentro de la transacción del caller.
func commitPlan(
	ctx context.Context,
	stockRepo repository.StockRepository,
	entryRepo repository.LedgerEntryRepository,
	outboxRepo repository.OutboxRepository,
	p *plan,
	meta commitMeta,
) ([]*entity.LedgerEntry, error) {
	for _, id := range p.order {
		rec := p.records[id]
		if err := stockRepo.UpdateStock(ctx, id, p.finals[id], rec.Version); err != nil {
			return nil, err
		}
	}

	created := make([]*entity.LedgerEntry, 0, len(p.entries))
	lastEntry := make(map[string]*entity.LedgerEntry, len(p.order))
	for _, pe := range p.entries {
		e := &entity.LedgerEntry{
			ID:            newEntryID(),
			ProductID:     pe.record.ProductID,
			BatchID:       meta.batchID,
			Timestamp:     meta.now,
			Cause:         pe.cause.Code(),
			Polarity:      string(pe.cause.Polarity()),
			Delta:         pe.delta,
			PreviousStock: pe.previous,
			NewStock:      pe.next,
			MinQuantity:   pe.record.MinQuantity,
			Unit:          pe.record.Unit,
			Reason:        pe.reason,
			Reference:     pe.reference,
			ActorID:       meta.actorID,

			ReversesEntryID: pe.reverses,
		}
		if err := e.CheckInvariant(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		if err := entryRepo.Append(ctx, e); err != nil {
			return nil, err
		}
		created = append(created, e)
		lastEntry[e.ProductID] = e
	}

	for _, id := range p.order {
		settings, ok := meta.alerts[id]
		if !ok {
			continue
		}
		msg, err := alertMessage(p.records[id], p.finals[id], settings, lastEntry[id], meta)
		if err != nil {
			return nil, err
		}
		if msg == nil {
			continue
		}
		if err := outboxRepo.Insert(ctx, msg); err != nil {
			return nil, err
		}
	}
	return created, nil
}

// alertMessage construye el evento si el producto cambió a una banda notificable.
func alertMessage(rec *entity.StockRecord, final decimal.Decimal, s entity.AlertSettings, last *entity.LedgerEntry, meta commitMeta) (*entity.OutboxMessage, error) {
	before := inv.Classify(rec.Stock, s.LowThreshold, s.CriticalThreshold)
	after := inv.Classify(final, s.LowThreshold, s.CriticalThreshold)
	if before == after || !shouldNotify(after, s) || last == nil {
		return nil, nil
	}
	payload, err := json.Marshal(entity.StockAlertEvent{
		ProductID:         rec.ProductID,
		PreviousStatus:    string(before),
		Status:            string(after),
		Stock:             final,
		Unit:              rec.Unit,
		LowThreshold:      s.LowThreshold,
		CriticalThreshold: s.CriticalThreshold,
		EntryID:           last.ID,
		ActorID:           meta.actorID,
		OccurredAt:        meta.now,
	})
	if err != nil {
		return nil, fmt.Errorf("serializar alerta: %w", err)
	}
	return &entity.OutboxMessage{
		ID:         uuid.New().String(),
		Type:       AlertRoutingKey(after),
		Payload:    payload,
		OccurredAt: meta.now,
	}, nil
}

func shouldNotify(status inv.StockStatus, s entity.AlertSettings) bool {
	switch status {
	case inv.StatusLow:
		return s.NotifyLow
	case inv.StatusCritical:
		return s.NotifyCritical
	case inv.StatusOutOfStock:
		return s.NotifyOutOfStock
	}
	return false
}

// AlertRoutingKey routing key del evento de alerta para un estado.
func AlertRoutingKey(status inv.StockStatus) string {
	return "stock.alert." + string(status)
}

// newEntryID genera un UUIDv7 (ordenable por tiempo y secuencia).
func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
