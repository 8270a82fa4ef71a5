package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.LedgerEntryRepository   = (*LedgerEntryRepo)(nil)
	_ repository.OutboxRepository        = (*OutboxRepo)(nil)
	_ repository.AlertSettingsRepository = (*AlertSettingsRepo)(nil)
)

// StockRepo registros de stock en memoria.
type StockRepo struct {
	s  *Store
	tx bool
}

func (r *StockRepo) Get(_ context.Context, productID string) (*entity.StockRecord, error) {
	defer r.s.view(r.tx)()
	rec, ok := r.s.records[productID]
	if !ok {
		return nil, nil
	}
	c := *rec
	return &c, nil
}

// GetForUpdate dentro de Run el lock de escritura ya está tomado.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.StockRecord, error) {
	return r.Get(ctx, productID)
}

func (r *StockRepo) Create(_ context.Context, rec *entity.StockRecord) error {
	defer r.s.update(r.tx)()
	if _, ok := r.s.records[rec.ProductID]; ok {
		return fmt.Errorf("create stock record %s: %w", rec.ProductID, domain.ErrDuplicate)
	}
	c := *rec
	r.s.records[rec.ProductID] = &c
	return nil
}

func (r *StockRepo) UpdateStock(_ context.Context, productID string, stock decimal.Decimal, expectedVersion int64) error {
	defer r.s.update(r.tx)()
	rec, ok := r.s.records[productID]
	if !ok || rec.Version != expectedVersion {
		return fmt.Errorf("update stock %s: %w", productID, domain.ErrConcurrencyConflict)
	}
	c := *rec
	c.Stock = stock
	c.Version++
	c.UpdatedAt = time.Now().UTC()
	r.s.records[productID] = &c
	return nil
}

func (r *StockRepo) UpdatePolicy(_ context.Context, productID, unit string, minQuantity decimal.Decimal) error {
	defer r.s.update(r.tx)()
	rec, ok := r.s.records[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	c := *rec
	c.Unit = unit
	c.MinQuantity = minQuantity
	c.Version++
	c.UpdatedAt = time.Now().UTC()
	r.s.records[productID] = &c
	return nil
}

func (r *StockRepo) List(_ context.Context, limit, offset int) ([]*entity.StockRecord, int, error) {
	defer r.s.view(r.tx)()
	ids := make([]string, 0, len(r.s.records))
	for id := range r.s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	total := len(ids)
	list := make([]*entity.StockRecord, 0, limit)
	for _, id := range page(ids, limit, offset) {
		c := *r.s.records[id]
		list = append(list, &c)
	}
	return list, total, nil
}

// LedgerEntryRepo libro en memoria; solo inserción.
type LedgerEntryRepo struct {
	s  *Store
	tx bool
}

func (r *LedgerEntryRepo) Append(_ context.Context, e *entity.LedgerEntry) error {
	defer r.s.update(r.tx)()
	if _, ok := r.s.entryIdx[e.ID]; ok {
		return fmt.Errorf("append ledger entry %s: %w", e.ID, domain.ErrDuplicate)
	}
	if _, ok := r.s.records[e.ProductID]; !ok {
		return fmt.Errorf("append ledger entry: %w: %s", domain.ErrProductNotFound, e.ProductID)
	}
	c := *e
	r.s.entryIdx[e.ID] = len(r.s.entries)
	r.s.entries = append(r.s.entries, &c)
	return nil
}

func (r *LedgerEntryRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	defer r.s.view(r.tx)()
	i, ok := r.s.entryIdx[id]
	if !ok {
		return nil, nil
	}
	c := *r.s.entries[i]
	return &c, nil
}

func (r *LedgerEntryRepo) Query(_ context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, int, error) {
	defer r.s.view(r.tx)()
	var causes map[string]bool
	if len(f.Causes) > 0 {
		causes = make(map[string]bool, len(f.Causes))
		for _, c := range f.Causes {
			causes[c] = true
		}
	}
	var matched []*entity.LedgerEntry
	for _, e := range r.s.entries {
		switch {
		case f.ProductID != "" && e.ProductID != f.ProductID:
		case f.From != nil && e.Timestamp.Before(*f.From):
		case f.To != nil && e.Timestamp.After(*f.To):
		case causes != nil && !causes[e.Cause]:
		case f.Reference != "" && e.Reference != f.Reference:
		case f.ReversesEntryID != "" && e.ReversesEntryID != f.ReversesEntryID:
		default:
			matched = append(matched, e)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		c := compareEntries(matched[i], matched[j], f.SortField)
		if f.SortDesc {
			return c > 0
		}
		return c < 0
	})

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	out := make([]*entity.LedgerEntry, 0, limit)
	for _, e := range page(matched, limit, f.Offset) {
		c := *e
		out = append(out, &c)
	}
	return out, len(matched), nil
}

// compareEntries compara por el campo pedido y desempata por ID.
func compareEntries(a, b *entity.LedgerEntry, field string) int {
	var c int
	switch field {
	case repository.SortByQuantity:
		c = a.Quantity().Cmp(b.Quantity())
	case repository.SortByProduct:
		c = compareStrings(a.ProductID, b.ProductID)
	case repository.SortByCause:
		c = compareStrings(a.Cause, b.Cause)
	default:
		c = a.Timestamp.Compare(b.Timestamp)
	}
	if c != 0 {
		return c
	}
	return compareStrings(a.ID, b.ID)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (r *LedgerEntryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.LedgerEntry, error) {
	defer r.s.view(r.tx)()
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.ProductID == productID {
			c := *e
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return compareEntries(out[i], out[j], repository.SortByTimestamp) < 0
	})
	return out, nil
}

// OutboxRepo outbox en memoria.
type OutboxRepo struct {
	s  *Store
	tx bool
}

func (r *OutboxRepo) Insert(_ context.Context, msg *entity.OutboxMessage) error {
	defer r.s.update(r.tx)()
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.OccurredAt.IsZero() {
		msg.OccurredAt = time.Now().UTC()
	}
	c := *msg
	r.s.outbox = append(r.s.outbox, &c)
	return nil
}

func (r *OutboxRepo) GetPendingBatch(_ context.Context, maxRetry, batchSize int) ([]*entity.OutboxMessage, error) {
	defer r.s.view(r.tx)()
	var out []*entity.OutboxMessage
	for _, m := range r.s.outbox {
		if len(out) >= batchSize {
			break
		}
		if m.ProcessedAt == nil && m.RetryCount < maxRetry {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *OutboxRepo) Save(_ context.Context, msg *entity.OutboxMessage) error {
	defer r.s.update(r.tx)()
	for i, m := range r.s.outbox {
		if m.ID != msg.ID {
			continue
		}
		c := *m
		c.RetryCount = msg.RetryCount
		if msg.ProcessedAt != nil {
			c.ProcessedAt = msg.ProcessedAt
		}
		r.s.outbox[i] = &c
		return nil
	}
	return fmt.Errorf("save outbox message %s: %w", msg.ID, domain.ErrNotFound)
}

// AlertSettingsRepo umbrales en memoria.
type AlertSettingsRepo struct {
	s *Store
}

func (r *AlertSettingsRepo) Get(_ context.Context, scope string) (*entity.AlertSettings, error) {
	defer r.s.view(false)()
	s, ok := r.s.settings[scope]
	if !ok {
		return nil, nil
	}
	c := *s
	return &c, nil
}

func (r *AlertSettingsRepo) Upsert(_ context.Context, s *entity.AlertSettings) error {
	defer r.s.update(false)()
	c := *s
	r.s.settings[s.Scope] = &c
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
