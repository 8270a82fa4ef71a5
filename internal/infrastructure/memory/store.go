// Package memory implementa los puertos de persistencia en memoria (desarrollo y tests).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store guarda registros, movimientos, umbrales y outbox en memoria.
// Run toma el lock de escritura durante toda la transacción (un escritor a la vez);
// las lecturas fuera de transacción toman el lock de lectura y nunca ven escrituras a medias.
type Store struct {
	mu       sync.RWMutex
	records  map[string]*entity.StockRecord
	entries  []*entity.LedgerEntry
	entryIdx map[string]int
	settings map[string]*entity.AlertSettings
	outbox   []*entity.OutboxMessage
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		records:  make(map[string]*entity.StockRecord),
		entryIdx: make(map[string]int),
		settings: make(map[string]*entity.AlertSettings),
	}
}

// Run ejecuta fn con repos atados a la transacción. Si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	entryRepo repository.LedgerEntryRepository,
	outboxRepo repository.OutboxRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&StockRepo{s: s, tx: true}, &LedgerEntryRepo{s: s, tx: true}, &OutboxRepo{s: s, tx: true}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Repositorios fuera de transacción.
func (s *Store) StockRepository() *StockRepo                 { return &StockRepo{s: s} }
func (s *Store) LedgerEntryRepository() *LedgerEntryRepo     { return &LedgerEntryRepo{s: s} }
func (s *Store) OutboxRepository() *OutboxRepo               { return &OutboxRepo{s: s} }
func (s *Store) AlertSettingsRepository() *AlertSettingsRepo { return &AlertSettingsRepo{s: s} }

// Las escrituras reemplazan punteros en lugar de mutar, así basta una copia superficial.
type snapshot struct {
	records  map[string]*entity.StockRecord
	entries  int
	outbox   []*entity.OutboxMessage
	settings map[string]*entity.AlertSettings
}

func (s *Store) snapshot() snapshot {
	records := make(map[string]*entity.StockRecord, len(s.records))
	for k, v := range s.records {
		records[k] = v
	}
	settings := make(map[string]*entity.AlertSettings, len(s.settings))
	for k, v := range s.settings {
		settings[k] = v
	}
	return snapshot{
		records:  records,
		entries:  len(s.entries),
		outbox:   append([]*entity.OutboxMessage(nil), s.outbox...),
		settings: settings,
	}
}

func (s *Store) restore(snap snapshot) {
	for _, e := range s.entries[snap.entries:] {
		delete(s.entryIdx, e.ID)
	}
	s.entries = s.entries[:snap.entries]
	s.records = snap.records
	s.outbox = snap.outbox
	s.settings = snap.settings
}

// view toma el lock que corresponde si el repo no está dentro de Run.
func (s *Store) view(tx bool) func() {
	if tx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) update(tx bool) func() {
	if tx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
