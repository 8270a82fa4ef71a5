package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
)

func newRecord(id string) *entity.StockRecord {
	return &entity.StockRecord{ProductID: id, Unit: "piece", MinQuantity: decimal.NewFromInt(1), Stock: decimal.Zero}
}

func newEntry(id, productID string, ts time.Time, delta int64) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:            id,
		ProductID:     productID,
		Timestamp:     ts,
		Cause:         "adjustment_positive",
		Polarity:      "addition",
		Delta:         decimal.NewFromInt(delta),
		PreviousStock: decimal.Zero,
		NewStock:      decimal.NewFromInt(delta),
		MinQuantity:   decimal.NewFromInt(1),
		Unit:          "piece",
		Reason:        "test",
		ActorID:       "actor",
	}
}

func TestRun_RevierteAnteError(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.StockRepository().Create(ctx, newRecord("A")))

	boom := errors.New("boom")
	err := s.Run(ctx, func(stockRepo repository.StockRepository, entryRepo repository.LedgerEntryRepository, outboxRepo repository.OutboxRepository) error {
		require.NoError(t, stockRepo.UpdateStock(ctx, "A", decimal.NewFromInt(5), 0))
		require.NoError(t, entryRepo.Append(ctx, newEntry("e1", "A", time.Now(), 5)))
		require.NoError(t, outboxRepo.Insert(ctx, &entity.OutboxMessage{Type: "stock.alert.low", Payload: []byte(`{}`)}))
		require.NoError(t, stockRepo.Create(ctx, newRecord("B")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rec, err := s.StockRepository().Get(ctx, "A")
	require.NoError(t, err)
	assert.True(t, rec.Stock.IsZero())
	assert.Equal(t, int64(0), rec.Version)

	b, err := s.StockRepository().Get(ctx, "B")
	require.NoError(t, err)
	assert.Nil(t, b)

	e, err := s.LedgerEntryRepository().GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Nil(t, e)

	pending, err := s.OutboxRepository().GetPendingBatch(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRun_ConfirmaSinError(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.StockRepository().Create(ctx, newRecord("A")))

	err := s.Run(ctx, func(stockRepo repository.StockRepository, entryRepo repository.LedgerEntryRepository, _ repository.OutboxRepository) error {
		if err := stockRepo.UpdateStock(ctx, "A", decimal.NewFromInt(5), 0); err != nil {
			return err
		}
		return entryRepo.Append(ctx, newEntry("e1", "A", time.Now(), 5))
	})
	require.NoError(t, err)

	rec, err := s.StockRepository().Get(ctx, "A")
	require.NoError(t, err)
	assert.True(t, rec.Stock.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, int64(1), rec.Version)
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.StockRepository, repository.LedgerEntryRepository, repository.OutboxRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStockRepo_VersionObsoleta(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.StockRepository().Create(ctx, newRecord("A")))
	require.NoError(t, s.StockRepository().UpdateStock(ctx, "A", decimal.NewFromInt(1), 0))

	err := s.StockRepository().UpdateStock(ctx, "A", decimal.NewFromInt(2), 0)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	assert.ErrorIs(t, s.StockRepository().Create(ctx, newRecord("A")), domain.ErrDuplicate)
}

func TestLedgerEntryRepo_DuplicadoYProductoInexistente(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.StockRepository().Create(ctx, newRecord("A")))
	require.NoError(t, s.LedgerEntryRepository().Append(ctx, newEntry("e1", "A", time.Now(), 1)))

	assert.ErrorIs(t, s.LedgerEntryRepository().Append(ctx, newEntry("e1", "A", time.Now(), 1)), domain.ErrDuplicate)
	assert.ErrorIs(t, s.LedgerEntryRepository().Append(ctx, newEntry("e2", "Z", time.Now(), 1)), domain.ErrProductNotFound)
}

func TestLedgerEntryRepo_QueryDesempataPorID(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.StockRepository().Create(ctx, newRecord("A")))
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range []string{"b", "c", "a"} {
		require.NoError(t, s.LedgerEntryRepository().Append(ctx, newEntry(id, "A", ts, 1)))
	}

	desc, total, err := s.LedgerEntryRepository().Query(ctx, repository.LedgerFilter{SortDesc: true, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"c", "b", "a"}, ids(desc))

	asc, _, err := s.LedgerEntryRepository().Query(ctx, repository.LedgerFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, ids(asc))
}

func TestLedgerEntryRepo_QueryPorReferenciaYCausa(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.StockRepository().Create(ctx, newRecord("A")))
	e1 := newEntry("e1", "A", time.Now(), 1)
	e1.Reference = "OC-1"
	require.NoError(t, s.LedgerEntryRepository().Append(ctx, e1))
	require.NoError(t, s.LedgerEntryRepository().Append(ctx, newEntry("e2", "A", time.Now(), 1)))

	list, total, err := s.LedgerEntryRepository().Query(ctx, repository.LedgerFilter{Reference: "OC-1", Causes: []string{"adjustment_positive"}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"e1"}, ids(list))

	_, total, err = s.LedgerEntryRepository().Query(ctx, repository.LedgerFilter{Causes: []string{"sale"}})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestLedgerEntryRepo_QueryPorAnulacion(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.StockRepository().Create(ctx, newRecord("A")))
	cited := newEntry("e1", "A", time.Now(), 1)
	cited.Reference = "e0"
	require.NoError(t, s.LedgerEntryRepository().Append(ctx, cited))
	rev := newEntry("e2", "A", time.Now(), 1)
	rev.Reference = "e0"
	rev.ReversesEntryID = "e0"
	require.NoError(t, s.LedgerEntryRepository().Append(ctx, rev))

	list, total, err := s.LedgerEntryRepository().Query(ctx, repository.LedgerFilter{ReversesEntryID: "e0"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"e2"}, ids(list))
}

func TestLedgerEntryRepo_OffsetNegativoDevuelvePaginaVacia(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.StockRepository().Create(ctx, newRecord("A")))
	require.NoError(t, s.LedgerEntryRepository().Append(ctx, newEntry("e1", "A", time.Now(), 1)))

	list, total, err := s.LedgerEntryRepository().Query(ctx, repository.LedgerFilter{Limit: 20, Offset: -16})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, list)
}

func TestOutboxRepo_PendientesYSave(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	repo := s.OutboxRepository()
	require.NoError(t, repo.Insert(ctx, &entity.OutboxMessage{ID: "m1", Type: "t", Payload: []byte(`{}`)}))
	require.NoError(t, repo.Insert(ctx, &entity.OutboxMessage{ID: "m2", Type: "t", Payload: []byte(`{}`)}))

	pending, err := repo.GetPendingBatch(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	now := time.Now()
	pending[0].ProcessedAt = &now
	require.NoError(t, repo.Save(ctx, pending[0]))
	pending[1].RetryCount = 3
	require.NoError(t, repo.Save(ctx, pending[1]))

	pending, err = repo.GetPendingBatch(ctx, 3, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.ErrorIs(t, repo.Save(ctx, &entity.OutboxMessage{ID: "zz"}), domain.ErrNotFound)
}

func ids(list []*entity.LedgerEntry) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.ID)
	}
	return out
}
