package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

func TestBuildHistoryQuery_SinFiltros(t *testing.T) {
	hq := buildHistoryQuery(repository.LedgerFilter{SortField: repository.SortByTimestamp, SortDesc: true})

	assert.Empty(t, hq.Where)
	assert.Empty(t, hq.Args)
	assert.Equal(t, " ORDER BY ts DESC, id DESC", hq.OrderBy)
	assert.Equal(t, " LIMIT $1 OFFSET $2", hq.Page)
	assert.Equal(t, []any{20, 0}, hq.PageArgs)
}

func TestBuildHistoryQuery_TodosLosFiltros(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	hq := buildHistoryQuery(repository.LedgerFilter{
		ProductID: "SKU-1",
		From:      &from,
		To:        &to,
		Causes:    []string{"sale", "damaged"},
		Reference: "OC-7",
		SortField: repository.SortByQuantity,
		Limit:     50,
		Offset:    100,
	})

	assert.Equal(t, " WHERE product_id = $1 AND ts >= $2 AND ts <= $3 AND cause = ANY($4) AND reference = $5", hq.Where)
	assert.Equal(t, []any{"SKU-1", from, to, []string{"sale", "damaged"}, "OC-7"}, hq.Args)
	assert.Equal(t, " ORDER BY ABS(delta) ASC, id ASC", hq.OrderBy)
	assert.Equal(t, " LIMIT $6 OFFSET $7", hq.Page)
	assert.Len(t, hq.PageArgs, 7)
	assert.Equal(t, 50, hq.PageArgs[5])
	assert.Equal(t, 100, hq.PageArgs[6])
}

func TestBuildHistoryQuery_AnulacionesDeUnMovimiento(t *testing.T) {
	id := "01920000-0000-7000-8000-000000000001"
	hq := buildHistoryQuery(repository.LedgerFilter{ProductID: "SKU-1", ReversesEntryID: id, Limit: 1})

	assert.Equal(t, " WHERE product_id = $1 AND reverses_entry_id = $2::uuid", hq.Where)
	assert.Equal(t, []any{"SKU-1", id}, hq.Args)
	assert.Equal(t, []any{"SKU-1", id, 1, 0}, hq.PageArgs)
}

func TestBuildHistoryQuery_CampoDeOrdenDesconocidoUsaTimestamp(t *testing.T) {
	hq := buildHistoryQuery(repository.LedgerFilter{SortField: "price; DROP TABLE ledger_entries"})
	assert.Equal(t, " ORDER BY ts ASC, id ASC", hq.OrderBy)
}
