package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// LedgerEntryRepo implementación de LedgerEntryRepository sobre PostgreSQL.
// La tabla ledger_entries rechaza UPDATE y DELETE mediante trigger.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

const entryColumns = `id::text, product_id, COALESCE(batch_id::text, ''), ts, cause, polarity, delta,
	previous_stock, new_stock, min_quantity, unit, reason, COALESCE(reference, ''), actor_id,
	COALESCE(reverses_entry_id::text, '')`

func scanEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	err := row.Scan(
		&e.ID, &e.ProductID, &e.BatchID, &e.Timestamp, &e.Cause, &e.Polarity, &e.Delta,
		&e.PreviousStock, &e.NewStock, &e.MinQuantity, &e.Unit, &e.Reason, &e.Reference, &e.ActorID,
		&e.ReversesEntryID,
	)
	if err != nil {
		return nil, err
	}
	e.Timestamp = e.Timestamp.UTC()
	return &e, nil
}

// Append inserta un movimiento.
func (r *LedgerEntryRepo) Append(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (
			id, product_id, batch_id, ts, cause, polarity, delta,
			previous_stock, new_stock, min_quantity, unit, reason, reference, actor_id,
			reverses_entry_id
		) VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), $14,
			NULLIF($15, '')::uuid)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.ProductID, e.BatchID, e.Timestamp, e.Cause, e.Polarity, e.Delta,
		e.PreviousStock, e.NewStock, e.MinQuantity, e.Unit, e.Reason, e.Reference, e.ActorID,
		e.ReversesEntryID,
	)
	return classify("append ledger entry", err)
}

// GetByID obtiene un movimiento; nil si no existe o el id no es un UUID.
func (r *LedgerEntryRepo) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE id = $1::uuid`
	e, err := scanEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get ledger entry", err)
	}
	return e, nil
}

// Query devuelve la página pedida y el total de coincidencias.
func (r *LedgerEntryRepo) Query(ctx context.Context, f repository.LedgerFilter) ([]*entity.LedgerEntry, int, error) {
	hq := buildHistoryQuery(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ledger_entries`+hq.Where, hq.Args...).Scan(&total); err != nil {
		return nil, 0, classify("count ledger entries", err)
	}
	if total == 0 {
		return []*entity.LedgerEntry{}, 0, nil
	}

	query := `SELECT ` + entryColumns + ` FROM ledger_entries` + hq.Where + hq.OrderBy + hq.Page
	entries, err := r.collect(ctx, query, hq.PageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListByProduct todos los movimientos del producto en orden cronológico.
func (r *LedgerEntryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE product_id = $1 ORDER BY ts ASC, id ASC`
	return r.collect(ctx, query, productID)
}

func (r *LedgerEntryRepo) collect(ctx context.Context, query string, args ...any) ([]*entity.LedgerEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, classify("query ledger entries", err)
	}
	defer rows.Close()

	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, classify("scan ledger entry", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("query ledger entries", err)
	}
	return list, nil
}

// historyQuery fragmentos SQL del historial. Args sirve al conteo; PageArgs agrega LIMIT/OFFSET.
type historyQuery struct {
	Where    string
	OrderBy  string
	Page     string
	Args     []any
	PageArgs []any
}

var sortColumns = map[string]string{
	repository.SortByTimestamp: "ts",
	repository.SortByQuantity:  "ABS(delta)",
	repository.SortByProduct:   "product_id",
	repository.SortByCause:     "cause",
}

// buildHistoryQuery arma WHERE/ORDER BY/LIMIT parametrizados. Los campos de orden salen de
// una lista cerrada; nunca se interpola texto del cliente.
func buildHistoryQuery(f repository.LedgerFilter) historyQuery {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.From != nil {
		add("ts >= $%d", *f.From)
	}
	if f.To != nil {
		add("ts <= $%d", *f.To)
	}
	if len(f.Causes) > 0 {
		add("cause = ANY($%d)", f.Causes)
	}
	if f.Reference != "" {
		add("reference = $%d", f.Reference)
	}
	if f.ReversesEntryID != "" {
		add("reverses_entry_id = $%d::uuid", f.ReversesEntryID)
	}

	hq := historyQuery{Args: args}
	if len(conds) > 0 {
		hq.Where = " WHERE " + strings.Join(conds, " AND ")
	}

	col, ok := sortColumns[f.SortField]
	if !ok {
		col = "ts"
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	hq.OrderBy = fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	hq.PageArgs = append(append([]any{}, args...), limit, f.Offset)
	hq.Page = fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	return hq
}
