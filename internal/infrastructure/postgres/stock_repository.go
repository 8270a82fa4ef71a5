package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, unit, min_quantity, stock, version, created_at, updated_at`

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	if err := row.Scan(&s.ProductID, &s.Unit, &s.MinQuantity, &s.Stock, &s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}

// Get obtiene el registro de stock de un producto; nil si no existe.
func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1`
	s, err := scanStock(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get stock", err)
	}
	return s, nil
}

// GetForUpdate obtiene el registro y bloquea la fila hasta el fin de la tx (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get stock for update", err)
	}
	return s, nil
}

// Create inserta un registro nuevo; ErrDuplicate si el producto ya existe.
func (r *StockRepo) Create(ctx context.Context, rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (product_id, unit, min_quantity, stock, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		rec.ProductID, rec.Unit, rec.MinQuantity, rec.Stock, rec.Version, rec.CreatedAt, rec.UpdatedAt,
	)
	return classify("create stock record", err)
}

// UpdateStock escribe el stock si la versión coincide e incrementa la versión.
func (r *StockRepo) UpdateStock(ctx context.Context, productID string, stock decimal.Decimal, expectedVersion int64) error {
	query := `
		UPDATE stock_records
		SET stock = $2, version = version + 1, updated_at = now()
		WHERE product_id = $1 AND version = $3`
	tag, err := r.q.Exec(ctx, query, productID, stock, expectedVersion)
	if err != nil {
		return classify("update stock", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock %s: %w", productID, domain.ErrConcurrencyConflict)
	}
	return nil
}

// UpdatePolicy cambia unidad y paso mínimo.
func (r *StockRepo) UpdatePolicy(ctx context.Context, productID, unit string, minQuantity decimal.Decimal) error {
	query := `
		UPDATE stock_records
		SET unit = $2, min_quantity = $3, version = version + 1, updated_at = now()
		WHERE product_id = $1`
	tag, err := r.q.Exec(ctx, query, productID, unit, minQuantity)
	if err != nil {
		return classify("update policy", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List devuelve registros ordenados por product_id y el total.
func (r *StockRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockRecord, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_records`).Scan(&total); err != nil {
		return nil, 0, classify("count stock records", err)
	}
	query := `SELECT ` + stockColumns + ` FROM stock_records ORDER BY product_id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, classify("list stock records", err)
	}
	defer rows.Close()

	list := make([]*entity.StockRecord, 0, limit)
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, 0, classify("scan stock record", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("list stock records", err)
	}
	return list, total, nil
}
