package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	inv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain/repository"
)

// Paginación del historial.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage mantiene (page-1)*pageSize lejos de desbordar el offset.
	MaxPage = 1_000_000
)

// HistoryUseCase consulta de solo lectura del libro de stock (sin bloqueos).
type HistoryUseCase struct {
	entryRepo repository.LedgerEntryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(entryRepo repository.LedgerEntryRepository) *HistoryUseCase {
	return &HistoryUseCase{entryRepo: entryRepo}
}

// Query aplica filtros conjuntivos, orden y paginación. Empates se desempatan por ID
// de movimiento en la misma dirección del orden.
func (uc *HistoryUseCase) Query(ctx context.Context, q HistoryQuery) (*HistoryPage, error) {
	filter, page, pageSize, err := buildFilter(q)
	if err != nil {
		return nil, err
	}
	entries, total, err := uc.entryRepo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*entity.LedgerEntry{}
	}
	return &HistoryPage{
		Entries:    entries,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// GetEntry devuelve un movimiento o ErrEntryNotFound.
func (uc *HistoryUseCase) GetEntry(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	e, err := uc.entryRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrEntryNotFound
	}
	return e, nil
}

func buildFilter(q HistoryQuery) (repository.LedgerFilter, int, int, error) {
	if q.StartDate != nil && q.EndDate != nil && q.StartDate.After(*q.EndDate) {
		return repository.LedgerFilter{}, 0, 0, fmt.Errorf("%w: startDate posterior a endDate", domain.ErrInvalidInput)
	}

	var causes []string
	for _, code := range q.Causes {
		if strings.TrimSpace(code) == "" {
			continue
		}
		c, err := inv.ParseCause(code)
		if err != nil {
			return repository.LedgerFilter{}, 0, 0, err
		}
		causes = append(causes, c.Code())
	}

	sortField := strings.ToLower(strings.TrimSpace(q.SortField))
	switch sortField {
	case "":
		sortField = repository.SortByTimestamp
	case repository.SortByTimestamp, repository.SortByQuantity, repository.SortByProduct, repository.SortByCause:
	default:
		return repository.LedgerFilter{}, 0, 0, fmt.Errorf("%w: sortField %q", domain.ErrInvalidInput, q.SortField)
	}

	desc := true
	switch strings.ToLower(strings.TrimSpace(q.SortOrder)) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return repository.LedgerFilter{}, 0, 0, fmt.Errorf("%w: sortOrder %q", domain.ErrInvalidInput, q.SortOrder)
	}

	page := q.Page
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		return repository.LedgerFilter{}, 0, 0, fmt.Errorf("%w: page supera %d", domain.ErrInvalidInput, MaxPage)
	}
	pageSize := q.PageSize
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	start, end := q.StartDate, q.EndDate
	if start != nil {
		t := normalizeTime(*start)
		start = &t
	}
	if end != nil {
		t := normalizeTime(*end)
		end = &t
	}

	return repository.LedgerFilter{
		ProductID: strings.TrimSpace(q.ProductID),
		From:      start,
		To:        end,
		Causes:    causes,
		Reference: normalizeText(q.Reference),
		SortField: sortField,
		SortDesc:  desc,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}, page, pageSize, nil
}
