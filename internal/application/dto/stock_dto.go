package dto

import (
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AdjustmentRequest body para POST /api/stock/adjustments.
// quantity es una magnitud positiva; la causa define si suma o resta.
type AdjustmentRequest struct {
	ProductID string          `json:"product_id"`
	Cause     string          `json:"cause"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason"`
	Reference string          `json:"reference,omitempty"`
}

// BatchItemRequest ítem de un lote; cause/reason/reference vacíos heredan los del lote.
type BatchItemRequest struct {
	ProductID string          `json:"product_id"`
	Cause     string          `json:"cause,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Reason    string          `json:"reason,omitempty"`
	Reference string          `json:"reference,omitempty"`
}

// BatchAdjustmentRequest body para POST /api/stock/adjustments/batch.
type BatchAdjustmentRequest struct {
	Items     []BatchItemRequest `json:"items"`
	Cause     string             `json:"cause,omitempty"`
	Reason    string             `json:"reason,omitempty"`
	Reference string             `json:"reference,omitempty"`
}

// ReverseRequest body para POST /api/stock/entries/{id}/reverse.
type ReverseRequest struct {
	Reason string `json:"reason"`
}

// LedgerEntryResponse movimiento del libro.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	BatchID       string          `json:"batch_id,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	Cause         string          `json:"cause"`
	Polarity      string          `json:"polarity"`
	Quantity      decimal.Decimal `json:"quantity"`
	Delta         decimal.Decimal `json:"delta"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	MinQuantity   decimal.Decimal `json:"min_quantity"`
	Unit          string          `json:"unit"`
	Reason        string          `json:"reason"`
	Reference     string          `json:"reference,omitempty"`
	ActorID       string          `json:"actor_id"`

	ReversesEntryID string `json:"reverses_entry_id,omitempty"`
}

// FromLedgerEntry mapea la entidad a la respuesta.
func FromLedgerEntry(e *entity.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:            e.ID,
		ProductID:     e.ProductID,
		BatchID:       e.BatchID,
		Timestamp:     e.Timestamp,
		Cause:         e.Cause,
		Polarity:      e.Polarity,
		Quantity:      e.Quantity(),
		Delta:         e.Delta,
		PreviousStock: e.PreviousStock,
		NewStock:      e.NewStock,
		MinQuantity:   e.MinQuantity,
		Unit:          e.Unit,
		Reason:        e.Reason,
		Reference:     e.Reference,
		ActorID:       e.ActorID,

		ReversesEntryID: e.ReversesEntryID,
	}
}

// FromLedgerEntries mapea una lista (nunca nil).
func FromLedgerEntries(list []*entity.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromLedgerEntry(e))
	}
	return out
}

// BatchResponse resultado de un lote aplicado.
type BatchResponse struct {
	BatchID string                `json:"batch_id"`
	Entries []LedgerEntryResponse `json:"entries"`
}

// HistoryResponse página del historial.
type HistoryResponse struct {
	Entries    []LedgerEntryResponse `json:"entries"`
	TotalCount int                   `json:"total_count"`
	TotalPages int                   `json:"total_pages"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
}

// UnitResponse unidad soportada y su paso mínimo por defecto.
type UnitResponse struct {
	Code               string          `json:"code"`
	Fractional         bool            `json:"fractional"`
	DefaultMinQuantity decimal.Decimal `json:"default_min_quantity"`
}

// CauseResponse entrada del catálogo de causas.
type CauseResponse struct {
	Code              string `json:"code"`
	Polarity          string `json:"polarity"`
	RequiresReference bool   `json:"requires_reference"`
	Label             string `json:"label"`
}
