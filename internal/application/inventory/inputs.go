package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// AdjustmentInput entrada de un ajuste individual. Quantity es siempre una magnitud positiva;
// la causa determina si suma o resta.
type AdjustmentInput struct {
	ProductID string
	Cause     string
	Quantity  decimal.Decimal
	Reason    string
	Reference string
	ActorID   string
}

// BatchItemInput ítem de un lote. Cause, Reason y Reference vacíos heredan los compartidos.
type BatchItemInput struct {
	ProductID string
	Cause     string
	Quantity  decimal.Decimal
	Reason    string
	Reference string
}

// BatchInput lote de ajustes aplicado como una sola unidad (todo o nada).
type BatchInput struct {
	Items           []BatchItemInput
	SharedCause     string
	SharedReason    string
	SharedReference string
	ActorID         string
}

// BatchResult movimientos creados por un lote, en el orden de los ítems.
type BatchResult struct {
	BatchID string
	Entries []*entity.LedgerEntry
}

// ReverseInput anulación de un movimiento mediante un movimiento compensatorio.
type ReverseInput struct {
	EntryID string
	Reason  string
	ActorID string
}

// RegisterProductInput alta del registro de stock de un producto.
// MinQuantity nil = paso por defecto de la unidad.
type RegisterProductInput struct {
	ProductID    string
	Unit         string
	MinQuantity  *decimal.Decimal
	InitialStock decimal.Decimal
	ActorID      string
}

// UpdatePolicyInput cambio de unidad/paso mínimo hacia adelante.
type UpdatePolicyInput struct {
	ProductID   string
	Unit        string
	MinQuantity *decimal.Decimal
}

// HistoryQuery consulta paginada del historial. Todos los filtros son opcionales y conjuntivos.
type HistoryQuery struct {
	ProductID string
	StartDate *time.Time
	EndDate   *time.Time
	Causes    []string
	Reference string
	SortField string // timestamp (defecto), quantity, product_id, cause
	SortOrder string // desc (defecto), asc
	Page      int    // 1..n
	PageSize  int    // 1..100, defecto 20
}

// HistoryPage resultado de una consulta de historial.
type HistoryPage struct {
	Entries    []*entity.LedgerEntry
	TotalCount int
	TotalPages int
	Page       int
	PageSize   int
}

// UpdateAlertSettingsInput actualización de umbrales (Scope vacío = global).
type UpdateAlertSettingsInput struct {
	Scope             string
	LowThreshold      decimal.Decimal
	CriticalThreshold decimal.Decimal
	NotifyLow         bool
	NotifyCritical    bool
	NotifyOutOfStock  bool
	ActorID           string
}

// normalizeText recorta espacios y normaliza a NFC el texto libre que queda en la auditoría.
func normalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// adjustmentRequest ítem ya resuelto (herencia de campos compartidos y texto normalizado).
type adjustmentRequest struct {
	ProductID string
	Cause     string
	Quantity  decimal.Decimal
	Reason    string
	Reference string

	// reverses solo lo fija Reverse; no llega desde el exterior.
	reverses string
}

func requestFromInput(in AdjustmentInput) adjustmentRequest {
	return adjustmentRequest{
		ProductID: strings.TrimSpace(in.ProductID),
		Cause:     in.Cause,
		Quantity:  in.Quantity,
		Reason:    normalizeText(in.Reason),
		Reference: normalizeText(in.Reference),
	}
}

func requestsFromBatch(in BatchInput) []adjustmentRequest {
	reqs := make([]adjustmentRequest, 0, len(in.Items))
	for _, item := range in.Items {
		r := adjustmentRequest{
			ProductID: strings.TrimSpace(item.ProductID),
			Cause:     item.Cause,
			Quantity:  item.Quantity,
			Reason:    normalizeText(item.Reason),
			Reference: normalizeText(item.Reference),
		}
		if strings.TrimSpace(r.Cause) == "" {
			r.Cause = in.SharedCause
		}
		if r.Reason == "" {
			r.Reason = normalizeText(in.SharedReason)
		}
		if r.Reference == "" {
			r.Reference = normalizeText(in.SharedReference)
		}
		reqs = append(reqs, r)
	}
	return reqs
}
