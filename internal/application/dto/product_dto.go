package dto

import (
	"time"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RegisterProductRequest body para POST /api/products.
// min_quantity omitido = paso por defecto de la unidad (0.01 fraccionarias, 1 enteras).
type RegisterProductRequest struct {
	ProductID    string           `json:"product_id"`
	Unit         string           `json:"unit"`
	MinQuantity  *decimal.Decimal `json:"min_quantity,omitempty"`
	InitialStock decimal.Decimal  `json:"initial_stock"`
}

// UpdatePolicyRequest body para PUT /api/products/{id}/policy.
type UpdatePolicyRequest struct {
	Unit        string           `json:"unit"`
	MinQuantity *decimal.Decimal `json:"min_quantity,omitempty"`
}

// StockRecordResponse stock actual de un producto.
type StockRecordResponse struct {
	ProductID   string          `json:"product_id"`
	Unit        string          `json:"unit"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	Stock       decimal.Decimal `json:"stock"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// FromStockRecord mapea la entidad a la respuesta.
func FromStockRecord(r *entity.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ProductID:   r.ProductID,
		Unit:        r.Unit,
		MinQuantity: r.MinQuantity,
		Stock:       r.Stock,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// StockRecordListResponse página de registros.
type StockRecordListResponse struct {
	Items []StockRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// StockStatusResponse estado de severidad de un producto.
type StockStatusResponse struct {
	ProductID         string          `json:"product_id"`
	Unit              string          `json:"unit"`
	Stock             decimal.Decimal `json:"stock"`
	Status            string          `json:"status"`
	LowThreshold      decimal.Decimal `json:"low_threshold"`
	CriticalThreshold decimal.Decimal `json:"critical_threshold"`
}

// AttentionListResponse productos que requieren atención (no sanos).
type AttentionListResponse struct {
	Items []StockStatusResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// AlertSettingsRequest body para PUT /api/settings/alerts.
type AlertSettingsRequest struct {
	ProductID         string          `json:"product_id,omitempty"`
	LowThreshold      decimal.Decimal `json:"low_threshold"`
	CriticalThreshold decimal.Decimal `json:"critical_threshold"`
	NotifyLow         *bool           `json:"notify_low,omitempty"`
	NotifyCritical    *bool           `json:"notify_critical,omitempty"`
	NotifyOutOfStock  *bool           `json:"notify_out_of_stock,omitempty"`
}

// AlertSettingsResponse configuración vigente.
type AlertSettingsResponse struct {
	ProductID         string          `json:"product_id,omitempty"`
	LowThreshold      decimal.Decimal `json:"low_threshold"`
	CriticalThreshold decimal.Decimal `json:"critical_threshold"`
	NotifyLow         bool            `json:"notify_low"`
	NotifyCritical    bool            `json:"notify_critical"`
	NotifyOutOfStock  bool            `json:"notify_out_of_stock"`
	UpdatedBy         string          `json:"updated_by,omitempty"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

// FromAlertSettings mapea la entidad a la respuesta.
func FromAlertSettings(s entity.AlertSettings) AlertSettingsResponse {
	out := AlertSettingsResponse{
		ProductID:         s.Scope,
		LowThreshold:      s.LowThreshold,
		CriticalThreshold: s.CriticalThreshold,
		NotifyLow:         s.NotifyLow,
		NotifyCritical:    s.NotifyCritical,
		NotifyOutOfStock:  s.NotifyOutOfStock,
		UpdatedBy:         s.UpdatedBy,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

// AuditIssueDTO inconsistencia del libro.
type AuditIssueDTO struct {
	EntryID string `json:"entry_id,omitempty"`
	Message string `json:"message"`
}

// VerificationResponse resultado de verificar el libro de un producto.
type VerificationResponse struct {
	ProductID   string          `json:"product_id"`
	Entries     int             `json:"entries"`
	Stock       decimal.Decimal `json:"stock"`
	LedgerStock decimal.Decimal `json:"ledger_stock"`
	Consistent  bool            `json:"consistent"`
	Issues      []AuditIssueDTO `json:"issues"`
}
