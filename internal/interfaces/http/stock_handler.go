package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	inv "github.com/jhoicas/stock-ledger/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// StockHandler ajustes, anulaciones e historial del libro de stock (protegido).
type StockHandler struct {
	handlerBase
	adjust  *inventory.AdjustStockUseCase
	history *inventory.HistoryUseCase
	status  *inventory.StockStatusUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	adjust *inventory.AdjustStockUseCase,
	history *inventory.HistoryUseCase,
	status *inventory.StockStatusUseCase,
	log *logger.Logger,
) *StockHandler {
	return &StockHandler{handlerBase: handlerBase{log: log}, adjust: adjust, history: history, status: status}
}

// Adjust godoc
// @Summary      Registrar ajuste de stock
// @Description  Aplica un ajuste individual. quantity es positiva; la causa define si suma o resta.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustmentRequest  true  "product_id, cause, quantity, reason, reference"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	entry, err := h.adjust.ApplyFromRequest(c.UserContext(), GetActorID(c), in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLedgerEntry(entry))
}

// AdjustBatch godoc
// @Summary      Registrar lote de ajustes
// @Description  Valida todos los ítems antes de aplicar; si alguno falla no se aplica ninguno y se listan todos los fallidos.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchAdjustmentRequest  true  "items y valores compartidos"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments/batch [post]
func (h *StockHandler) AdjustBatch(c *fiber.Ctx) error {
	var in dto.BatchAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.adjust.ApplyBatchFromRequest(c.UserContext(), GetActorID(c), in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BatchResponse{
		BatchID: res.BatchID,
		Entries: dto.FromLedgerEntries(res.Entries),
	})
}

// Reverse godoc
// @Summary      Anular movimiento
// @Description  Registra un ajuste compensatorio con referencia al movimiento original.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del movimiento"
// @Param        body  body  dto.ReverseRequest  true  "reason"
// @Success      201   {object}  dto.LedgerEntryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/stock/entries/{id}/reverse [post]
func (h *StockHandler) Reverse(c *fiber.Ctx) error {
	var in dto.ReverseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	entry, err := h.adjust.Reverse(c.UserContext(), inventory.ReverseInput{
		EntryID: c.Params("id"),
		Reason:  in.Reason,
		ActorID: GetActorID(c),
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLedgerEntry(entry))
}

// GetEntry godoc
// @Summary      Obtener movimiento por ID
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/entries/{id} [get]
func (h *StockHandler) GetEntry(c *fiber.Ctx) error {
	entry, err := h.history.GetEntry(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.FromLedgerEntry(entry))
}

// History godoc
// @Summary      Historial de ajustes
// @Description  Filtros opcionales y conjuntivos. Fechas RFC3339 o YYYY-MM-DD (inclusivas).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        start_date  query  string  false  "Desde (inclusive)"
// @Param        end_date    query  string  false  "Hasta (inclusive)"
// @Param        cause       query  string  false  "Causas separadas por coma"
// @Param        reference   query  string  false  "Referencia externa"
// @Param        sort_field  query  string  false  "timestamp | quantity | product_id | cause"
// @Param        sort_order  query  string  false  "desc | asc"
// @Param        page        query  int     false  "Página (desde 1)"
// @Param        page_size   query  int     false  "Tamaño de página (1-100, defecto 20)"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	q := inventory.HistoryQuery{
		ProductID: c.Query("product_id"),
		Reference: c.Query("reference"),
		SortField: c.Query("sort_field"),
		SortOrder: c.Query("sort_order"),
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("page_size", inventory.DefaultPageSize),
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("cause") {
		for _, code := range strings.Split(string(raw), ",") {
			if code = strings.TrimSpace(code); code != "" {
				q.Causes = append(q.Causes, code)
			}
		}
	}
	var err error
	if q.StartDate, err = parseDateParam(c.Query("start_date"), false); err != nil {
		return badRequest(c, "INVALID_DATE", "start_date inválida")
	}
	if q.EndDate, err = parseDateParam(c.Query("end_date"), true); err != nil {
		return badRequest(c, "INVALID_DATE", "end_date inválida")
	}

	page, err := h.history.Query(c.UserContext(), q)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.HistoryResponse{
		Entries:    dto.FromLedgerEntries(page.Entries),
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.PageSize,
	})
}

// Units godoc
// @Summary      Unidades soportadas y paso mínimo por defecto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UnitResponse
// @Router       /api/stock/units [get]
func (h *StockHandler) Units(c *fiber.Ctx) error {
	units := inv.Units()
	out := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, dto.UnitResponse{
			Code:               string(u),
			Fractional:         u.Fractional(),
			DefaultMinQuantity: inv.DefaultMinQuantity(u),
		})
	}
	return c.JSON(out)
}

// Causes godoc
// @Summary      Catálogo de causas de ajuste
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CauseResponse
// @Router       /api/stock/causes [get]
func (h *StockHandler) Causes(c *fiber.Ctx) error {
	causes := inv.Causes()
	out := make([]dto.CauseResponse, 0, len(causes))
	for _, cause := range causes {
		out = append(out, dto.CauseResponse{
			Code:              cause.Code(),
			Polarity:          string(cause.Polarity()),
			RequiresReference: cause.RequiresReference(),
			Label:             cause.Label(),
		})
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Productos que requieren atención
// @Description  Productos en estado low, critical u out_of_stock, del más grave al menos grave.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (1-100, defecto 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.AttentionListResponse
// @Router       /api/stock/alerts [get]
func (h *StockHandler) Alerts(c *fiber.Ctx) error {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	views, total, err := h.status.ListAttention(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return h.writeError(c, err)
	}
	items := make([]dto.StockStatusResponse, 0, len(views))
	for _, v := range views {
		items = append(items, statusResponse(v))
	}
	return c.JSON(dto.AttentionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	})
}

func statusResponse(v inventory.StockStatusView) dto.StockStatusResponse {
	return dto.StockStatusResponse{
		ProductID:         v.Record.ProductID,
		Unit:              v.Record.Unit,
		Stock:             v.Record.Stock,
		Status:            string(v.Status),
		LowThreshold:      v.Settings.LowThreshold,
		CriticalThreshold: v.Settings.CriticalThreshold,
	}
}

// parseDateParam acepta RFC3339 o YYYY-MM-DD. Una fecha sin hora como límite superior
// cubre el día completo.
func parseDateParam(s string, endOfDay bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Microsecond)
	}
	return &t, nil
}
