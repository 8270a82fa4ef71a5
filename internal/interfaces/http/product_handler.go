package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// ProductHandler registro de stock por producto, estado y verificación (protegido).
type ProductHandler struct {
	handlerBase
	products *inventory.ProductStockUseCase
	status   *inventory.StockStatusUseCase
	audit    *inventory.AuditUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(
	products *inventory.ProductStockUseCase,
	status *inventory.StockStatusUseCase,
	audit *inventory.AuditUseCase,
	log *logger.Logger,
) *ProductHandler {
	return &ProductHandler{handlerBase: handlerBase{log: log}, products: products, status: status, audit: audit}
}

// Register godoc
// @Summary      Registrar producto en el libro de stock
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterProductRequest  true  "product_id, unit, min_quantity, initial_stock"
// @Success      201   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if in.ProductID == "" || in.Unit == "" {
		return badRequest(c, "VALIDATION", "product_id y unit son requeridos")
	}
	rec, err := h.products.RegisterFromRequest(c.UserContext(), GetActorID(c), in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromStockRecord(rec))
}

// List godoc
// @Summary      Listar registros de stock
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (1-100, defecto 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.StockRecordListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	list, total, err := h.products.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return h.writeError(c, err)
	}
	items := make([]dto.StockRecordResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.FromStockRecord(r))
	}
	return c.JSON(dto.StockRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	})
}

// GetByID godoc
// @Summary      Obtener stock de un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	rec, err := h.products.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.FromStockRecord(rec))
}

// UpdatePolicy godoc
// @Summary      Cambiar unidad y paso mínimo
// @Description  Aplica a los ajustes futuros; los movimientos existentes conservan su paso.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.UpdatePolicyRequest  true  "unit, min_quantity"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/policy [put]
func (h *ProductHandler) UpdatePolicy(c *fiber.Ctx) error {
	var in dto.UpdatePolicyRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	rec, err := h.products.UpdatePolicy(c.UserContext(), inventory.UpdatePolicyInput{
		ProductID:   c.Params("id"),
		Unit:        in.Unit,
		MinQuantity: in.MinQuantity,
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.FromStockRecord(rec))
}

// Status godoc
// @Summary      Estado de severidad del stock
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/status [get]
func (h *ProductHandler) Status(c *fiber.Ctx) error {
	v, err := h.status.Classify(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(statusResponse(*v))
}

// Verify godoc
// @Summary      Verificar el libro de un producto
// @Description  Reproduce los movimientos y compara con el stock actual.
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.VerificationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/verify [get]
func (h *ProductHandler) Verify(c *fiber.Ctx) error {
	report, err := h.audit.Verify(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	issues := make([]dto.AuditIssueDTO, 0, len(report.Issues))
	for _, is := range report.Issues {
		issues = append(issues, dto.AuditIssueDTO{EntryID: is.EntryID, Message: is.Message})
	}
	return c.JSON(dto.VerificationResponse{
		ProductID:   report.ProductID,
		Entries:     report.Entries,
		Stock:       report.Stock,
		LedgerStock: report.LedgerStock,
		Consistent:  report.Consistent,
		Issues:      issues,
	})
}
