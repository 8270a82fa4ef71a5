package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// SettingsHandler umbrales de alerta.
type SettingsHandler struct {
	handlerBase
	uc *inventory.AlertSettingsUseCase
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *inventory.AlertSettingsUseCase, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{handlerBase: handlerBase{log: log}, uc: uc}
}

// GetAlerts godoc
// @Summary      Umbrales de alerta vigentes
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Producto (vacío = global)"
// @Success      200  {object}  dto.AlertSettingsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/alerts [get]
func (h *SettingsHandler) GetAlerts(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.UserContext(), c.Query("product_id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.FromAlertSettings(s))
}

// UpdateAlerts godoc
// @Summary      Actualizar umbrales de alerta
// @Description  Requiere 0 <= critical_threshold <= low_threshold. product_id vacío = global.
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlertSettingsRequest  true  "umbrales y notificaciones"
// @Success      200   {object}  dto.AlertSettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/settings/alerts [put]
func (h *SettingsHandler) UpdateAlerts(c *fiber.Ctx) error {
	var in dto.AlertSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	s, err := h.uc.UpdateFromRequest(c.UserContext(), GetActorID(c), in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(dto.FromAlertSettings(*s))
}
