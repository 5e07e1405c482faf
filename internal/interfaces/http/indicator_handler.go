package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/application/inventory"
)

// IndicatorHandler alertas e indicadores del tablero (protegido).
type IndicatorHandler struct {
	engine *inventory.Engine
}

// NewIndicatorHandler construye el handler.
func NewIndicatorHandler(engine *inventory.Engine) *IndicatorHandler {
	return &IndicatorHandler{engine: engine}
}

// Alerts godoc
// @Summary      Productos bajo stock mínimo
// @Description  Lista vacía = sin alertas. Colorantes primero.
// @Tags         indicators
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.AlertResponse]
// @Router       /api/alerts [get]
func (h *IndicatorHandler) Alerts(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(toAlerts(h.engine.ActiveAlerts())))
}

// TopConsumption godoc
// @Summary      Ranking de consumo total
// @Description  Prioridad por puesto: 1-3 alta, 4-7 media, resto baja.
// @Tags         indicators
// @Security     Bearer
// @Produce      json
// @Param        n  query  int  false  "Tamaño del ranking (por defecto TOP_CONSUMPTION)"
// @Success      200  {object}  dto.ListResponse[dto.ConsumptionRankResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/indicators/top [get]
func (h *IndicatorHandler) TopConsumption(c *fiber.Ctx) error {
	n, err := intQuery(c, "n", 0)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewList(toRanks(h.engine.TopConsumption(n))))
}

// KPIs godoc
// @Summary      Indicadores de pedidos
// @Tags         indicators
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.KPIResponse
// @Router       /api/indicators/kpis [get]
func (h *IndicatorHandler) KPIs(c *fiber.Ctx) error {
	k := h.engine.KPIs()
	return c.JSON(dto.KPIResponse{Total: k.Total, Processed: k.Processed, Rate: k.Rate, RatePercent: k.RatePercent})
}
