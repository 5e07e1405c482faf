package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/application/inventory"
)

// ConsumptionHandler ledger de consumos (protegido).
type ConsumptionHandler struct {
	engine       *inventory.Engine
	historyLimit int
}

// NewConsumptionHandler construye el handler; historyLimit es el tamaño por defecto del historial.
func NewConsumptionHandler(engine *inventory.Engine, historyLimit int) *ConsumptionHandler {
	return &ConsumptionHandler{engine: engine, historyLimit: historyLimit}
}

// Record godoc
// @Summary      Registrar un consumo
// @Description  Rechaza la operación si la cantidad supera el stock real del producto.
// @Tags         consumptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordConsumptionRequest  true  "kind, product_ref, date (AAAA-MM-DD), qty"
// @Success      201   {object}  dto.ConsumptionResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/consumptions [post]
func (h *ConsumptionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	kind, err := parseKind(in.Kind)
	if err != nil {
		return respondError(c, err)
	}
	res, err := h.engine.RecordConsumption(c.UserContext(), inventory.ConsumptionInput{
		Kind:       kind,
		ProductRef: in.ProductRef,
		Date:       in.Date,
		Qty:        in.Qty,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toConsumptionResult(res))
}

// History godoc
// @Summary      Historial reciente de consumos
// @Description  Más recientes primero. limit=0 devuelve todo el historial.
// @Tags         consumptions
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad máxima (por defecto HISTORY_LIMIT)"
// @Success      200    {object}  dto.ListResponse[dto.ConsumptionResponse]
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/consumptions [get]
func (h *ConsumptionHandler) History(c *fiber.Ctx) error {
	limit, err := intQuery(c, "limit", h.historyLimit)
	if err != nil {
		return respondError(c, err)
	}
	entries := h.engine.RecentHistory(limit)
	out := make([]dto.ConsumptionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toConsumptionResponse(e.ConsumptionRecord, e.Name))
	}
	return c.JSON(dto.NewList(out))
}

// Update godoc
// @Summary      Modificar un consumo
// @Description  Recalcula el stock real desde todo el ledger.
// @Tags         consumptions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID del consumo"
// @Param        body  body  dto.UpdateConsumptionRequest  true  "date, qty"
// @Success      200   {object}  dto.ConsumptionResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/consumptions/{id} [put]
func (h *ConsumptionHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.engine.EditConsumption(c.UserContext(), int64(id), in.Date, in.Qty)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toConsumptionResult(res))
}

// Delete godoc
// @Summary      Eliminar un consumo
// @Tags         consumptions
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del consumo"
// @Success      200  {object}  dto.ConsumptionResultResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/consumptions/{id} [delete]
func (h *ConsumptionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	res, err := h.engine.DeleteConsumption(c.UserContext(), int64(id))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toConsumptionResult(res))
}
