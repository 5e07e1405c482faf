package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/domain/entity"
)

// OrderHandler pedidos de reposición (protegido).
type OrderHandler struct {
	engine *inventory.Engine
}

// NewOrderHandler construye el handler.
func NewOrderHandler(engine *inventory.Engine) *OrderHandler {
	return &OrderHandler{engine: engine}
}

// Create godoc
// @Summary      Crear un pedido
// @Description  Un pedido creado como PROCESSED toma hoy como fecha de salida.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "reference, color_code, date_in, status, note"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	status, err := parseStatus(in.Status)
	if err != nil {
		return respondError(c, err)
	}
	o, err := h.engine.CreateOrder(c.UserContext(), inventory.OrderInput{
		Reference: in.Reference,
		ColorCode: in.ColorCode,
		DateIn:    in.DateIn,
		Status:    status,
		Note:      in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(o))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "PENDING | PROCESSED | CANCELLED"
// @Success      200  {object}  dto.ListResponse[dto.OrderResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders := h.engine.ListOrders()
	if raw := c.Query("status"); raw != "" {
		status, err := parseStatus(raw)
		if err != nil {
			return respondError(c, err)
		}
		orders = statusFilter(orders, status)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return c.JSON(dto.NewList(out))
}

// Get godoc
// @Summary      Obtener un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "Referencia del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{ref} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, err := h.engine.GetOrder(c.Params("ref"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(o))
}

// Update godoc
// @Summary      Modificar un pedido
// @Description  Solo se permiten las transiciones PENDING → PROCESSED y PENDING → CANCELLED.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ref   path  string                  true  "Referencia del pedido"
// @Param        body  body  dto.UpdateOrderRequest  true  "campos a modificar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/orders/{ref} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	patch := inventory.OrderPatch{
		ColorCode: in.ColorCode,
		DateIn:    in.DateIn,
		DateOut:   in.DateOut,
		Note:      in.Note,
	}
	if in.Status != nil {
		status, err := parseStatus(*in.Status)
		if err != nil {
			return respondError(c, err)
		}
		patch.Status = &status
	}
	o, err := h.engine.UpdateOrder(c.UserContext(), c.Params("ref"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toOrderResponse(o))
}

// MarkProcessed godoc
// @Summary      Marcar un pedido como procesado
// @Description  Fecha de salida = hoy. Si ya estaba procesado responde already=true sin cambios.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "Referencia del pedido"
// @Success      200  {object}  dto.OrderTransitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/orders/{ref}/processed [post]
func (h *OrderHandler) MarkProcessed(c *fiber.Ctx) error {
	tr, err := h.engine.MarkProcessed(c.UserContext(), c.Params("ref"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OrderTransitionResponse{Order: toOrderResponse(tr.Order), Already: tr.Already})
}

// Cancel godoc
// @Summary      Anular un pedido pendiente
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        ref  path  string  true  "Referencia del pedido"
// @Success      200  {object}  dto.OrderTransitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/orders/{ref}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	tr, err := h.engine.CancelOrder(c.UserContext(), c.Params("ref"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OrderTransitionResponse{Order: toOrderResponse(tr.Order), Already: tr.Already})
}

// Delete godoc
// @Summary      Eliminar un pedido
// @Tags         orders
// @Security     Bearer
// @Param        ref  path  string  true  "Referencia del pedido"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/orders/{ref} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.engine.DeleteOrder(c.UserContext(), c.Params("ref")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Statistics godoc
// @Summary      Estadísticas de pedidos
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderStatisticsResponse
// @Router       /api/orders/statistics [get]
func (h *OrderHandler) Statistics(c *fiber.Ctx) error {
	s := h.engine.Statistics()
	return c.JSON(dto.OrderStatisticsResponse{Total: s.Total, Processed: s.Processed, Rate: s.Rate})
}

// statusFilter aplica ?status= sobre el listado.
func statusFilter(orders []*entity.Order, status entity.OrderStatus) []*entity.Order {
	out := orders[:0]
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
