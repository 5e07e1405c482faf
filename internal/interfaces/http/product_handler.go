package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/application/inventory"
)

// ProductHandler catálogo de colorantes y productos auxiliares (protegido).
type ProductHandler struct {
	engine *inventory.Engine
}

// NewProductHandler construye el handler.
func NewProductHandler(engine *inventory.Engine) *ProductHandler {
	return &ProductHandler{engine: engine}
}

// Create godoc
// @Summary      Dar de alta un producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string                    true  "colorant | auxiliary"
// @Param        body  body  dto.CreateProductRequest  true  "reference, name, stock_initial, stock_min"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products/{kind} [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.engine.AddProduct(c.UserContext(), inventory.ProductInput{
		Kind:         kind,
		Reference:    in.Reference,
		Name:         in.Name,
		StockInitial: in.StockInitial,
		StockMin:     in.StockMin,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
}

// List godoc
// @Summary      Listar productos de una familia
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "colorant | auxiliary"
// @Success      200   {object}  dto.ListResponse[dto.ProductResponse]
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/{kind} [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return respondError(c, err)
	}
	products := h.engine.ListProducts(kind)
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return c.JSON(dto.NewList(out))
}

// Get godoc
// @Summary      Obtener un producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "colorant | auxiliary"
// @Param        ref   path  string  true  "Referencia"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{kind}/{ref} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return respondError(c, err)
	}
	p, err := h.engine.GetProduct(kind, c.Params("ref"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// UpdateInitialStock godoc
// @Summary      Reemplazar el stock inicial
// @Description  El stock real se recalcula como nuevo inicial menos el total consumido.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string                 true  "colorant | auxiliary"
// @Param        ref   path  string                 true  "Referencia"
// @Param        body  body  dto.StockValueRequest  true  "value"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products/{kind}/{ref}/initial-stock [put]
func (h *ProductHandler) UpdateInitialStock(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.StockValueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.engine.UpdateInitialStock(c.UserContext(), kind, c.Params("ref"), in.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponse(res.Product))
}

// UpdateMinStock godoc
// @Summary      Reemplazar el stock mínimo
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string                 true  "colorant | auxiliary"
// @Param        ref   path  string                 true  "Referencia"
// @Param        body  body  dto.StockValueRequest  true  "value"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/products/{kind}/{ref}/min-stock [put]
func (h *ProductHandler) UpdateMinStock(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.StockValueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.engine.UpdateMinStock(c.UserContext(), kind, c.Params("ref"), in.Value)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toProductResponse(res.Product))
}
