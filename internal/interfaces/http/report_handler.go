package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/infrastructure/pdf"
	"github.com/jhoicas/colorstock/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/colorstock/pkg/logger"
)

const mimeSpreadsheetML = "application/vnd.ms-excel"

// ReportHandler reportes de stock, exportación y guardado manual (protegido).
type ReportHandler struct {
	engine *inventory.Engine
	pdf    *pdf.StockReportGenerator
	log    *logger.Logger
	now    func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(engine *inventory.Engine, gen *pdf.StockReportGenerator, log *logger.Logger) *ReportHandler {
	return &ReportHandler{engine: engine, pdf: gen, log: log, now: time.Now}
}

// Stock godoc
// @Summary      Reporte de stock
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ReportRowResponse]
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	return c.JSON(dto.NewList(toReportRows(h.engine.BuildReport())))
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	now := h.now()
	out, err := h.pdf.Generate(c.UserContext(), pdf.StockReportInput{
		Rows:        h.engine.BuildReport(),
		KPIs:        h.engine.KPIs(),
		GeneratedAt: now,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("generar reporte PDF")
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment("rapport-stock", now, "pdf"))
	return c.Send(out)
}

// StockXML godoc
// @Summary      Reporte de stock como hoja de cálculo (SpreadsheetML)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.ms-excel
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock.xml [get]
func (h *ReportHandler) StockXML(c *fiber.Ctx) error {
	out, err := spreadsheet.StockReport(h.engine.BuildReport()).Bytes()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeSpreadsheetML)
	c.Set(fiber.HeaderContentDisposition, attachment("rapport-stock", h.now(), "xml"))
	return c.Send(out)
}

// Export godoc
// @Summary      Exportar el inventario completo (SpreadsheetML)
// @Description  Hojas colorants, produits auxiliaires, consommation y commandes con sus columnas derivadas.
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.ms-excel
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/snapshot/export.xml [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	out, err := spreadsheet.FullWorkbook(h.engine.Snapshot()).Bytes()
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeSpreadsheetML)
	c.Set(fiber.HeaderContentDisposition, attachment("inventaire", h.now(), "xml"))
	return c.Send(out)
}

// Flush godoc
// @Summary      Reintentar el guardado
// @Description  Persiste el estado en memoria tras una falla de almacenamiento, sin repetir operaciones.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FlushResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/snapshot/flush [post]
func (h *ReportHandler) Flush(c *fiber.Ctx) error {
	if err := h.engine.Flush(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FlushResponse{Dirty: false, Message: "inventario guardado"})
}

func attachment(name string, at time.Time, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s-%s.%s"`, name, at.Format("20060102"), ext)
}
