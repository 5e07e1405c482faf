package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colorstock/internal/application/auth"
	"github.com/jhoicas/colorstock/internal/application/inventory"
	"github.com/jhoicas/colorstock/internal/infrastructure/pdf"
	"github.com/jhoicas/colorstock/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Engine       *inventory.Engine
	AuthUC       *auth.AuthUseCase
	PDF          *pdf.StockReportGenerator
	Logger       *logger.Logger
	JWTSecret    string
	HistoryLimit int
}

// Router registra las rutas de la API.
// Lectura: operator y viewer. Escritura: solo operator.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(auth.RoleOperator, auth.RoleViewer))
	write := RequireRole(auth.RoleOperator)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.Engine)
	products.Get("/:kind", productHandler.List)
	products.Post("/:kind", write, productHandler.Create)
	products.Get("/:kind/:ref", productHandler.Get)
	products.Put("/:kind/:ref/initial-stock", write, productHandler.UpdateInitialStock)
	products.Put("/:kind/:ref/min-stock", write, productHandler.UpdateMinStock)

	consumptions := protected.Group("/consumptions")
	consumptionHandler := NewConsumptionHandler(deps.Engine, deps.HistoryLimit)
	consumptions.Get("/", consumptionHandler.History)
	consumptions.Post("/", write, consumptionHandler.Record)
	consumptions.Put("/:id", write, consumptionHandler.Update)
	consumptions.Delete("/:id", write, consumptionHandler.Delete)

	// statistics antes de /:ref
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.Engine)
	orders.Get("/statistics", orderHandler.Statistics)
	orders.Get("/", orderHandler.List)
	orders.Post("/", write, orderHandler.Create)
	orders.Get("/:ref", orderHandler.Get)
	orders.Put("/:ref", write, orderHandler.Update)
	orders.Delete("/:ref", write, orderHandler.Delete)
	orders.Post("/:ref/processed", write, orderHandler.MarkProcessed)
	orders.Post("/:ref/cancel", write, orderHandler.Cancel)

	indicatorHandler := NewIndicatorHandler(deps.Engine)
	protected.Get("/alerts", indicatorHandler.Alerts)
	protected.Get("/indicators/top", indicatorHandler.TopConsumption)
	protected.Get("/indicators/kpis", indicatorHandler.KPIs)

	reportHandler := NewReportHandler(deps.Engine, deps.PDF, deps.Logger)
	protected.Get("/reports/stock", reportHandler.Stock)
	protected.Get("/reports/stock.pdf", reportHandler.StockPDF)
	protected.Get("/reports/stock.xml", reportHandler.StockXML)
	protected.Get("/snapshot/export.xml", reportHandler.Export)
	protected.Post("/snapshot/flush", write, reportHandler.Flush)
}
