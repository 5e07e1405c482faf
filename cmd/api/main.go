package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/colorstock/docs"
	"github.com/jhoicas/colorstock/internal/application/auth"
	"github.com/jhoicas/colorstock/internal/application/inventory"
	infrapdf "github.com/jhoicas/colorstock/internal/infrastructure/pdf"
	"github.com/jhoicas/colorstock/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/colorstock/internal/interfaces/http"
	"github.com/jhoicas/colorstock/pkg/config"
	"github.com/jhoicas/colorstock/pkg/logger"
)

// @title        ColorStock API
// @version      1.0
// @description  Inventario de colorantes y productos auxiliares: consumos, alertas, pedidos e indicadores.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repo, closeStore, err := storage.Open(ctx, cfg, log.Named("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer closeStore()

	engine, err := inventory.Open(ctx, repo,
		inventory.WithLogger(log.Named("inventory")),
		inventory.WithTopConsumption(cfg.Inventory.TopConsumption),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar inventario")
	}

	accounts := []auth.Account{
		{Username: cfg.Auth.OperatorUser, PasswordHash: cfg.Auth.OperatorPasswordHash, Role: auth.RoleOperator},
		{Username: cfg.Auth.ViewerUser, PasswordHash: cfg.Auth.ViewerPasswordHash, Role: auth.RoleViewer},
	}
	if cfg.Auth.OperatorPasswordHash == "" {
		log.Warn().Msg("OPERATOR_PASSWORD_HASH vacío: el login del operador queda deshabilitado")
	}
	authUC := auth.NewAuthUseCase(accounts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ColorStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "dirty": engine.Dirty()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:       engine,
		AuthUC:       authUC,
		PDF:          infrapdf.NewStockReportGenerator(cfg.App.Name),
		Logger:       log.Named("report"),
		JWTSecret:    cfg.JWT.Secret,
		HistoryLimit: cfg.Inventory.HistoryLimit,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := engine.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("guardado final del inventario")
	}

	log.Info().Msg("aplicación detenida")
}
