package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Almacen-api/docs"
	"github.com/jhoicas/Almacen-api/internal/application/documents"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// @title                       Almacén API
// @version                     1.0
// @description                 Documentos de almacén: entradas, salidas, inventarios y reportes de ocupación.
// @BasePath                    /
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
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner documents.TxRunner
		cleanup  = func() {}
	)
	switch cfg.App.StorageDriver {
	case "memory":
		store := memory.NewStore()
		if cfg.App.SeedFile != "" {
			var seed dto.CatalogSeed
			if err := config.LoadFixture(cfg.App.SeedFile, &seed); err != nil {
				log.Fatal().Err(err).Msg("leer catálogo semilla")
			}
			res, err := documents.NewCatalogUseCase(store).Load(ctx, seed)
			if err != nil {
				log.Fatal().Err(err).Msg("cargar catálogo semilla")
			}
			log.Info().Interface("catalog", res).Str("file", cfg.App.SeedFile).Msg("catálogo cargado en memoria")
		}
		txRunner = store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		cleanup = pool.Close
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		txRunner = postgres.NewTxRunner(pool)
	}
	defer cleanup()

	engineCfg := documents.Config{
		RackCeiling:       cfg.Warehouse.RackCeiling,
		NumberRetries:     cfg.Warehouse.NumberRetries,
		LowStockThreshold: cfg.Warehouse.LowStockThreshold,
	}
	var opts []documents.Option
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector("almacen")
		opts = append(opts, documents.WithMetrics(collector))
	}

	documentUC := documents.NewDocumentUseCase(txRunner, engineCfg, log.Component("documents"), opts...)
	reportUC := documents.NewReportUseCase(txRunner, engineCfg)
	exportUC := documents.NewExportUseCase(documentUC, reportUC, xlsx.NewExporter(), infrapdf.NewMarotoRenderer(cfg.App.Name))
	employeeUC := documents.NewEmployeeUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	if collector != nil {
		app.Use(httpRouter.RequestMetrics(collector))
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(collector.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.StorageDriver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Documents: documentUC,
		Reports:   reportUC,
		Exports:   exportUC,
		Employees: employeeUC,
		Logger:    log.Component("http"),
		JWTSecret: cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
