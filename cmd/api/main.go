// @title                       Inventario Ledger API
// @version                     1.0
// @description                 Libro de movimientos de inventario: nodos, eventos y saldos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/inventario-ledger/docs"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/ports"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/report"
	httpRouter "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/inventario-ledger/pkg/config"
	"github.com/jhoicas/inventario-ledger/pkg/logger"
	"github.com/jhoicas/inventario-ledger/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.App.Version)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	// Persistencia: PostgreSQL en despliegues, memoria para desarrollo local.
	var (
		txRunner ports.TxRunner
		repos    ports.Repositories
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		txRunner, repos = store, store.Repositories()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepositories(pool)
	}

	var ledgerMetrics ports.LedgerMetrics = ports.NopMetrics{}
	if cfg.Metrics.Enabled {
		ledgerMetrics = metrics.NewLedger()
	}

	ledgerCfg := inventory.LedgerConfig{
		DefaultEventType: cfg.Ledger.DefaultEventType,
		DefaultStatus:    entity.MovementStatus(cfg.Ledger.DefaultStatus),
		ListDefaultLimit: cfg.Ledger.ListDefaultLimit,
		ListMaxLimit:     cfg.Ledger.ListMaxLimit,
	}

	nodeRegistry := inventory.NewNodeRegistry(txRunner, repos, log)
	movementUC := inventory.NewMovementUseCase(txRunner, repos, ledgerCfg, ledgerMetrics, log)
	balanceUC := inventory.NewBalanceUseCase(repos, ledgerMetrics)
	reportUC := inventory.NewBalanceReportUseCase(balanceUC, map[string]inventory.BalanceRenderer{
		"pdf":  report.NewPDFRenderer(),
		"xlsx": report.NewXLSXRenderer(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(telemetry.Middleware(cfg.Telemetry.ServiceName))
	if cfg.Metrics.Enabled {
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "version": cfg.App.Version})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Nodes:       nodeRegistry,
		Movements:   movementUC,
		Balances:    balanceUC,
		Reports:     reportUC,
		WarehouseUC: usecase.NewWarehouseUseCase(txRunner, repos),
		LocationUC:  usecase.NewLocationUseCase(txRunner, repos),
		SupplierUC:  usecase.NewSupplierUseCase(txRunner, repos),
		CustomerUC:  usecase.NewCustomerUseCase(txRunner, repos),
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log,
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
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre del exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
