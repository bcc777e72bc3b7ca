package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/tiendas-api/internal/application/retail"
	"github.com/jhoicas/tiendas-api/internal/infrastructure/flatfile"
	"github.com/jhoicas/tiendas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tiendas-api/internal/interfaces/http"
	"github.com/jhoicas/tiendas-api/pkg/config"
	"github.com/jhoicas/tiendas-api/pkg/logger"
)

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
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var svc *retail.StoreService
	switch cfg.Storage.Backend {
	case config.BackendDatabase:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de PostgreSQL")
		}
		svc = retail.NewStoreService(
			postgres.NewStoreRepository(pool),
			postgres.NewProductRepository(pool),
			postgres.NewInventoryRepository(pool),
			postgres.NewTxRunner(pool),
			log,
		)
	default:
		db, err := flatfile.OpenOS(flatfile.Paths{
			Stores:    cfg.CSV.StoresPath,
			Inventory: cfg.CSV.InventoryPath,
			Products:  cfg.CSV.ProductsPath,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("abrir archivos de datos")
		}
		svc = retail.NewStoreService(
			flatfile.NewStoreRepository(db),
			flatfile.NewProductRepository(db),
			flatfile.NewInventoryRepository(db),
			flatfile.NewTxRunner(db),
			log,
		)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{StoreService: svc})

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
