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

	appanalytics "github.com/jhoicas/stock-ledger-api/internal/application/analytics"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// storage repositorios del backend elegido por STORAGE_DRIVER.
type storage struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	receipts  repository.StockReceiptRepository
	sales     repository.SalesRepository
	tx        inventory.TxRunner
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	idem, err := openIdempotencyStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacén de idempotencia")
	}
	defer idem.Close()

	// ── Casos de uso ──────────────────────────────────────────────────────────
	ledger := inventory.NewStockLedger(store.movements, store.receipts, log.Component("ledger"))
	registerMovementUC := inventory.NewRegisterMovementUseCase(store.tx, ledger, store.products, store.receipts, nil, log.Component("movements"))
	stockQueryUC := inventory.NewStockQueryUseCase(ledger, store.movements, store.products, nil)
	receiptUC := inventory.NewReceiptUseCase(store.receipts, nil)

	valuation := appanalytics.NewValuationService(store.movements, store.products)
	tradeAccountUC := appanalytics.NewTradeAccountUseCase(valuation, store.sales)
	cashUpUC := appanalytics.NewCashUpUseCase(store.sales, store.products)
	promotionUC := appanalytics.NewPromotionUseCase(store.movements, store.products, nil)
	restockHistoryUC := appanalytics.NewRestockHistoryUseCase(store.receipts, store.movements, store.products, valuation)
	dashboardUC := appanalytics.NewDashboardUseCase(tradeAccountUC, promotionUC, store.movements, store.products, nil)
	reportPDFUC := appanalytics.NewReportPDFUseCase(tradeAccountUC, cashUpUC, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RegisterMovement: registerMovementUC,
		StockQuery:       stockQueryUC,
		Receipts:         receiptUC,
		Dashboard:        dashboardUC,
		TradeAccount:     tradeAccountUC,
		CashUp:           cashUpUC,
		Promotions:       promotionUC,
		RestockHistory:   restockHistoryUC,
		ReportPDF:        reportPDFUC,
		Idempotency:      idem,
		IdempotencyTTL:   cfg.Idempotency.TTL,
		Logger:           log.Component("idempotency"),
		JWTSecret:        cfg.JWT.Secret,
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

// openStorage arma los repositorios: PostgreSQL (con migraciones opcionales) o memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		store := memory.NewStore()
		if cfg.Storage.SeedFile != "" {
			seed, err := memory.LoadSeed(cfg.Storage.SeedFile)
			if err != nil {
				return nil, err
			}
			if err := store.Apply(seed); err != nil {
				return nil, err
			}
			log.Info().
				Str("file", cfg.Storage.SeedFile).
				Int("products", len(seed.Products)).
				Int("sales", len(seed.Sales)).
				Msg("catálogo en memoria cargado")
		} else {
			log.Warn().Msg("STORAGE_DRIVER=memory sin MEMORY_SEED_FILE: catálogo vacío, toda reposición responde 404")
		}
		repos := memory.NewRepositories(store)
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		return &storage{
			products:  repos.Products,
			movements: repos.Movements,
			receipts:  repos.Receipts,
			sales:     repos.Sales,
			tx:        repos.Tx,
			close:     func() {},
		}, nil
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		receipts:  postgres.NewStockReceiptRepository(pool),
		sales:     postgres.NewSalesRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}, nil
}

// openIdempotencyStore Redis si REDIS_ADDR está definido; si no, memoria local.
func openIdempotencyStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (cache.IdempotencyStore, error) {
	if cfg.Redis.Enabled() {
		store, err := cache.NewRedisIdempotencyStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotencia en Redis")
		return store, nil
	}
	log.Info().Msg("idempotencia en memoria (una sola instancia)")
	return cache.NewInMemoryIdempotencyStore(time.Minute), nil
}
