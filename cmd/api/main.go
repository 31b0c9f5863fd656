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
	appanalytics "github.com/jcsalazar/abasto-api/internal/application/analytics"
	"github.com/jcsalazar/abasto-api/internal/application/auth"
	"github.com/jcsalazar/abasto-api/internal/application/inventory"
	"github.com/jcsalazar/abasto-api/internal/application/ledger"
	"github.com/jcsalazar/abasto-api/internal/application/purchase"
	"github.com/jcsalazar/abasto-api/internal/application/request"
	"github.com/jcsalazar/abasto-api/internal/application/usecase"
	infrapdf "github.com/jcsalazar/abasto-api/internal/infrastructure/pdf"
	"github.com/jcsalazar/abasto-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcsalazar/abasto-api/internal/interfaces/http"
	"github.com/jcsalazar/abasto-api/pkg/config"
	"github.com/jcsalazar/abasto-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool. Las operaciones transaccionales construyen
	// sus propias instancias ligadas a la tx vía TxRunner.
	userRepo := postgres.NewUserRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewUseCase(userRepo, unitRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	unitUC := usecase.NewUnitUseCase(unitRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)
	budgetUC := ledger.NewBudgetUseCase(txRunner, budgetRepo, unitRepo)
	movementUC := ledger.NewMovementUseCase(txRunner, itemRepo, unitRepo)
	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, invRepo)
	purchaseUC := purchase.NewUseCase(txRunner, purchaseRepo, unitRepo, itemRepo)
	quotationUC := purchase.NewQuotationUseCase(txRunner, quotationRepo, purchaseRepo)
	requestUC := request.NewUseCase(txRunner, requestRepo, unitRepo, itemRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// PDF: orden de compra para enviar al proveedor
	pdfGenerator := infrapdf.NewMarotoOrderGenerator()
	orderPDFUC := purchase.NewPDFUseCase(purchaseRepo, unitRepo, itemRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Abasto API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UnitUC:      unitUC,
		ItemUC:      itemUC,
		BudgetUC:    budgetUC,
		MovementUC:  movementUC,
		InventoryUC: inventoryUC,
		PurchaseUC:  purchaseUC,
		PDFUC:       orderPDFUC,
		QuotationUC: quotationUC,
		RequestUC:   requestUC,
		DashboardUC: dashboardUC,
		StockRepo:   stockRepo,
		MovRepo:     movRepo,
		JWTSecret:   cfg.JWT.Secret,
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
