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

	"github.com/jhoicas/Vitrina-api/internal/application/auth"
	"github.com/jhoicas/Vitrina-api/internal/application/billing"
	"github.com/jhoicas/Vitrina-api/internal/application/sales"
	"github.com/jhoicas/Vitrina-api/internal/application/store"
	"github.com/jhoicas/Vitrina-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Vitrina-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Vitrina-api/internal/infrastructure/postgres"
	infrastripe "github.com/jhoicas/Vitrina-api/internal/infrastructure/stripe"
	httpRouter "github.com/jhoicas/Vitrina-api/internal/interfaces/http"
	"github.com/jhoicas/Vitrina-api/pkg/config"
	"github.com/jhoicas/Vitrina-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	tenantRepo := postgres.NewTenantRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	campaignUC := usecase.NewCampaignUseCase(campaignRepo)
	reportUC := usecase.NewReportUseCase(movementRepo)

	salesUC := sales.NewUseCase(txRunner, customerRepo, installmentRepo)
	bookletUC := sales.NewBookletUseCase(
		tenantRepo, movementRepo, customerRepo, installmentRepo,
		infrapdf.NewMarotoBookletGenerator(),
	)
	storeUC := store.NewUseCase(storeRepo, productRepo, analyticsRepo)

	provider := infrastripe.NewProvider(cfg.Stripe, log.Zerolog())
	billingUC := billing.NewUseCase(tenantRepo, provider, log.Zerolog())
	webhookParser := infrastripe.NewWebhookParser(
		cfg.Stripe.WebhookSecret, cfg.Stripe.PriceStarter, cfg.Stripe.PricePremium,
	)

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
		Title:    "Vitrina API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		TenantUC:   tenantUC,
		ProductUC:  productUC,
		SupplierUC: supplierUC,
		CustomerUC: customerUC,
		CampaignUC: campaignUC,
		ReportUC:   reportUC,
		SalesUC:    salesUC,
		BookletUC:  bookletUC,
		StoreUC:    storeUC,
		BillingUC:  billingUC,
		Events:     webhookParser,
		JWTSecret:  cfg.JWT.Secret,
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
