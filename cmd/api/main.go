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
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/jobcost"
	infrapdf "github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	partRepo := postgres.NewPartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	lineRepo := postgres.NewOrderLineRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	returnRepo := postgres.NewReturnRepository(pool)
	claimRepo := postgres.NewWarrantyClaimRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Valores de respaldo para empresas sin configuración propia.
	markupFallback := entity.MarkupSettings{
		RetailPercent:    cfg.Pricing.RetailMarkupPercent,
		FleetPercent:     cfg.Pricing.FleetMarkupPercent,
		WholesalePercent: cfg.Pricing.WholesaleMarkupPercent,
	}
	costingFallback := jobcost.Settings{
		MaterialCostPerInch:      cfg.Costing.MaterialCostPerInch,
		ConsumableCostPerPierce:  cfg.Costing.ConsumableCostPerPierce,
		SetupRatePerMinute:       cfg.Costing.SetupRatePerMinute,
		MachineRatePerMinute:     cfg.Costing.MachineRatePerMinute,
		OverheadPercent:          cfg.Costing.OverheadPercent,
		MarkupPercent:            cfg.Costing.MarkupPercent,
		ConsumablesCostPerMinute: cfg.Costing.ConsumablesCostPerMinute,
		DefaultSetupMinutes:      cfg.Costing.DefaultSetupMinutes,
		CalcVersion:              cfg.Costing.CalcVersion,
	}.Resolve(nil)

	pricingUC := usecase.NewPricingUseCase(partRepo, settingsRepo, markupFallback)
	jobCostUC := usecase.NewJobCostUseCase(settingsRepo, costingFallback)
	orderUC := usecase.NewOrderUseCase(txRunner, orderRepo, lineRepo, log.With(map[string]string{"component": "orders"}))
	insightUC := usecase.NewInsightUseCase(returnRepo, claimRepo, time.Now)

	// PDF: documento imprimible de la orden
	pdfGenerator := infrapdf.NewMarotoOrderPDF(cfg.App.Name)
	orderDocUC := usecase.NewOrderDocumentUseCase(orderRepo, lineRepo, partRepo, pdfGenerator, time.Now)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		FilePath: cfg.HTTP.SwaggerFile,
		Path:     "docs",
		Title:    "Taller API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		PricingUC:  pricingUC,
		JobCostUC:  jobCostUC,
		OrderUC:    orderUC,
		OrderDocUC: orderDocUC,
		InsightUC:  insightUC,
		JWTSecret:  cfg.JWT.Secret,
		Logger:     log.With(map[string]string{"component": "http"}),
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
