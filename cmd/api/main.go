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
	"github.com/jhoicas/Optica-api/internal/application/auth"
	"github.com/jhoicas/Optica-api/internal/application/expense"
	"github.com/jhoicas/Optica-api/internal/application/inventory"
	"github.com/jhoicas/Optica-api/internal/application/patient"
	"github.com/jhoicas/Optica-api/internal/application/ports"
	"github.com/jhoicas/Optica-api/internal/application/sales"
	"github.com/jhoicas/Optica-api/internal/application/shift"
	"github.com/jhoicas/Optica-api/internal/domain/repository"
	"github.com/jhoicas/Optica-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Optica-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Optica-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Optica-api/internal/interfaces/http"
	"github.com/jhoicas/Optica-api/pkg/config"
	"github.com/jhoicas/Optica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	// los filtros por fecha (YYYY-MM-DD) se cortan a medianoche de la óptica
	if loc, err := time.LoadLocation(cfg.App.TimeZone); err == nil {
		time.Local = loc
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Str("tz", cfg.App.TimeZone).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner ports.TxRunner
		repos    repository.Repositories
	)
	switch cfg.App.StoreDriver {
	case "memory":
		// solo para demos y desarrollo: los datos se pierden al reiniciar
		store := memory.New()
		txRunner, repos = store, store.Repositories()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepositories(pool)
	}

	shiftReports := infrapdf.NewShiftReportGenerator(cfg.App.Name)
	ledgerUC := shift.NewLedgerUseCase(txRunner, repos, shiftReports, log.Named("shift"))
	orderUC := sales.NewOrderUseCase(txRunner, repos, log.Named("orders"))
	paymentUC := sales.NewPaymentUseCase(txRunner, repos, log.Named("payments"))
	inventoryUC := inventory.NewUseCase(txRunner, repos, log.Named("inventory"))
	purchaseUC := inventory.NewPurchaseUseCase(txRunner, repos, log.Named("purchases"))
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Items)
	expenseUC := expense.NewUseCase(txRunner, repos)
	patientUC := patient.NewUseCase(repos.Patients)
	authUC := auth.NewAuthUseCase(repos.Users, repos.Shifts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Seed.AdminEmail != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Immutable:    true, // los params se guardan en entidades del store en memoria
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.App.SwaggerEnabled {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Óptica POS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ShiftUC:       ledgerUC,
		OrderUC:       orderUC,
		PaymentUC:     paymentUC,
		InventoryUC:   inventoryUC,
		PurchaseUC:    purchaseUC,
		Replenishment: replenishmentUC,
		ExpenseUC:     expenseUC,
		PatientUC:     patientUC,
		JWTSecret:     cfg.JWT.Secret,
		MetricsPath:   metricsPath,
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
