package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	appanalytics "github.com/jhoicas/superindo-api/internal/application/analytics"
	"github.com/jhoicas/superindo-api/internal/application/inventory"
	"github.com/jhoicas/superindo-api/internal/application/ledger"
	"github.com/jhoicas/superindo-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/superindo-api/internal/infrastructure/kafka"
	"github.com/jhoicas/superindo-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/superindo-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/superindo-api/internal/interfaces/http"
	"github.com/jhoicas/superindo-api/pkg/config"
	"github.com/jhoicas/superindo-api/pkg/logger"
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
		Str("numbering", cfg.Ledger.NumberingBackend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Ledger.MigrateOnStart {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
		log.Info().Msg("esquema aplicado")
	}

	var numbers ledger.NumberGenerator
	switch cfg.Ledger.NumberingBackend {
	case config.NumberingScan:
		numbers = ledger.ScanNumberGenerator{}
	case config.NumberingRedis:
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		numbers = infraredis.NewNumberGenerator(rdb)
	default:
		numbers = ledger.CounterNumberGenerator{}
	}

	var events ledger.EventPublisher = ledger.NopPublisher{}
	if cfg.Kafka.Enabled() {
		publisher := infrakafka.NewPublisher(cfg.Kafka)
		defer publisher.Close()
		events = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicando movimientos en Kafka")
	}

	txRunner := postgres.NewTxRunner(pool)
	reads := postgres.NewRepositories(pool)
	deps := ledger.Deps{
		Tx:      txRunner,
		Reads:   reads,
		Numbers: numbers,
		Events:  events,
		Log:     log,
	}

	customerUC := usecase.NewCustomerUseCase(reads)
	materialUC := usecase.NewMaterialUseCase(txRunner, reads, log)
	productUC := usecase.NewProductUseCase(txRunner, reads, log)
	incomingUC := ledger.NewIncomingUseCase(deps)
	productionUC := ledger.NewProductionUseCase(deps)
	invoiceUC := ledger.NewInvoiceUseCase(deps)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, reads.Movements, cfg.Ledger.LowStockThreshold, time.Now)
	replenishmentUC := inventory.NewReplenishmentUseCase(dashboardRepo, cfg.Ledger.LowStockThreshold)

	app := httpRouter.NewApp(cfg.App.Name, log)
	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.DocsFile != "" {
		if err := httpRouter.Docs(app, cfg.HTTP.DocsFile); err != nil {
			log.Warn().Err(err).Msg("documentación Swagger desactivada")
		}
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:   customerUC,
		MaterialUC:   materialUC,
		ProductUC:    productUC,
		IncomingUC:   incomingUC,
		ProductionUC: productionUC,
		InvoiceUC:    invoiceUC,
		DashboardUC:  dashboardUC,
		Replenish:    replenishmentUC,
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
