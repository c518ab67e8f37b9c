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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/Bodega-api/internal/application/alerts"
	appanalytics "github.com/jhoicas/Bodega-api/internal/application/analytics"
	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/application/reference"
	"github.com/jhoicas/Bodega-api/internal/application/reports"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Bodega-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Bodega-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Bodega-api/internal/interfaces/http"
	"github.com/jhoicas/Bodega-api/pkg/config"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// stores adaptadores de persistencia del driver elegido.
type stores struct {
	tx        inventory.TxRunner
	refs      repository.ReferenceRepository
	items     repository.ItemRepository
	movements repository.StockMovementRepository
	alerts    repository.AlertSourceRepository
	stats     repository.StatsRepository
	reorders  repository.ReorderRepository
	users     repository.UserRepository
	ping      func(ctx context.Context) error
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión al almacenamiento")
	}
	defer st.close()

	// Caché opcional del resolver: sin REDIS_URL o sin Redis disponible se consulta la BD directo.
	var lookup repository.ReferenceLookup = st.refs
	if cfg.Redis.URL != "" {
		client, err := cache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, resolver sin caché")
		} else {
			defer client.Close()
			lookup = cache.NewCachedLookup(st.refs, client, cfg.Redis.TTL, log)
		}
	}
	resolver := reference.NewResolver(lookup)

	engine := inventory.NewMovementEngine(st.tx, resolver, st.movements, log)
	itemUC := usecase.NewItemUseCase(st.items, resolver, engine, log)
	referenceUC := usecase.NewReferenceUseCase(st.refs)
	replenishmentUC := inventory.NewReplenishmentUseCase(st.reorders, st.items, st.alerts, resolver)
	dashboardUC := appanalytics.NewDashboardUseCase(st.stats)
	aggregator := alerts.NewAggregator(st.alerts, alerts.Options{
		MovementWindow: cfg.Alerts.MovementWindow,
		SupplierWindow: cfg.Alerts.SupplierWindow,
	}, log)
	reportUC := reports.NewReportUseCase(
		dashboardUC, st.alerts, engine,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name), xlsx.NewMovementSheet(),
	)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
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
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log))
	app.Use(httpRouter.RequestTimeout(cfg.DB.Timeout))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Engine:        engine,
		ItemUC:        itemUC,
		ReferenceUC:   referenceUC,
		Replenishment: replenishmentUC,
		DashboardUC:   dashboardUC,
		Alerts:        aggregator,
		Reports:       reportUC,
		Ping:          st.ping,
		ServiceName:   cfg.App.Name,
		JWTSecret:     cfg.JWT.Secret,
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

func openStores(ctx context.Context, cfg config.DBConfig) (*stores, error) {
	if cfg.Driver == config.DriverSQLite {
		return openSQLite(ctx, cfg)
	}
	return openPostgres(ctx, cfg)
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*stores, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &stores{
		tx:        postgres.NewTxRunner(pool),
		refs:      postgres.NewReferenceRepository(pool),
		items:     postgres.NewItemRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		alerts:    postgres.NewAlertSourceRepository(pool),
		stats:     postgres.NewStatsRepository(pool),
		reorders:  postgres.NewReorderRepository(pool),
		users:     postgres.NewUserRepository(pool),
		ping:      pool.Ping,
		close:     pool.Close,
	}, nil
}

func openSQLite(ctx context.Context, cfg config.DBConfig) (*stores, error) {
	db, err := sqlite.Open(ctx, cfg.SQLitePath, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	// el archivo embebido se crea vacío: el esquema se aplica siempre (idempotente)
	if err := sqlite.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	readModel := sqlite.NewReadModel(db)
	return &stores{
		tx:        sqlite.NewTxRunner(db),
		refs:      sqlite.NewReferenceRepository(db),
		items:     sqlite.NewItemRepository(db),
		movements: sqlite.NewStockMovementRepository(db),
		alerts:    readModel,
		stats:     readModel,
		reorders:  sqlite.NewReorderRepository(db),
		users:     sqlite.NewUserRepository(db),
		ping:      db.PingContext,
		close:     func() { _ = db.Close() },
	}, nil
}
