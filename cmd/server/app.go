package main

import (
	"context"
	"fmt"

	financeapp "github.com/money/backend/internal/application/finance"
	reportapp "github.com/money/backend/internal/application/report"
	"github.com/money/backend/internal/domain/finance"
	"github.com/money/backend/internal/domain/report"
	"github.com/money/backend/internal/domain/shared"
	"github.com/money/backend/internal/domain/shared/valueobject"
	"github.com/money/backend/internal/infrastructure/cache"
	"github.com/money/backend/internal/infrastructure/config"
	"github.com/money/backend/internal/infrastructure/dispatch"
	"github.com/money/backend/internal/infrastructure/event"
	"github.com/money/backend/internal/infrastructure/eventstore"
	"github.com/money/backend/internal/infrastructure/persistence"
	"github.com/money/backend/internal/infrastructure/telemetry"
	"github.com/money/backend/internal/interfaces/http/handler"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds the assembled write side, read side and their resources
type app struct {
	bus          shared.EventBus
	commands     *dispatch.CommandDispatcher
	queries      *dispatch.QueryDispatcher
	rebuilder    *reportapp.Rebuilder
	healthChecks map[string]handler.HealthCheck
	closers      []namedCloser
}

type namedCloser struct {
	name  string
	close func() error
}

type readStores struct {
	outcomes   report.OutcomeReadStore
	categories report.CategoryReadStore
	templates  report.ExpenseTemplateReadStore
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger, tracer *telemetry.TracerProvider, metrics *telemetry.EventSourcingMetrics) (*app, error) {
	a := &app{healthChecks: map[string]handler.HealthCheck{}}

	currency, err := valueobject.ParseCurrency(cfg.App.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	serializer := event.NewEventSerializer()
	finance.RegisterEvents(serializer)

	store, stores, err := a.openStorage(cfg, log, serializer)
	if err != nil {
		a.close(log)
		return nil, err
	}

	idempotency, err := a.openIdempotencyStore(ctx, cfg)
	if err != nil {
		a.close(log)
		return nil, err
	}

	outcomes := reportapp.NewOutcomeBuilder(stores.outcomes, stores.categories, valueobject.NewPriceFactory(currency), log)
	categories := reportapp.NewCategoryBuilder(stores.categories, log)
	templates := reportapp.NewExpenseTemplateBuilder(stores.templates, log)
	projections := []reportapp.Projection{outcomes, categories, templates}

	if cfg.Event.Async {
		async := event.NewAsyncEventBus(log,
			event.WithBufferSize(cfg.Event.BufferSize),
			event.WithFailureRecorder(metrics),
		)
		if err := metrics.ObserveQueueDepth(async.QueueDepth); err != nil {
			a.close(log)
			return nil, err
		}
		a.bus = async
	} else {
		syncBus := event.NewInMemoryEventBus(log)
		syncBus.SetFailureRecorder(metrics)
		a.bus = syncBus
	}

	idempotencyMetrics := &event.IdempotencyMetrics{}
	for _, p := range projections {
		a.bus.Subscribe(event.NewIdempotentHandler(p, idempotency, log,
			event.WithIdempotencyConfig(shared.IdempotencyConfig{
				Enabled: cfg.Event.IdempotencyEnabled,
				TTL:     cfg.Event.IdempotencyTTL,
			}),
			event.WithIdempotencyMetrics(idempotencyMetrics),
		))
	}
	a.rebuilder = reportapp.NewRebuilder(store, log, projections...)

	repo := financeapp.NewEventSourcedRepository(store, a.bus, metrics, log)
	dispatchOpts := []dispatch.Option{
		dispatch.WithTracer(tracer.Tracer("github.com/money/backend/dispatch")),
		dispatch.WithMetrics(metrics),
		dispatch.WithLogger(log),
	}
	a.commands = dispatch.NewCommandDispatcher(dispatchOpts...)
	a.commands.MustRegister(
		financeapp.NewOutcomeHandler(repo),
		financeapp.NewCategoryHandler(repo),
		financeapp.NewExpenseTemplateHandler(repo),
	)
	a.queries = dispatch.NewQueryDispatcher(dispatchOpts...)
	a.queries.MustRegister(outcomes, categories, templates)

	log.Info("Application assembled",
		zap.Strings("commands", a.commands.CommandTypes()),
		zap.Strings("queries", a.queries.QueryTypes()),
	)
	return a, nil
}

// openStorage picks the event store and read stores for the configured driver
func (a *app) openStorage(cfg *config.Config, log *zap.Logger, serializer *event.EventSerializer) (shared.EventStore, readStores, error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory storage; events are lost on restart")
		return eventstore.NewMemoryEventStore(eventstore.WithSerializer(serializer)), readStores{
			outcomes:   persistence.NewMemoryOutcomeReadStore(),
			categories: persistence.NewMemoryCategoryReadStore(),
			templates:  persistence.NewMemoryExpenseTemplateReadStore(),
		}, nil
	}

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		return nil, readStores{}, err
	}
	a.closers = append(a.closers, namedCloser{"database", db.Close})
	a.healthChecks["database"] = func(context.Context) error { return db.Ping() }

	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			return nil, readStores{}, err
		}
	}
	dbSystem := "sqlite"
	if cfg.Database.Driver == config.DriverPostgres {
		dbSystem = "postgresql"
	}
	if err := telemetry.InstrumentGorm(db.DB, telemetry.GormTracingConfig{
		Enabled:  cfg.Telemetry.Enabled,
		DBSystem: dbSystem,
	}); err != nil {
		return nil, readStores{}, err
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	return eventstore.NewGormEventStore(db.DB, serializer), readStores{
		outcomes:   persistence.NewGormOutcomeReadStore(db.DB),
		categories: persistence.NewGormCategoryReadStore(db.DB),
		templates:  persistence.NewGormExpenseTemplateReadStore(db.DB),
	}, nil
}

// openIdempotencyStore shares processed event ids through Redis when enabled
func (a *app) openIdempotencyStore(ctx context.Context, cfg *config.Config) (shared.IdempotencyStore, error) {
	if !cfg.Redis.Enabled {
		store := cache.NewInMemoryIdempotencyStore()
		a.closers = append(a.closers, namedCloser{"idempotency", store.Close})
		return store, nil
	}

	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("idempotency store: %w", err)
	}
	store := cache.NewRedisIdempotencyStore(client, cache.DefaultKeyPrefix)
	a.closers = append(a.closers, namedCloser{"redis", store.Close})
	a.healthChecks["redis"] = redisCheck(client)
	return store, nil
}

func redisCheck(client *redis.Client) handler.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// close releases resources in reverse order of acquisition
func (a *app) close(log *zap.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.close(); err != nil {
			log.Error("Error closing resource", zap.String("resource", c.name), zap.Error(err))
		}
	}
	a.closers = nil
}
