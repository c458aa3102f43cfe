package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	marketapp "provenance/contexts/commerce/resale-marketplace/application"
	"provenance/internal/platform/config"
	"provenance/internal/platform/db"
	"provenance/internal/platform/httpserver"
	"provenance/internal/platform/messaging"
	"provenance/internal/platform/metrics"
	"provenance/internal/shared/outbox"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	ledger   *Ledger
	database *db.Database
	// inProcess is set for memory storage, where no separate worker can
	// reach the outboxes.
	inProcess *WorkerApp
	logger    *slog.Logger
}

type WorkerApp struct {
	database     *db.Database
	bus          *messaging.Kafka
	relay        outbox.Relay
	audit        AuditConsumer
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI(cfg config.Config, logger *slog.Logger) (*APIApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", cfg.ServiceName, "process", "api")
	m := metrics.New()

	l, database, err := openLedger(cfg, m, logger)
	if err != nil {
		return nil, err
	}

	app := &APIApp{
		server: httpserver.New(httpserver.Modules{
			Minters:     l.Minters,
			Assets:      l.Assets,
			Theft:       l.Theft,
			Marketplace: l.Marketplace,
		}, m, logger, normalizeAddr(cfg.HTTPPort)),
		ledger:   l,
		database: database,
		logger:   logger,
	}
	if cfg.Storage == config.StorageMemory {
		worker, err := newWorker(cfg, l, database, m, logger)
		if err != nil {
			return nil, err
		}
		app.inProcess = worker
	}
	return app, nil
}

func BuildWorker(cfg config.Config, logger *slog.Logger) (*WorkerApp, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("service", cfg.ServiceName, "process", "worker")
	if cfg.Storage == config.StorageMemory {
		return nil, errors.New("worker requires postgres or sqlite storage; memory outboxes live in the api process")
	}
	m := metrics.New()

	l, database, err := openLedger(cfg, m, logger)
	if err != nil {
		return nil, err
	}
	return newWorker(cfg, l, database, m, logger)
}

func newWorker(cfg config.Config, l *Ledger, database *db.Database, m *metrics.Metrics, logger *slog.Logger) (*WorkerApp, error) {
	bus, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		if database != nil {
			_ = database.Close()
		}
		return nil, fmt.Errorf("connect event bus: %w", err)
	}
	return &WorkerApp{
		database: database,
		bus:      bus,
		relay: outbox.Relay{
			Sources:   l.Outboxes,
			Publisher: bus,
			BatchSize: cfg.OutboxBatchSize,
			Metrics:   m,
			Logger:    logger,
		},
		audit:        AuditConsumer{Bus: bus, Metrics: m, Logger: logger},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

// openLedger builds the configured backend, migrates it when asked and
// makes sure the registry trusts the marketplace principal.
func openLedger(cfg config.Config, m *metrics.Metrics, logger *slog.Logger) (*Ledger, *db.Database, error) {
	opts := Options{
		Admin:       cfg.Admin(),
		Marketplace: cfg.Marketplace(),
		Policy: marketapp.Policy{
			RecheckStolenAtPurchase: cfg.RecheckStolenAtPurchase,
			EnforceDesignatedBuyer:  cfg.EnforceDesignatedBuyer,
		},
		Metrics: m,
		Logger:  logger,
	}

	var (
		l        *Ledger
		database *db.Database
		err      error
	)
	switch cfg.Storage {
	case config.StorageMemory:
		l = NewInMemoryLedger(opts)
	case config.StoragePostgres:
		database, err = db.Connect(cfg.PostgresDSN)
	case config.StorageSQLite:
		database, err = db.ConnectSQLite(cfg.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if database != nil {
		l = NewSQLLedger(database, opts)
		if cfg.AutoMigrate {
			if err := l.Migrate(ctx); err != nil {
				_ = database.Close()
				return nil, nil, err
			}
		}
	}
	if err := l.EnsureMarketplaceOperator(ctx, opts.Admin, opts.Marketplace); err != nil {
		if database != nil {
			_ = database.Close()
		}
		return nil, nil, err
	}

	logger.Info("ledger ready",
		"event", "bootstrap_ledger_ready",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"storage", cfg.Storage,
		"dialect", database.Dialect(),
		"marketplace_operator", opts.Marketplace.Hex(),
	)
	return l, database, nil
}

func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	if a.inProcess == nil {
		return a.server.Run(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	workerDone := make(chan error, 1)
	go func() {
		workerDone <- a.inProcess.Run(ctx)
	}()

	err := a.server.Run(ctx)
	cancel()
	if workerErr := <-workerDone; err == nil {
		err = workerErr
	}
	return err
}

func (a *APIApp) Close() error {
	var errs []error
	if a.inProcess != nil {
		errs = append(errs, a.inProcess.Close())
	}
	if a.database != nil {
		errs = append(errs, a.database.Close())
	}
	return errors.Join(errs...)
}

// Run starts the audit consumer, then relays outbox rows until ctx is done.
func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.audit.Start(ctx); err != nil {
		return err
	}
	w.logger.Info("worker started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "worker",
		"outbox_sources", len(w.relay.Sources),
		"poll_interval", w.pollInterval.String(),
	)
	return w.relay.Run(ctx, w.pollInterval)
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.bus != nil {
		errs = append(errs, w.bus.Close())
	}
	if w.database != nil {
		errs = append(errs, w.database.Close())
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.Contains(value, ":") {
		return value
	}
	return ":" + value
}
