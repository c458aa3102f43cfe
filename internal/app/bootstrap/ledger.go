package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	resalemarketplace "provenance/contexts/commerce/resale-marketplace"
	marketmemory "provenance/contexts/commerce/resale-marketplace/adapters/memory"
	marketpostgres "provenance/contexts/commerce/resale-marketplace/adapters/postgres"
	"provenance/contexts/commerce/resale-marketplace/adapters/rail"
	marketapp "provenance/contexts/commerce/resale-marketplace/application"
	marketports "provenance/contexts/commerce/resale-marketplace/ports"
	minterregistry "provenance/contexts/identity-access/minter-registry"
	mintermemory "provenance/contexts/identity-access/minter-registry/adapters/memory"
	minterpostgres "provenance/contexts/identity-access/minter-registry/adapters/postgres"
	assetregistry "provenance/contexts/provenance/asset-registry"
	assetmemory "provenance/contexts/provenance/asset-registry/adapters/memory"
	assetpostgres "provenance/contexts/provenance/asset-registry/adapters/postgres"
	theftregistry "provenance/contexts/provenance/theft-registry"
	theftmemory "provenance/contexts/provenance/theft-registry/adapters/memory"
	theftpostgres "provenance/contexts/provenance/theft-registry/adapters/postgres"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/db"
	"provenance/internal/platform/metrics"
	"provenance/internal/platform/txn"
	"provenance/internal/shared/outbox"
)

// Options are the deployment choices shared by every backend.
type Options struct {
	Admin       ledger.Principal
	Marketplace ledger.Principal
	Policy      marketapp.Policy
	// Rail defaults to an in-process rail.Recorder.
	Rail    marketports.PaymentRail
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Ledger is the assembled set of contexts sharing one unit-of-work
// coordinator, plus the outboxes the relay drains.
type Ledger struct {
	Minters     minterregistry.Module
	Assets      assetregistry.Module
	Theft       theftregistry.Module
	Marketplace resalemarketplace.Module
	Outboxes    []outbox.Source
	Rail        marketports.PaymentRail

	migrations []func(context.Context) error
}

type backends struct {
	minters     minterregistry.Dependencies
	assets      assetregistry.Dependencies
	theft       theftregistry.Dependencies
	marketplace resalemarketplace.Dependencies
}

// NewInMemoryLedger builds all four contexts over in-memory stores enlisted
// in a single txn.Memory.
func NewInMemoryLedger(opts Options) *Ledger {
	minterStore := mintermemory.NewStore()
	assetStore := assetmemory.NewStore()
	theftStore := theftmemory.NewStore()
	marketStore := marketmemory.NewStore()
	tx := txn.NewMemory(minterStore, assetStore, theftStore, marketStore)

	l := assemble(opts, backends{
		minters:     minterregistry.Dependencies{Repository: minterStore, Transactor: tx, Clock: minterStore, IDGenerator: minterStore},
		assets:      assetregistry.Dependencies{Repository: assetStore, Transactor: tx, Clock: assetStore, IDGenerator: assetStore},
		theft:       theftregistry.Dependencies{Repository: theftStore, Transactor: tx, Clock: theftStore, IDGenerator: theftStore},
		marketplace: resalemarketplace.Dependencies{Repository: marketStore, Transactor: tx, Clock: marketStore, IDGenerator: marketStore},
	})
	l.Minters.Store = minterStore
	l.Assets.Store = assetStore
	l.Theft.Store = theftStore
	l.Marketplace.Store = marketStore
	l.Outboxes = []outbox.Source{
		{Name: "minter-registry", Store: minterStore.Outbox()},
		{Name: "asset-registry", Store: assetStore.Outbox()},
		{Name: "theft-registry", Store: theftStore.Outbox()},
		{Name: "resale-marketplace", Store: marketStore.Outbox()},
	}
	return l
}

// NewSQLLedger builds all four contexts over gorm repositories sharing one
// db.Transactor, so a purchase spans one database transaction.
func NewSQLLedger(database *db.Database, opts Options) *Ledger {
	logger := opts.Logger
	minterRepo := minterpostgres.NewRepository(database.DB, logger)
	assetRepo := assetpostgres.NewRepository(database.DB, logger)
	theftRepo := theftpostgres.NewRepository(database.DB, logger)
	marketRepo := marketpostgres.NewRepository(database.DB, logger)
	tx := db.NewTransactor(database.DB)

	l := assemble(opts, backends{
		minters: minterregistry.Dependencies{
			Repository:  minterRepo,
			Transactor:  tx,
			Clock:       minterpostgres.SystemClock{},
			IDGenerator: minterpostgres.UUIDGenerator{},
		},
		assets: assetregistry.Dependencies{
			Repository:  assetRepo,
			Transactor:  tx,
			Clock:       assetpostgres.SystemClock{},
			IDGenerator: assetpostgres.UUIDGenerator{},
		},
		theft: theftregistry.Dependencies{
			Repository:  theftRepo,
			Transactor:  tx,
			Clock:       theftpostgres.SystemClock{},
			IDGenerator: theftpostgres.UUIDGenerator{},
		},
		marketplace: resalemarketplace.Dependencies{
			Repository:  marketRepo,
			Transactor:  tx,
			Clock:       marketpostgres.SystemClock{},
			IDGenerator: marketpostgres.UUIDGenerator{},
		},
	})
	l.Outboxes = []outbox.Source{
		{Name: "minter-registry", Store: minterRepo.Outbox()},
		{Name: "asset-registry", Store: assetRepo.Outbox()},
		{Name: "theft-registry", Store: theftRepo.Outbox()},
		{Name: "resale-marketplace", Store: marketRepo.Outbox()},
	}
	l.migrations = []func(context.Context) error{
		minterRepo.Migrate,
		assetRepo.Migrate,
		theftRepo.Migrate,
		marketRepo.Migrate,
	}
	return l
}

// assemble constructs the contexts in dependency order: minters, assets,
// theft, marketplace.
func assemble(opts Options, b backends) *Ledger {
	logger := opts.Logger
	paymentRail := opts.Rail
	if paymentRail == nil {
		paymentRail = rail.NewRecorder(opts.Metrics, logger)
	}

	b.minters.Owner = opts.Admin
	b.minters.Logger = logger
	minters := minterregistry.NewModule(b.minters)

	b.assets.Owner = opts.Admin
	b.assets.Minters = minterDirectory{minters: minters}
	b.assets.Logger = logger
	assets := assetregistry.NewModule(b.assets)

	b.theft.Assets = assetOwnership{assets: assets}
	b.theft.Logger = logger
	theft := theftregistry.NewModule(b.theft)

	b.marketplace.Assets = assetLedger{assets: assets}
	b.marketplace.Theft = theftLookup{theft: theft}
	b.marketplace.Royalties = royaltySchedule{minters: minters}
	b.marketplace.Rail = paymentRail
	b.marketplace.Operator = opts.Marketplace
	b.marketplace.Policy = opts.Policy
	b.marketplace.Logger = logger
	marketplace := resalemarketplace.NewModule(b.marketplace)

	return &Ledger{
		Minters:     minters,
		Assets:      assets,
		Theft:       theft,
		Marketplace: marketplace,
		Rail:        paymentRail,
	}
}

// Migrate creates or updates the schema of every SQL-backed context.
func (l *Ledger) Migrate(ctx context.Context) error {
	for _, migrate := range l.migrations {
		if err := migrate(ctx); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}

// EnsureMarketplaceOperator performs the one-time administrative wiring:
// the asset registry must trust the marketplace principal.
func (l *Ledger) EnsureMarketplaceOperator(ctx context.Context, admin ledger.Principal, operator ledger.Principal) error {
	current, err := l.Assets.MarketplaceAddress(ctx)
	if err != nil {
		return err
	}
	if current == operator {
		return nil
	}
	if err := l.Assets.SetMarketplaceAddress(ctx, admin, operator); err != nil {
		return fmt.Errorf("set marketplace operator: %w", err)
	}
	return nil
}
