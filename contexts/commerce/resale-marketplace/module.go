package resalemarketplace

import (
	"context"
	"log/slog"

	httpadapter "provenance/contexts/commerce/resale-marketplace/adapters/http"
	"provenance/contexts/commerce/resale-marketplace/adapters/memory"
	application "provenance/contexts/commerce/resale-marketplace/application"
	"provenance/contexts/commerce/resale-marketplace/application/commands"
	"provenance/contexts/commerce/resale-marketplace/application/queries"
	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	"provenance/contexts/commerce/resale-marketplace/ports"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/txn"
)

type Module struct {
	Handler  httpadapter.Handler
	Commands Commands
	Queries  Queries
	Store    *memory.Store
}

type Commands struct {
	ListWatch     commands.ListWatchUseCase
	CancelListing commands.CancelListingUseCase
	BuyWatch      commands.BuyWatchUseCase
	Withdraw      commands.WithdrawUseCase
}

type Queries struct {
	GetListing queries.GetListingUseCase
	Quote      queries.QuoteUseCase
	BalanceOf  queries.BalanceOfUseCase
}

// Dependencies captures all runtime ports/config required by NewModule.
// Operator is the marketplace's own principal, the address the asset
// registry trusts to move approved assets.
type Dependencies struct {
	Repository  ports.Repository
	Assets      ports.AssetLedger
	Theft       ports.TheftLookup
	Royalties   ports.RoyaltySchedule
	Rail        ports.PaymentRail
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Operator    ledger.Principal
	Policy      application.Policy
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	cmds := Commands{
		ListWatch: commands.ListWatchUseCase{
			Repository:  deps.Repository,
			Assets:      deps.Assets,
			Theft:       deps.Theft,
			Royalties:   deps.Royalties,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Operator:    deps.Operator,
			Logger:      deps.Logger,
		},
		CancelListing: commands.CancelListingUseCase{
			Repository:  deps.Repository,
			Assets:      deps.Assets,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		BuyWatch: commands.BuyWatchUseCase{
			Repository:  deps.Repository,
			Assets:      deps.Assets,
			Theft:       deps.Theft,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Operator:    deps.Operator,
			Policy:      deps.Policy,
			Logger:      deps.Logger,
		},
		Withdraw: commands.WithdrawUseCase{
			Repository:  deps.Repository,
			Rail:        deps.Rail,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
	}
	getListing := queries.GetListingUseCase{
		Repository: deps.Repository,
		Assets:     deps.Assets,
		Transactor: deps.Transactor,
	}
	qs := Queries{
		GetListing: getListing,
		Quote:      queries.QuoteUseCase{Listings: getListing},
		BalanceOf:  queries.BalanceOfUseCase{Repository: deps.Repository, Transactor: deps.Transactor},
	}

	return Module{
		Handler: httpadapter.Handler{
			ListWatch:     cmds.ListWatch,
			CancelListing: cmds.CancelListing,
			BuyWatch:      cmds.BuyWatch,
			Withdraw:      cmds.Withdraw,
			GetListing:    qs.GetListing,
			Quote:         qs.Quote,
			BalanceOf:     qs.BalanceOf,
			Logger:        deps.Logger,
		},
		Commands: cmds,
		Queries:  qs,
	}
}

// InMemoryDependencies are the peers an in-memory marketplace talks to.
type InMemoryDependencies struct {
	Assets    ports.AssetLedger
	Theft     ports.TheftLookup
	Royalties ports.RoyaltySchedule
	Rail      ports.PaymentRail
	Operator  ledger.Principal
	Policy    application.Policy
	Logger    *slog.Logger
}

func NewInMemoryModule(deps InMemoryDependencies) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Assets:      deps.Assets,
		Theft:       deps.Theft,
		Royalties:   deps.Royalties,
		Rail:        deps.Rail,
		Transactor:  txn.NewMemory(store),
		Clock:       store,
		IDGenerator: store,
		Operator:    deps.Operator,
		Policy:      deps.Policy,
		Logger:      deps.Logger,
	})
	module.Store = store
	return module
}

func (m Module) ListWatch(
	ctx context.Context,
	caller ledger.Principal,
	serialID string,
	price ledger.Amount,
	designatedBuyer ledger.Principal,
) (entities.Listing, error) {
	return m.Commands.ListWatch.Execute(ctx, commands.ListWatchCommand{
		Caller:          caller,
		SerialID:        serialID,
		Price:           price,
		DesignatedBuyer: designatedBuyer,
	})
}

func (m Module) CancelListing(ctx context.Context, caller ledger.Principal, serialID string) error {
	return m.Commands.CancelListing.Execute(ctx, commands.CancelListingCommand{Caller: caller, SerialID: serialID})
}

func (m Module) BuyWatch(ctx context.Context, caller ledger.Principal, serialID string, payment ledger.Amount) (entities.Purchase, error) {
	return m.Commands.BuyWatch.Execute(ctx, commands.BuyWatchCommand{
		Caller:   caller,
		SerialID: serialID,
		Payment:  payment,
	})
}

func (m Module) Withdraw(ctx context.Context, caller ledger.Principal) (ledger.Amount, error) {
	return m.Commands.Withdraw.Execute(ctx, commands.WithdrawCommand{Caller: caller})
}

func (m Module) GetListing(ctx context.Context, serialID string) (entities.Listing, error) {
	return m.Queries.GetListing.Execute(ctx, serialID)
}

// GetListingPriceAndCommission returns price plus royalty of an active listing.
func (m Module) GetListingPriceAndCommission(ctx context.Context, serialID string) (ledger.Amount, error) {
	return m.Queries.Quote.Execute(ctx, serialID)
}

func (m Module) BalanceOf(ctx context.Context, payee ledger.Principal) (ledger.Amount, error) {
	balance, err := m.Queries.BalanceOf.Execute(ctx, payee)
	return balance.Amount, err
}
