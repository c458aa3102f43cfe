package minterregistry

import (
	"context"
	"log/slog"

	httpadapter "provenance/contexts/identity-access/minter-registry/adapters/http"
	"provenance/contexts/identity-access/minter-registry/adapters/memory"
	"provenance/contexts/identity-access/minter-registry/application/commands"
	"provenance/contexts/identity-access/minter-registry/application/queries"
	"provenance/contexts/identity-access/minter-registry/domain/entities"
	"provenance/contexts/identity-access/minter-registry/ports"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/txn"
)

// Module is the minter-registry composition root exposed to runtime wiring.
type Module struct {
	Handler  httpadapter.Handler
	Commands Commands
	Queries  Queries
	Store    *memory.Store
}

type Commands struct {
	AddMinter    commands.AddMinterUseCase
	RemoveMinter commands.RemoveMinterUseCase
}

type Queries struct {
	GetMinter    queries.GetMinterUseCase
	LookupMinter queries.LookupMinterUseCase
}

// Dependencies captures all runtime ports/config required by NewModule.
// Owner is the administrative principal allowed to add and remove minters.
type Dependencies struct {
	Repository  ports.Repository
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Owner       ledger.Principal
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	cmds := Commands{
		AddMinter: commands.AddMinterUseCase{
			Repository:  deps.Repository,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Owner:       deps.Owner,
			Logger:      deps.Logger,
		},
		RemoveMinter: commands.RemoveMinterUseCase{
			Repository:  deps.Repository,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Owner:       deps.Owner,
			Logger:      deps.Logger,
		},
	}
	qs := Queries{
		GetMinter:    queries.GetMinterUseCase{Repository: deps.Repository, Transactor: deps.Transactor},
		LookupMinter: queries.LookupMinterUseCase{Repository: deps.Repository, Transactor: deps.Transactor},
	}

	return Module{
		Handler: httpadapter.Handler{
			AddMinter:    cmds.AddMinter,
			RemoveMinter: cmds.RemoveMinter,
			LookupMinter: qs.LookupMinter,
			Logger:       deps.Logger,
		},
		Commands: cmds,
		Queries:  qs,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters
// and its own unit-of-work coordinator.
func NewInMemoryModule(owner ledger.Principal, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Transactor:  txn.NewMemory(store),
		Clock:       store,
		IDGenerator: store,
		Owner:       owner,
		Logger:      logger,
	})
	module.Store = store
	return module
}

func (m Module) AddMinter(ctx context.Context, cmd commands.AddMinterCommand) (entities.MinterProfile, error) {
	return m.Commands.AddMinter.Execute(ctx, cmd)
}

func (m Module) RemoveMinter(ctx context.Context, caller ledger.Principal, address ledger.Principal) error {
	return m.Commands.RemoveMinter.Execute(ctx, commands.RemoveMinterCommand{Caller: caller, Address: address})
}

func (m Module) IsMinter(ctx context.Context, address ledger.Principal) (bool, error) {
	lookup, err := m.Queries.LookupMinter.Execute(ctx, address)
	return lookup.Registered, err
}

func (m Module) GetRoyaltyPercentage(ctx context.Context, address ledger.Principal) (ledger.BasisPoints, error) {
	lookup, err := m.Queries.LookupMinter.Execute(ctx, address)
	return lookup.RoyaltyBps, err
}

func (m Module) GetBrand(ctx context.Context, address ledger.Principal) (string, error) {
	lookup, err := m.Queries.LookupMinter.Execute(ctx, address)
	return lookup.Brand, err
}

func (m Module) GetLocation(ctx context.Context, address ledger.Principal) (string, error) {
	lookup, err := m.Queries.LookupMinter.Execute(ctx, address)
	return lookup.Location, err
}
