package theftregistry

import (
	"context"
	"log/slog"

	httpadapter "provenance/contexts/provenance/theft-registry/adapters/http"
	"provenance/contexts/provenance/theft-registry/adapters/memory"
	"provenance/contexts/provenance/theft-registry/application/commands"
	"provenance/contexts/provenance/theft-registry/application/queries"
	"provenance/contexts/provenance/theft-registry/ports"
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
	Flag   commands.FlagUseCase
	Unflag commands.UnflagUseCase
}

type Queries struct {
	GetFlag queries.GetFlagUseCase
}

type Dependencies struct {
	Repository  ports.Repository
	Assets      ports.AssetOwnership
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	toggle := commands.ToggleUseCase{
		Repository:  deps.Repository,
		Assets:      deps.Assets,
		Transactor:  deps.Transactor,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	cmds := Commands{
		Flag:   commands.FlagUseCase{ToggleUseCase: toggle},
		Unflag: commands.UnflagUseCase{ToggleUseCase: toggle},
	}
	qs := Queries{
		GetFlag: queries.GetFlagUseCase{Repository: deps.Repository, Transactor: deps.Transactor},
	}
	return Module{
		Handler: httpadapter.Handler{
			Flag:    cmds.Flag,
			Unflag:  cmds.Unflag,
			GetFlag: qs.GetFlag,
			Logger:  deps.Logger,
		},
		Commands: cmds,
		Queries:  qs,
	}
}

// NewInMemoryModule builds the registry over an in-memory store.
func NewInMemoryModule(assets ports.AssetOwnership, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Assets:      assets,
		Transactor:  txn.NewMemory(store),
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

func (m Module) FlagAsStolen(ctx context.Context, caller ledger.Principal, serialID string) error {
	_, err := m.Commands.Flag.Execute(ctx, commands.FlagCommand{Caller: caller, SerialID: serialID})
	return err
}

func (m Module) UnflagAsStolen(ctx context.Context, caller ledger.Principal, serialID string) error {
	_, err := m.Commands.Unflag.Execute(ctx, commands.FlagCommand{Caller: caller, SerialID: serialID})
	return err
}

func (m Module) IsStolen(ctx context.Context, serialID string) (bool, error) {
	flag, err := m.Queries.GetFlag.Execute(ctx, serialID)
	return flag.Stolen, err
}
