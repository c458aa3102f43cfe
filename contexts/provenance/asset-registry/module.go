package assetregistry

import (
	"context"
	"log/slog"

	httpadapter "provenance/contexts/provenance/asset-registry/adapters/http"
	"provenance/contexts/provenance/asset-registry/adapters/memory"
	"provenance/contexts/provenance/asset-registry/application/commands"
	"provenance/contexts/provenance/asset-registry/application/queries"
	"provenance/contexts/provenance/asset-registry/domain/entities"
	"provenance/contexts/provenance/asset-registry/ports"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/platform/txn"
)

// Module is the asset-registry composition root exposed to runtime wiring.
type Module struct {
	Handler  httpadapter.Handler
	Commands Commands
	Queries  Queries
	Store    *memory.Store
}

type Commands struct {
	Mint           commands.MintUseCase
	Burn           commands.BurnUseCase
	ApproveListing commands.ApproveListingUseCase
	SetMarketplace commands.SetMarketplaceUseCase
	Transfer       commands.TransferUseCase
}

type Queries struct {
	GetAsset       queries.GetAssetUseCase
	GetMarketplace queries.GetMarketplaceUseCase
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Repository  ports.Repository
	Minters     ports.MinterDirectory
	Transactor  ports.Transactor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Owner       ledger.Principal
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	cmds := Commands{
		Mint: commands.MintUseCase{
			Repository:  deps.Repository,
			Minters:     deps.Minters,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		Burn: commands.BurnUseCase{
			Repository:  deps.Repository,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		ApproveListing: commands.ApproveListingUseCase{
			Repository: deps.Repository,
			Transactor: deps.Transactor,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		SetMarketplace: commands.SetMarketplaceUseCase{
			Repository:  deps.Repository,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Owner:       deps.Owner,
			Logger:      deps.Logger,
		},
		Transfer: commands.TransferUseCase{
			Repository:  deps.Repository,
			Transactor:  deps.Transactor,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
	}
	qs := Queries{
		GetAsset:       queries.GetAssetUseCase{Repository: deps.Repository, Transactor: deps.Transactor},
		GetMarketplace: queries.GetMarketplaceUseCase{Repository: deps.Repository, Transactor: deps.Transactor},
	}

	return Module{
		Handler: httpadapter.Handler{
			Mint:           cmds.Mint,
			Burn:           cmds.Burn,
			ApproveListing: cmds.ApproveListing,
			SetMarketplace: cmds.SetMarketplace,
			GetAsset:       qs.GetAsset,
			GetMarketplace: qs.GetMarketplace,
			Logger:         deps.Logger,
		},
		Commands: cmds,
		Queries:  qs,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. minters answers the minting whitelist.
func NewInMemoryModule(owner ledger.Principal, minters ports.MinterDirectory, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Minters:     minters,
		Transactor:  txn.NewMemory(store),
		Clock:       store,
		IDGenerator: store,
		Owner:       owner,
		Logger:      logger,
	})
	module.Store = store
	return module
}

func (m Module) Mint(ctx context.Context, caller ledger.Principal, to ledger.Principal, serialID string, uri string) (entities.Asset, error) {
	return m.Commands.Mint.Execute(ctx, commands.MintCommand{
		Caller:      caller,
		To:          to,
		SerialID:    serialID,
		MetadataURI: uri,
	})
}

func (m Module) Burn(ctx context.Context, caller ledger.Principal, serialID string) error {
	return m.Commands.Burn.Execute(ctx, commands.BurnCommand{Caller: caller, SerialID: serialID})
}

func (m Module) ApproveListingToken(ctx context.Context, caller ledger.Principal, serialID string) error {
	_, err := m.Commands.ApproveListing.Execute(ctx, commands.ApproveListingCommand{Caller: caller, SerialID: serialID})
	return err
}

func (m Module) SetMarketplaceAddress(ctx context.Context, caller ledger.Principal, operator ledger.Principal) error {
	return m.Commands.SetMarketplace.Execute(ctx, commands.SetMarketplaceCommand{Caller: caller, Operator: operator})
}

// Transfer is the operator-only move used by the marketplace during purchase.
func (m Module) Transfer(ctx context.Context, operator ledger.Principal, serialID string, newOwner ledger.Principal) (entities.Asset, error) {
	return m.Commands.Transfer.Execute(ctx, commands.TransferCommand{
		Operator: operator,
		SerialID: serialID,
		NewOwner: newOwner,
	})
}

func (m Module) GetAsset(ctx context.Context, serialID string) (entities.Asset, error) {
	return m.Queries.GetAsset.Execute(ctx, serialID)
}

func (m Module) OwnerOfToken(ctx context.Context, serialID string) (ledger.Principal, error) {
	asset, err := m.Queries.GetAsset.Execute(ctx, serialID)
	return asset.Owner, err
}

func (m Module) MinterOfToken(ctx context.Context, serialID string) (ledger.Principal, error) {
	asset, err := m.Queries.GetAsset.Execute(ctx, serialID)
	return asset.Minter, err
}

func (m Module) GetTokenFromSerialID(ctx context.Context, serialID string) (uint64, error) {
	asset, err := m.Queries.GetAsset.Execute(ctx, serialID)
	return asset.TokenID, err
}

func (m Module) GetApproved(ctx context.Context, serialID string) (ledger.Principal, error) {
	asset, err := m.Queries.GetAsset.Execute(ctx, serialID)
	return asset.ApprovedOperator, err
}

func (m Module) MarketplaceAddress(ctx context.Context) (ledger.Principal, error) {
	return m.Queries.GetMarketplace.Execute(ctx)
}
