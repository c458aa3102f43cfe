package ports

import (
	"context"
	"time"

	"provenance/contexts/provenance/asset-registry/domain/entities"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

// Clock abstracts current time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts event id generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Transactor scopes a unit of work. Calls made with a context that is
// already inside a unit of work join it.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// MinterDirectory answers whether a principal may mint.
type MinterDirectory interface {
	IsMinter(ctx context.Context, principal ledger.Principal) (bool, error)
}

// Repository is the write/read boundary for assets and registry settings.
type Repository interface {
	GetAsset(ctx context.Context, serialID string) (entities.Asset, error)
	GetSettings(ctx context.Context) (entities.RegistrySettings, error)
	// AllocateTokenID returns the next token id; ids are never reused.
	AllocateTokenID(ctx context.Context) (uint64, error)
	CreateAssetWithOutbox(ctx context.Context, asset entities.Asset, event contractsv1.Envelope) error
	UpdateAsset(ctx context.Context, asset entities.Asset) error
	UpdateAssetWithOutbox(ctx context.Context, asset entities.Asset, event contractsv1.Envelope) error
	DeleteAssetWithOutbox(ctx context.Context, serialID string, event contractsv1.Envelope) error
	SaveMarketplaceOperatorWithOutbox(ctx context.Context, operator ledger.Principal, event contractsv1.Envelope) error
}
