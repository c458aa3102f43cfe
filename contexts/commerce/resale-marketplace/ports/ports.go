package ports

import (
	"context"
	"time"

	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Transactor scopes a unit of work. When the marketplace shares its
// transactor with the asset registry, a purchase and the asset transfer it
// performs commit or roll back together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// AssetView is the marketplace's read model of a registered asset.
type AssetView struct {
	SerialID         string
	TokenID          uint64
	Minter           ledger.Principal
	Owner            ledger.Principal
	ApprovedOperator ledger.Principal
}

type AssetLedger interface {
	GetAsset(ctx context.Context, serialID string) (AssetView, error)
	// Transfer moves the asset acting as operator, which must hold the
	// owner's approval.
	Transfer(ctx context.Context, operator ledger.Principal, serialID string, newOwner ledger.Principal) error
}

type TheftLookup interface {
	IsStolen(ctx context.Context, serialID string) (bool, error)
}

// RoyaltySchedule returns a minter's current rate, zero when not registered.
type RoyaltySchedule interface {
	RoyaltyRate(ctx context.Context, minter ledger.Principal) (ledger.BasisPoints, error)
}

// PaymentRail moves value out of escrow to an external payee.
type PaymentRail interface {
	Send(ctx context.Context, payee ledger.Principal, amount ledger.Amount) error
}

type Repository interface {
	GetListing(ctx context.Context, tokenID uint64) (entities.Listing, error)
	SaveListingWithOutbox(ctx context.Context, listing entities.Listing, event contractsv1.Envelope) error
	DeleteListingWithOutbox(ctx context.Context, tokenID uint64, event contractsv1.Envelope) error
	// GetBalance returns a zero balance for unknown payees.
	GetBalance(ctx context.Context, payee ledger.Principal) (entities.Balance, error)
	SaveBalance(ctx context.Context, balance entities.Balance) error
	AppendOutbox(ctx context.Context, event contractsv1.Envelope) error
}
