package ports

import (
	"context"
	"time"

	"provenance/contexts/provenance/theft-registry/domain/entities"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Transactor scopes a unit of work; nested calls join the outer one.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// AssetOwnership resolves the current owner of a serial id. A missing asset
// is reported as a not-found fault.
type AssetOwnership interface {
	OwnerOf(ctx context.Context, serialID string) (ledger.Principal, error)
}

type Repository interface {
	// GetFlag returns the stored flag and whether one exists.
	GetFlag(ctx context.Context, serialID string) (entities.TheftFlag, bool, error)
	SaveFlagWithOutbox(ctx context.Context, flag entities.TheftFlag, event contractsv1.Envelope) error
}
