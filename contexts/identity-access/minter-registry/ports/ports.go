package ports

import (
	"context"
	"time"

	"provenance/contexts/identity-access/minter-registry/domain/entities"
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

// Repository is the write/read boundary for minter profiles. Outbox writes
// share the caller's unit of work.
type Repository interface {
	GetMinter(ctx context.Context, address ledger.Principal) (entities.MinterProfile, error)
	CreateMinterWithOutbox(ctx context.Context, profile entities.MinterProfile, event contractsv1.Envelope) error
	DeleteMinterWithOutbox(ctx context.Context, address ledger.Principal, event contractsv1.Envelope) error
}
