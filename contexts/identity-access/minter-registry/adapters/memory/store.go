package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"provenance/contexts/identity-access/minter-registry/domain/entities"
	domainerrors "provenance/contexts/identity-access/minter-registry/domain/errors"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing repository/clock/id ports.
// It is intended for tests and local development wiring; atomicity comes
// from enlisting it in a txn.Memory coordinator.
type Store struct {
	mu      sync.RWMutex
	minters map[ledger.Principal]entities.MinterProfile
	outbox  *outbox.Buffer
}

func NewStore() *Store {
	return &Store{
		minters: make(map[ledger.Principal]entities.MinterProfile),
		outbox:  outbox.NewBuffer(),
	}
}

func (s *Store) GetMinter(_ context.Context, address ledger.Principal) (entities.MinterProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.minters[address]
	if !ok {
		return entities.MinterProfile{}, domainerrors.ErrMinterNotFound
	}
	return profile, nil
}

func (s *Store) CreateMinterWithOutbox(ctx context.Context, profile entities.MinterProfile, event contractsv1.Envelope) error {
	s.mu.Lock()
	if _, exists := s.minters[profile.Address]; exists {
		s.mu.Unlock()
		return domainerrors.ErrMinterExists
	}
	s.minters[profile.Address] = profile
	s.mu.Unlock()

	return s.outbox.Append(ctx, event)
}

func (s *Store) DeleteMinterWithOutbox(ctx context.Context, address ledger.Principal, event contractsv1.Envelope) error {
	s.mu.Lock()
	if _, exists := s.minters[address]; !exists {
		s.mu.Unlock()
		return domainerrors.ErrMinterNotFound
	}
	delete(s.minters, address)
	s.mu.Unlock()

	return s.outbox.Append(ctx, event)
}

// Outbox exposes the module outbox for the relay.
func (s *Store) Outbox() *outbox.Buffer {
	return s.outbox
}

// Snapshot captures minters and outbox for rollback by txn.Memory.
func (s *Store) Snapshot() func() {
	s.mu.RLock()
	saved := maps.Clone(s.minters)
	s.mu.RUnlock()
	restoreOutbox := s.outbox.Snapshot()

	return func() {
		s.mu.Lock()
		s.minters = saved
		s.mu.Unlock()
		restoreOutbox()
	}
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
