package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"provenance/contexts/commerce/resale-marketplace/domain/entities"
	domainerrors "provenance/contexts/commerce/resale-marketplace/domain/errors"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store keeps listings by token id and escrow balances by payee.
type Store struct {
	mu       sync.RWMutex
	listings map[uint64]entities.Listing
	balances map[ledger.Principal]entities.Balance
	outbox   *outbox.Buffer
}

func NewStore() *Store {
	return &Store{
		listings: make(map[uint64]entities.Listing),
		balances: make(map[ledger.Principal]entities.Balance),
		outbox:   outbox.NewBuffer(),
	}
}

func (s *Store) GetListing(_ context.Context, tokenID uint64) (entities.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	listing, ok := s.listings[tokenID]
	if !ok {
		return entities.Listing{}, domainerrors.ErrWatchNotListed
	}
	return listing, nil
}

func (s *Store) SaveListingWithOutbox(ctx context.Context, listing entities.Listing, event contractsv1.Envelope) error {
	s.mu.Lock()
	s.listings[listing.TokenID] = listing
	s.mu.Unlock()
	return s.outbox.Append(ctx, event)
}

func (s *Store) DeleteListingWithOutbox(ctx context.Context, tokenID uint64, event contractsv1.Envelope) error {
	s.mu.Lock()
	if _, ok := s.listings[tokenID]; !ok {
		s.mu.Unlock()
		return domainerrors.ErrWatchNotListed
	}
	delete(s.listings, tokenID)
	s.mu.Unlock()
	return s.outbox.Append(ctx, event)
}

func (s *Store) GetBalance(_ context.Context, payee ledger.Principal) (entities.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balance, ok := s.balances[payee]
	if !ok {
		return entities.Balance{Payee: payee}, nil
	}
	return balance, nil
}

func (s *Store) SaveBalance(_ context.Context, balance entities.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[balance.Payee] = balance
	return nil
}

func (s *Store) AppendOutbox(ctx context.Context, event contractsv1.Envelope) error {
	return s.outbox.Append(ctx, event)
}

func (s *Store) Outbox() *outbox.Buffer {
	return s.outbox
}

func (s *Store) Snapshot() func() {
	s.mu.RLock()
	savedListings := maps.Clone(s.listings)
	savedBalances := maps.Clone(s.balances)
	s.mu.RUnlock()
	restoreOutbox := s.outbox.Snapshot()

	return func() {
		s.mu.Lock()
		s.listings = savedListings
		s.balances = savedBalances
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
