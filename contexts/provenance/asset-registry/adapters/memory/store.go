package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"provenance/contexts/provenance/asset-registry/domain/entities"
	domainerrors "provenance/contexts/provenance/asset-registry/domain/errors"
	contractsv1 "provenance/contracts/gen/events/v1"
	ledger "provenance/contracts/ledger/v1"
	"provenance/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is an in-memory adapter for assets and registry settings.
type Store struct {
	mu       sync.RWMutex
	assets   map[string]entities.Asset
	settings entities.RegistrySettings
	outbox   *outbox.Buffer
}

func NewStore() *Store {
	return &Store{
		assets: make(map[string]entities.Asset),
		outbox: outbox.NewBuffer(),
	}
}

func (s *Store) GetAsset(_ context.Context, serialID string) (entities.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	asset, ok := s.assets[serialID]
	if !ok {
		return entities.Asset{}, domainerrors.ErrTokenNotFound
	}
	return asset, nil
}

func (s *Store) GetSettings(_ context.Context) (entities.RegistrySettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *Store) AllocateTokenID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.LastTokenID++
	return s.settings.LastTokenID, nil
}

func (s *Store) CreateAssetWithOutbox(ctx context.Context, asset entities.Asset, event contractsv1.Envelope) error {
	s.mu.Lock()
	if _, exists := s.assets[asset.SerialID]; exists {
		s.mu.Unlock()
		return domainerrors.ErrSerialAlreadyMinted
	}
	s.assets[asset.SerialID] = asset
	s.mu.Unlock()
	return s.outbox.Append(ctx, event)
}

func (s *Store) UpdateAsset(_ context.Context, asset entities.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.assets[asset.SerialID]; !exists {
		return domainerrors.ErrTokenNotFound
	}
	s.assets[asset.SerialID] = asset
	return nil
}

func (s *Store) UpdateAssetWithOutbox(ctx context.Context, asset entities.Asset, event contractsv1.Envelope) error {
	if err := s.UpdateAsset(ctx, asset); err != nil {
		return err
	}
	return s.outbox.Append(ctx, event)
}

func (s *Store) DeleteAssetWithOutbox(ctx context.Context, serialID string, event contractsv1.Envelope) error {
	s.mu.Lock()
	if _, exists := s.assets[serialID]; !exists {
		s.mu.Unlock()
		return domainerrors.ErrTokenNotFound
	}
	delete(s.assets, serialID)
	s.mu.Unlock()
	return s.outbox.Append(ctx, event)
}

func (s *Store) SaveMarketplaceOperatorWithOutbox(ctx context.Context, operator ledger.Principal, event contractsv1.Envelope) error {
	s.mu.Lock()
	s.settings.MarketplaceOperator = operator
	s.mu.Unlock()
	return s.outbox.Append(ctx, event)
}

func (s *Store) Outbox() *outbox.Buffer {
	return s.outbox
}

func (s *Store) Snapshot() func() {
	s.mu.RLock()
	savedAssets := maps.Clone(s.assets)
	savedSettings := s.settings
	s.mu.RUnlock()
	restoreOutbox := s.outbox.Snapshot()

	return func() {
		s.mu.Lock()
		s.assets = savedAssets
		s.settings = savedSettings
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
