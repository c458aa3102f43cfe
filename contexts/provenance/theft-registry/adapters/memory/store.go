package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"provenance/contexts/provenance/theft-registry/domain/entities"
	contractsv1 "provenance/contracts/gen/events/v1"
	"provenance/internal/shared/outbox"

	"github.com/google/uuid"
)

type Store struct {
	mu     sync.RWMutex
	flags  map[string]entities.TheftFlag
	outbox *outbox.Buffer
}

func NewStore() *Store {
	return &Store{
		flags:  make(map[string]entities.TheftFlag),
		outbox: outbox.NewBuffer(),
	}
}

func (s *Store) GetFlag(_ context.Context, serialID string) (entities.TheftFlag, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flag, ok := s.flags[serialID]
	return flag, ok, nil
}

func (s *Store) SaveFlagWithOutbox(ctx context.Context, flag entities.TheftFlag, event contractsv1.Envelope) error {
	s.mu.Lock()
	s.flags[flag.SerialID] = flag
	s.mu.Unlock()
	return s.outbox.Append(ctx, event)
}

func (s *Store) Outbox() *outbox.Buffer {
	return s.outbox
}

func (s *Store) Snapshot() func() {
	s.mu.RLock()
	saved := maps.Clone(s.flags)
	s.mu.RUnlock()
	restoreOutbox := s.outbox.Snapshot()

	return func() {
		s.mu.Lock()
		s.flags = saved
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
