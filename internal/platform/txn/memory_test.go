package txn

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type counter struct {
	mu    sync.Mutex
	value int
}

func (c *counter) add(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value += n
}

func (c *counter) get() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *counter) Snapshot() func() {
	saved := c.get()
	return func() {
		c.mu.Lock()
		c.value = saved
		c.mu.Unlock()
	}
}

func TestWithinTxRestoresParticipantsOnError(t *testing.T) {
	first, second := &counter{}, &counter{}
	coordinator := NewMemory(first)
	coordinator.Enlist(second)

	boom := errors.New("boom")
	err := coordinator.WithinTx(context.Background(), func(ctx context.Context) error {
		first.add(1)
		second.add(2)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if first.get() != 0 || second.get() != 0 {
		t.Fatalf("expected rollback, got %d and %d", first.get(), second.get())
	}
}

func TestNestedWithinTxJoinsOuterUnit(t *testing.T) {
	store := &counter{}
	coordinator := NewMemory(store)

	err := coordinator.WithinTx(context.Background(), func(ctx context.Context) error {
		store.add(1)
		if err := coordinator.WithinTx(ctx, func(context.Context) error {
			store.add(10)
			return nil
		}); err != nil {
			return err
		}
		return errors.New("outer fails after inner succeeded")
	})
	if err == nil {
		t.Fatalf("expected outer error")
	}
	if store.get() != 0 {
		t.Fatalf("inner write must roll back with the outer unit, got %d", store.get())
	}
}

func TestPanicRestoresAndRepanics(t *testing.T) {
	store := &counter{}
	coordinator := NewMemory(store)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic to propagate")
		}
		if store.get() != 0 {
			t.Fatalf("expected rollback on panic, got %d", store.get())
		}
	}()
	_ = coordinator.WithinTx(context.Background(), func(context.Context) error {
		store.add(5)
		panic("payee misbehaved")
	})
}

func TestWriteInsideViewIsRejected(t *testing.T) {
	coordinator := NewMemory()
	err := coordinator.View(context.Background(), func(ctx context.Context) error {
		return coordinator.WithinTx(ctx, func(context.Context) error { return nil })
	})
	if !errors.Is(err, ErrWriteInsideView) {
		t.Fatalf("expected ErrWriteInsideView, got %v", err)
	}
}

func TestCoordinatorsDoNotShareUnits(t *testing.T) {
	a, b := NewMemory(), NewMemory()
	err := a.WithinTx(context.Background(), func(ctx context.Context) error {
		return b.View(ctx, func(context.Context) error { return nil })
	})
	if err != nil {
		t.Fatalf("independent coordinators must not interfere: %v", err)
	}
}

func TestConcurrentWritersAreSerialized(t *testing.T) {
	store := &counter{}
	coordinator := NewMemory(store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = coordinator.WithinTx(context.Background(), func(context.Context) error {
				current := store.get()
				store.add(1)
				if store.get() != current+1 {
					return errors.New("interleaved writer")
				}
				return nil
			})
		}()
	}
	wg.Wait()
	if store.get() != 50 {
		t.Fatalf("expected 50 increments, got %d", store.get())
	}
}
