package txn

import (
	"context"
	"errors"
	"sync"
)

// Participant is an in-memory store whose whole state can be captured and
// put back. Snapshot must return a closure that restores the captured state.
type Participant interface {
	Snapshot() (restore func())
}

var ErrWriteInsideView = errors.New("write unit of work started inside a read-only view")

type mode int

const (
	modeRead mode = iota + 1
	modeWrite
)

type ctxKey struct {
	owner *Memory
}

// Memory is a unit-of-work coordinator for in-memory adapters. Writers are
// serialized on one lock; every enlisted participant is snapshotted when a
// write begins and restored when it fails. Calls that arrive with a context
// already inside a unit of work of the same coordinator join it.
type Memory struct {
	mu           sync.RWMutex
	enlistMu     sync.Mutex
	participants []Participant
}

func NewMemory(participants ...Participant) *Memory {
	m := &Memory{}
	m.Enlist(participants...)
	return m
}

func (m *Memory) Enlist(participants ...Participant) {
	m.enlistMu.Lock()
	defer m.enlistMu.Unlock()
	m.participants = append(m.participants, participants...)
}

func (m *Memory) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if current, ok := ctx.Value(ctxKey{owner: m}).(mode); ok {
		if current == modeRead {
			return ErrWriteInsideView
		}
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.enlistMu.Lock()
	participants := append([]Participant(nil), m.participants...)
	m.enlistMu.Unlock()

	restores := make([]func(), 0, len(participants))
	for _, participant := range participants {
		restores = append(restores, participant.Snapshot())
	}
	rollback := func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			rollback()
			panic(recovered)
		}
	}()

	if err := fn(context.WithValue(ctx, ctxKey{owner: m}, modeWrite)); err != nil {
		rollback()
		return err
	}
	return nil
}

func (m *Memory) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(ctxKey{owner: m}).(mode); ok {
		return fn(ctx)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(context.WithValue(ctx, ctxKey{owner: m}, modeRead))
}
