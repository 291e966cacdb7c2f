package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/todoapp/core/internal/domain/entities"
)

// Guard serializes every transaction against the document store. One Guard is
// shared by all services built on the same store.
type Guard struct {
	sem      chan struct{}
	poisoned atomic.Bool
}

// NewGuard creates an unlocked guard
func NewGuard() *Guard {
	return &Guard{sem: make(chan struct{}, 1)}
}

// Do runs fn while holding the guard. The context is only consulted while
// waiting: fn receives a copy that is never canceled, so a started transaction
// runs to completion even if the caller gives up. A panic in fn poisons the
// guard and every later call fails with ErrLockPoisoned.
func (g *Guard) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-g.sem }()

	if g.poisoned.Load() {
		return entities.ErrLockPoisoned
	}

	defer func() {
		if r := recover(); r != nil {
			g.poisoned.Store(true)
			err = fmt.Errorf("%w: %v", entities.ErrLockPoisoned, r)
		}
	}()

	return fn(context.WithoutCancel(ctx))
}

// Poisoned reports whether an earlier transaction panicked.
func (g *Guard) Poisoned() bool {
	return g.poisoned.Load()
}
