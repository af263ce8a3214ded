package database

import (
	"context"
	"sync"
	"sync/atomic"

	"task-manager/internal/errors"
)

// OpenFunc builds the process's single adapter.
type OpenFunc func(ctx context.Context) (Adapter, error)

// Barrier holds the process-wide adapter. It is written once, by the
// initialization goroutine, and only read after ready is closed.
//
// Barrier satisfies Adapter itself, so callers can be handed the barrier at
// startup and will get a not-initialized error until the backend is up.
type Barrier struct {
	dialect Dialect

	once    sync.Once
	started atomic.Bool
	ready   chan struct{}
	cancel  context.CancelFunc

	adapter Adapter
	err     error
}

// NewBarrier returns a closed barrier for a backend speaking dialect.
func NewBarrier(dialect Dialect) *Barrier {
	return &Barrier{dialect: dialect, ready: make(chan struct{})}
}

// Start launches initialization. Calls after the first are ignored.
// Close cancels the context handed to open.
func (b *Barrier) Start(ctx context.Context, open OpenFunc) {
	b.once.Do(func() {
		ctx, b.cancel = context.WithCancel(ctx)
		b.started.Store(true)
		go func() {
			defer close(b.ready)
			adapter, err := open(ctx)
			if err == nil && adapter == nil {
				err = errors.NewNotInitializedError("database")
			}
			b.adapter, b.err = adapter, err
		}()
	})
}

// Wait blocks until initialization finishes or ctx is done, and returns the
// initialization error if there was one.
func (b *Barrier) Wait(ctx context.Context) error {
	select {
	case <-b.ready:
		return b.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ready reports whether initialization completed successfully.
func (b *Barrier) Ready() bool {
	select {
	case <-b.ready:
		return b.err == nil
	default:
		return false
	}
}

// Adapter returns the initialized adapter without blocking.
func (b *Barrier) Adapter() (Adapter, error) {
	select {
	case <-b.ready:
		if b.err != nil {
			return nil, b.err
		}
		return b.adapter, nil
	default:
		return nil, errors.NewNotInitializedError("database")
	}
}

// Execute implements Adapter.
func (b *Barrier) Execute(ctx context.Context, statement string, params ...any) (*Result, error) {
	adapter, err := b.Adapter()
	if err != nil {
		return nil, err
	}
	return adapter.Execute(ctx, statement, params...)
}

// Dialect implements Adapter.
func (b *Barrier) Dialect() Dialect { return b.dialect }

// Close abandons a pending initialization, waits for open to return and
// shuts the adapter down.
func (b *Barrier) Close() error {
	if !b.started.Load() {
		return nil
	}
	b.cancel()
	<-b.ready
	if b.adapter == nil {
		return nil
	}
	return b.adapter.Close()
}
