// Package fetch implements at-most-one-fresh-copy caching for remotely
// sourced resources. A Resource owns a single mutable cache cell: the value
// is replaced wholesale on every successful read or write, never merged.
package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/logger"
	"github.com/bazaarhq/adminapi/internal/notify"
)

// State is the caller-visible snapshot of a resource.
// Loading is true only while a remote call is in flight.
type State[T any] struct {
	Data    *T
	Loading bool
	Err     error
}

// Options tune a Resource. Zero values fall back to defaults.
type Options struct {
	// TTL is the freshness window; a cached value older than this is stale.
	TTL time.Duration
	// Dedupe coalesces concurrent loads of the resource into one remote
	// call. Forced reads always issue their own request. When false,
	// concurrent loads race and the later response wins.
	Dedupe bool
	// Clock overrides the timestamp source. Tests only.
	Clock func() time.Time
}

// DefaultTTL is the freshness window used when Options.TTL is zero.
const DefaultTTL = 5 * time.Minute

// Loader reads the remote resource.
type Loader[T any] func(ctx context.Context) (T, error)

// Resource caches one remotely-owned value with a TTL and reports
// success/failure of mutations to a notification feed.
type Resource[T any] struct {
	name   string
	load   Loader[T]
	ttl    time.Duration
	dedupe bool
	now    func() time.Time
	center *notify.Center

	mu         sync.Mutex
	value      *T
	capturedAt time.Time
	inflight   int
	err        error
	sf         singleflight.Group
}

// NewResource creates a cached resource. The name labels logs; center
// receives the success/error notifications and must not be nil.
func NewResource[T any](name string, load Loader[T], center *notify.Center, opts Options) *Resource[T] {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Resource[T]{
		name:   name,
		load:   load,
		ttl:    ttl,
		dedupe: opts.Dedupe,
		now:    now,
		center: center,
	}
}

// Get returns the resource value. A fresh cached value is returned without a
// remote call unless force is true. On failure the error is recorded, exactly
// one error notification is emitted, and the error is returned to the caller.
func (r *Resource[T]) Get(ctx context.Context, force bool) (T, error) {
	r.mu.Lock()
	if !force && r.value != nil && r.now().Sub(r.capturedAt) < r.ttl {
		v := *r.value
		r.mu.Unlock()
		return v, nil
	}
	r.mu.Unlock()

	// A forced read must reach the backend itself; joining a load that
	// started before the caller's write would hand back pre-write data.
	if r.dedupe && !force {
		out, err, _ := r.sf.Do(r.name, func() (any, error) {
			return r.loadAndCommit(ctx)
		})
		if err != nil {
			var zero T
			return zero, err
		}
		return out.(T), nil
	}
	return r.loadAndCommit(ctx)
}

// loadAndCommit performs the remote read and settles the cache cell.
// With Dedupe on, only the singleflight leader runs it, so the loading flag
// and the error notification fire once per actual remote call.
func (r *Resource[T]) loadAndCommit(ctx context.Context) (T, error) {
	r.mu.Lock()
	r.inflight++
	r.err = nil
	r.mu.Unlock()

	v, err := r.load(ctx)

	r.mu.Lock()
	r.inflight--
	if err != nil {
		r.err = err
		r.mu.Unlock()
		logger.WithResource("fetch", r.name).Warnf("load failed: %v", err)
		r.center.Error(backend.Humanize(err))
		var zero T
		return zero, err
	}
	r.value = &v
	r.capturedAt = r.now()
	r.err = nil
	r.mu.Unlock()
	return v, nil
}

// Update runs the remote write and, on success, replaces the whole cached
// value with the server-returned object (the server response is
// authoritative, not a merge of the caller's partial input), refreshes the
// timestamp and emits a success notification with the given message. On
// failure it emits an error notification and returns the error.
func (r *Resource[T]) Update(ctx context.Context, successMsg string, write func(ctx context.Context) (T, error)) (T, error) {
	r.mu.Lock()
	r.inflight++
	r.mu.Unlock()

	v, err := write(ctx)

	r.mu.Lock()
	r.inflight--
	if err != nil {
		r.err = err
		r.mu.Unlock()
		logger.WithResource("fetch", r.name).Warnf("update failed: %v", err)
		r.center.Error(backend.Humanize(err))
		var zero T
		return zero, err
	}
	r.value = &v
	r.capturedAt = r.now()
	r.err = nil
	r.mu.Unlock()
	r.center.Success(successMsg)
	return v, nil
}

// Mutate runs a side-effect-only remote mutation. On success only apply
// touches the cached value (its own sub-field), the timestamp is untouched
// and a success notification is emitted. Same error contract as Update.
func (r *Resource[T]) Mutate(ctx context.Context, successMsg string, op func(ctx context.Context) error, apply func(*T)) error {
	r.mu.Lock()
	r.inflight++
	r.mu.Unlock()

	err := op(ctx)

	r.mu.Lock()
	r.inflight--
	if err != nil {
		r.err = err
		r.mu.Unlock()
		logger.WithResource("fetch", r.name).Warnf("mutation failed: %v", err)
		r.center.Error(backend.Humanize(err))
		return err
	}
	if r.value != nil && apply != nil {
		apply(r.value)
	}
	r.err = nil
	r.mu.Unlock()
	r.center.Success(successMsg)
	return nil
}

// State returns a copy of the current fetch state. The stale value keeps
// being reported after TTL expiry until the next load supersedes it.
func (r *Resource[T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := State[T]{Loading: r.inflight > 0, Err: r.err}
	if r.value != nil {
		v := *r.value
		s.Data = &v
	}
	return s
}

// Fresh reports whether the cached value exists and is within TTL.
func (r *Resource[T]) Fresh() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value != nil && r.now().Sub(r.capturedAt) < r.ttl
}

// Invalidate drops freshness so the next Get refetches. The stale value is
// kept for display until it is superseded.
func (r *Resource[T]) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capturedAt = time.Time{}
}
