package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bazaarhq/adminapi/internal/backend"
	"github.com/bazaarhq/adminapi/internal/notify"
)

type profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// testClock is an adjustable time source.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestResource(t *testing.T, load Loader[profile], opts Options) (*Resource[profile], *notify.Center) {
	t.Helper()
	center := notify.New(50)
	return NewResource("profile", load, center, opts), center
}

func TestResource_Get_CachesWithinTTL(t *testing.T) {
	clock := newTestClock()
	var calls int32
	load := func(ctx context.Context) (profile, error) {
		atomic.AddInt32(&calls, 1)
		return profile{ID: "1", Name: "A"}, nil
	}
	r, _ := newTestResource(t, load, Options{TTL: 5 * time.Minute, Clock: clock.Now})

	first, err := r.Get(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != "1" || first.Name != "A" {
		t.Errorf("unexpected value: %+v", first)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 load, got %d", calls)
	}

	// Immediate second Get(false): no remote call, same value.
	second, err := r.Get(context.Background(), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second != first {
		t.Errorf("expected identical cached value, got %+v", second)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected cached read to skip the loader, got %d calls", calls)
	}
}

func TestResource_Get_ForceAlwaysLoads(t *testing.T) {
	clock := newTestClock()
	var calls int32
	load := func(ctx context.Context) (profile, error) {
		atomic.AddInt32(&calls, 1)
		return profile{ID: "1"}, nil
	}
	r, _ := newTestResource(t, load, Options{TTL: 5 * time.Minute, Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Get(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected force refresh to hit the loader, got %d calls", calls)
	}
}

func TestResource_Get_TTLExpiry(t *testing.T) {
	clock := newTestClock()
	var calls int32
	load := func(ctx context.Context) (profile, error) {
		atomic.AddInt32(&calls, 1)
		return profile{ID: "1"}, nil
	}
	r, _ := newTestResource(t, load, Options{TTL: 5 * time.Minute, Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 6 minutes later the cached value is stale (TTL = 5 min).
	clock.Advance(6 * time.Minute)
	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected stale value to trigger a load, got %d calls", calls)
	}
}

func TestResource_Get_FailurePath(t *testing.T) {
	clock := newTestClock()
	loadErr := errors.New("GET /profile: 401 unauthorized")
	load := func(ctx context.Context) (profile, error) {
		return profile{}, loadErr
	}
	r, center := newTestResource(t, load, Options{Clock: clock.Now})

	_, err := r.Get(context.Background(), false)
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected original error to surface, got %v", err)
	}

	state := r.State()
	if state.Loading {
		t.Error("expected loading false after failure")
	}
	if state.Err == nil {
		t.Error("expected recorded error")
	}

	events := center.List()
	if len(events) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(events))
	}
	if events[0].Kind != notify.KindError {
		t.Errorf("expected error notification, got %s", events[0].Kind)
	}
	// "401" in the raw text maps to the authorization message.
	if events[0].Message != backend.MsgUnauthorized {
		t.Errorf("expected %q, got %q", backend.MsgUnauthorized, events[0].Message)
	}
}

func TestResource_Get_SuccessAfterFailureClearsError(t *testing.T) {
	clock := newTestClock()
	fail := true
	load := func(ctx context.Context) (profile, error) {
		if fail {
			return profile{}, errors.New("connection refused")
		}
		return profile{ID: "1"}, nil
	}
	r, _ := newTestResource(t, load, Options{Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err == nil {
		t.Fatal("expected failure")
	}

	fail = false
	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state := r.State(); state.Err != nil {
		t.Errorf("expected error cleared after success, got %v", state.Err)
	}
}

func TestResource_Update_ServerResponseIsAuthoritative(t *testing.T) {
	clock := newTestClock()
	load := func(ctx context.Context) (profile, error) {
		return profile{ID: "1", Name: "A"}, nil
	}
	r, center := newTestResource(t, load, Options{TTL: 5 * time.Minute, Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server responds with more fields than the caller sent; the cache must
	// become exactly the server object.
	updated, err := r.Update(context.Background(), "Profile updated", func(ctx context.Context) (profile, error) {
		return profile{ID: "1", Name: "B", Email: "x@y.com"}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Email != "x@y.com" || updated.Name != "B" {
		t.Errorf("unexpected updated value: %+v", updated)
	}

	state := r.State()
	if state.Data == nil || *state.Data != updated {
		t.Errorf("expected cache replaced with server response, got %+v", state.Data)
	}

	events := center.List()
	if len(events) != 1 {
		t.Fatalf("expected one notification, got %d", len(events))
	}
	if events[0].Kind != notify.KindSuccess || events[0].Title != "Success" {
		t.Errorf("expected success notification with default title, got %+v", events[0])
	}
	if events[0].Message != "Profile updated" {
		t.Errorf("unexpected message %q", events[0].Message)
	}
}

func TestResource_Update_RefreshesTTL(t *testing.T) {
	clock := newTestClock()
	var calls int32
	load := func(ctx context.Context) (profile, error) {
		atomic.AddInt32(&calls, 1)
		return profile{ID: "1"}, nil
	}
	r, _ := newTestResource(t, load, Options{TTL: 5 * time.Minute, Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clock.Advance(4 * time.Minute)
	if _, err := r.Update(context.Background(), "saved", func(ctx context.Context) (profile, error) {
		return profile{ID: "1", Name: "B"}, nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 4 more minutes: within TTL of the update, not of the original fetch.
	clock.Advance(4 * time.Minute)
	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("expected update to refresh the cache timestamp, got %d loads", calls)
	}
}

func TestResource_Update_Failure(t *testing.T) {
	clock := newTestClock()
	load := func(ctx context.Context) (profile, error) {
		return profile{ID: "1", Name: "A"}, nil
	}
	r, center := newTestResource(t, load, Options{Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	writeErr := errors.New("500 internal server error")
	_, err := r.Update(context.Background(), "saved", func(ctx context.Context) (profile, error) {
		return profile{}, writeErr
	})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected original error, got %v", err)
	}

	// Cache keeps the pre-update value.
	state := r.State()
	if state.Data == nil || state.Data.Name != "A" {
		t.Errorf("expected cache untouched on failure, got %+v", state.Data)
	}

	events := center.List()
	if len(events) != 1 || events[0].Kind != notify.KindError {
		t.Fatalf("expected exactly one error notification, got %+v", events)
	}
	if events[0].Message != backend.MsgServer {
		t.Errorf("expected %q, got %q", backend.MsgServer, events[0].Message)
	}
}

func TestResource_Mutate_TouchesOnlySubField(t *testing.T) {
	clock := newTestClock()
	load := func(ctx context.Context) (profile, error) {
		return profile{ID: "1", Name: "A", Email: "a@b.com"}, nil
	}
	r, center := newTestResource(t, load, Options{TTL: 5 * time.Minute, Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.Mutate(context.Background(), "Preferences updated",
		func(ctx context.Context) error { return nil },
		func(p *profile) { p.Email = "new@b.com" },
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := r.State()
	if state.Data.Email != "new@b.com" {
		t.Errorf("expected sub-field applied, got %+v", state.Data)
	}
	if state.Data.Name != "A" {
		t.Errorf("expected rest of cached value unchanged, got %+v", state.Data)
	}

	events := center.List()
	if len(events) != 1 || events[0].Kind != notify.KindSuccess {
		t.Fatalf("expected one success notification, got %+v", events)
	}
}

func TestResource_Mutate_Failure(t *testing.T) {
	clock := newTestClock()
	load := func(ctx context.Context) (profile, error) {
		return profile{ID: "1", Email: "a@b.com"}, nil
	}
	r, center := newTestResource(t, load, Options{Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opErr := errors.New("network is unreachable")
	err := r.Mutate(context.Background(), "saved",
		func(ctx context.Context) error { return opErr },
		func(p *profile) { p.Email = "should-not-apply" },
	)
	if !errors.Is(err, opErr) {
		t.Fatalf("expected original error, got %v", err)
	}
	if r.State().Data.Email != "a@b.com" {
		t.Error("expected apply skipped on failure")
	}
	events := center.List()
	if len(events) != 1 || events[0].Kind != notify.KindError {
		t.Fatalf("expected one error notification, got %+v", events)
	}
	if events[0].Message != backend.MsgNetwork {
		t.Errorf("expected %q, got %q", backend.MsgNetwork, events[0].Message)
	}
}

func TestResource_Invalidate(t *testing.T) {
	clock := newTestClock()
	var calls int32
	load := func(ctx context.Context) (profile, error) {
		atomic.AddInt32(&calls, 1)
		return profile{ID: "1"}, nil
	}
	r, _ := newTestResource(t, load, Options{TTL: 5 * time.Minute, Clock: clock.Now})

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.Invalidate()

	if r.Fresh() {
		t.Error("expected resource stale after invalidate")
	}
	// Stale value still visible until superseded.
	if r.State().Data == nil {
		t.Error("expected stale value kept for display")
	}

	if _, err := r.Get(context.Background(), false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected invalidate to force a reload, got %d calls", calls)
	}
}

func TestResource_Get_DedupeCoalescesConcurrentLoads(t *testing.T) {
	clock := newTestClock()
	var calls int32
	release := make(chan struct{})
	load := func(ctx context.Context) (profile, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return profile{ID: "1"}, nil
	}
	r, _ := newTestResource(t, load, Options{TTL: 5 * time.Minute, Dedupe: true, Clock: clock.Now})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Get(context.Background(), false); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	// Give the goroutines time to pile onto the singleflight.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected concurrent loads coalesced into 1 call, got %d", got)
	}
}

func TestResource_Get_ForceBypassesDedupe(t *testing.T) {
	clock := newTestClock()
	var calls int32
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	load := func(ctx context.Context) (profile, error) {
		n := atomic.AddInt32(&calls, 1)
		started <- struct{}{}
		if n == 1 {
			// the first load is stuck on a slow backend holding stale data
			<-release
			return profile{ID: "1", Name: "stale"}, nil
		}
		return profile{ID: "1", Name: "current"}, nil
	}
	r, _ := newTestResource(t, load, Options{TTL: 5 * time.Minute, Dedupe: true, Clock: clock.Now})

	joined := make(chan profile, 1)
	go func() {
		v, _ := r.Get(context.Background(), false)
		joined <- v
	}()
	<-started

	// a forced read while the first load hangs must issue its own request
	forced, err := r.Get(context.Background(), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forced.Name != "current" {
		t.Errorf("expected forced read to reach the backend, got %+v", forced)
	}

	close(release)
	if v := <-joined; v.Name != "stale" {
		t.Errorf("expected the pending load to finish with its own result, got %+v", v)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("expected 2 backend calls, got %d", got)
	}
}

func TestResource_LoadingState(t *testing.T) {
	clock := newTestClock()
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (profile, error) {
		close(started)
		<-release
		return profile{ID: "1"}, nil
	}
	r, _ := newTestResource(t, load, Options{Clock: clock.Now})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = r.Get(context.Background(), false)
	}()

	<-started
	if !r.State().Loading {
		t.Error("expected loading true while the request is in flight")
	}
	close(release)
	<-done
	if r.State().Loading {
		t.Error("expected loading false after completion")
	}
}
