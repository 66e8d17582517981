package notify

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// Kind classifies a notification event.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultDuration is how long the display surface should keep an event
// visible when the emitter does not say otherwise.
const DefaultDuration = 5 * time.Second

// defaultTitles maps each kind to the title used when the caller omits one.
var defaultTitles = map[Kind]string{
	KindSuccess: "Success",
	KindError:   "Error",
	KindWarning: "Warning",
	KindInfo:    "Info",
}

// Event is a single user-facing notification. Delivery is fire-and-forget;
// the display surface owns timed removal.
type Event struct {
	ID        string
	Kind      Kind
	Title     string
	Message   string
	Duration  time.Duration
	CreatedAt time.Time
}

// eventWire is the JSON shape of an Event. Durations travel as whole
// milliseconds; time.Duration would otherwise serialize as nanoseconds.
type eventWire struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Duration  int64     `json:"durationMs"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventWire{
		ID:        e.ID,
		Kind:      e.Kind,
		Title:     e.Title,
		Message:   e.Message,
		Duration:  e.Duration.Milliseconds(),
		CreatedAt: e.CreatedAt,
	})
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = Event{
		ID:        w.ID,
		Kind:      w.Kind,
		Title:     w.Title,
		Message:   w.Message,
		Duration:  time.Duration(w.Duration) * time.Millisecond,
		CreatedAt: w.CreatedAt,
	}
	return nil
}

// Option customizes a pushed event.
type Option func(*Event)

// WithTitle overrides the kind-specific default title.
func WithTitle(title string) Option {
	return func(e *Event) { e.Title = title }
}

// WithDuration overrides the default display duration.
func WithDuration(d time.Duration) Option {
	return func(e *Event) { e.Duration = d }
}

// Center is a bounded in-memory notification feed. It is an injectable value,
// not a package singleton, so tests and callers can own their own feed.
type Center struct {
	mu     sync.Mutex
	events []Event
	limit  int
	seq    uint64
	now    func() time.Time
}

// New creates a Center that keeps at most limit events (oldest dropped first).
func New(limit int) *Center {
	if limit <= 0 {
		limit = 100
	}
	return &Center{limit: limit, now: time.Now}
}

// SetClock replaces the event timestamp source. Tests only.
func (c *Center) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Push records a fully-populated event, filling title and duration with
// kind-specific defaults when the caller omits them, and returns it.
func (c *Center) Push(kind Kind, message string, opts ...Option) Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	e := Event{
		ID:        "n-" + strconv.FormatUint(c.seq, 10),
		Kind:      kind,
		Message:   message,
		Duration:  DefaultDuration,
		CreatedAt: c.now(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	if e.Title == "" {
		e.Title = defaultTitles[kind]
	}

	c.events = append(c.events, e)
	if len(c.events) > c.limit {
		c.events = c.events[len(c.events)-c.limit:]
	}
	return e
}

// Success records a success event with default title and duration.
func (c *Center) Success(message string, opts ...Option) Event {
	return c.Push(KindSuccess, message, opts...)
}

// Error records an error event with default title and duration.
func (c *Center) Error(message string, opts ...Option) Event {
	return c.Push(KindError, message, opts...)
}

// Warning records a warning event.
func (c *Center) Warning(message string, opts ...Option) Event {
	return c.Push(KindWarning, message, opts...)
}

// Info records an info event.
func (c *Center) Info(message string, opts ...Option) Event {
	return c.Push(KindInfo, message, opts...)
}

// List returns a copy of the current feed, oldest first.
func (c *Center) List() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Dismiss removes a single event by id. Returns false if it is not present.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.events {
		if c.events[i].ID == id {
			c.events = append(c.events[:i], c.events[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every event.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}
