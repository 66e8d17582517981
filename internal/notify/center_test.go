package notify

import (
	"encoding/json"
	"testing"
	"time"
)

func TestCenter_Push_Defaults(t *testing.T) {
	c := New(10)

	e := c.Push(KindSuccess, "profile saved")

	if e.Title != "Success" {
		t.Errorf("expected default title 'Success', got %q", e.Title)
	}
	if e.Duration != DefaultDuration {
		t.Errorf("expected default duration %v, got %v", DefaultDuration, e.Duration)
	}
	if e.Kind != KindSuccess {
		t.Errorf("expected kind success, got %s", e.Kind)
	}
	if e.Message != "profile saved" {
		t.Errorf("unexpected message %q", e.Message)
	}
	if e.ID == "" {
		t.Error("expected non-empty event id")
	}
}

func TestCenter_Push_KindTitles(t *testing.T) {
	c := New(10)

	tests := []struct {
		kind  Kind
		title string
	}{
		{KindSuccess, "Success"},
		{KindError, "Error"},
		{KindWarning, "Warning"},
		{KindInfo, "Info"},
	}

	for _, tt := range tests {
		e := c.Push(tt.kind, "msg")
		if e.Title != tt.title {
			t.Errorf("kind %s: expected title %q, got %q", tt.kind, tt.title, e.Title)
		}
	}
}

func TestCenter_Push_Overrides(t *testing.T) {
	c := New(10)

	e := c.Push(KindError, "boom", WithTitle("Save failed"), WithDuration(10*time.Second))

	if e.Title != "Save failed" {
		t.Errorf("expected overridden title, got %q", e.Title)
	}
	if e.Duration != 10*time.Second {
		t.Errorf("expected overridden duration, got %v", e.Duration)
	}
}

func TestCenter_ListIsCopy(t *testing.T) {
	c := New(10)
	c.Success("one")
	c.Error("two")

	list := c.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 events, got %d", len(list))
	}

	list[0].Message = "mutated"
	if c.List()[0].Message != "one" {
		t.Error("modifying the returned list should not affect the feed")
	}
}

func TestCenter_Limit(t *testing.T) {
	c := New(3)
	for i := 0; i < 5; i++ {
		c.Info("msg")
	}

	list := c.List()
	if len(list) != 3 {
		t.Fatalf("expected feed capped at 3, got %d", len(list))
	}
	// Oldest events dropped, so the first kept one is the third pushed.
	if list[0].ID != "n-3" {
		t.Errorf("expected oldest kept event n-3, got %s", list[0].ID)
	}
}

func TestCenter_Dismiss(t *testing.T) {
	c := New(10)
	e := c.Success("bye")

	if !c.Dismiss(e.ID) {
		t.Error("expected dismiss to succeed")
	}
	if c.Dismiss(e.ID) {
		t.Error("expected second dismiss to fail")
	}
	if len(c.List()) != 0 {
		t.Error("expected empty feed after dismiss")
	}
}

func TestCenter_Clear(t *testing.T) {
	c := New(10)
	c.Success("a")
	c.Warning("b")

	c.Clear()
	if len(c.List()) != 0 {
		t.Error("expected empty feed after clear")
	}
}

func TestEvent_JSONDurationInMilliseconds(t *testing.T) {
	c := New(10)
	e := c.Push(KindSuccess, "profile saved")

	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(raw, &wire); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got, want := wire["durationMs"], float64(5000); got != want {
		t.Errorf("expected durationMs %v, got %v", want, got)
	}

	var back Event
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("round-trip failed: %v", err)
	}
	if back.Duration != DefaultDuration {
		t.Errorf("expected duration %v after round-trip, got %v", DefaultDuration, back.Duration)
	}
}
