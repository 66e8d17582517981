package logger

import (
	"os"
	"testing"
)

func TestWithComponent(t *testing.T) {
	entry := WithComponent("test-component")
	if entry == nil {
		t.Fatal("expected non-nil entry")
	}

	if val, ok := entry.Data["component"]; !ok {
		t.Error("expected component field to be set")
	} else if val != "test-component" {
		t.Errorf("expected component 'test-component', got '%v'", val)
	}
}

func TestWithResource(t *testing.T) {
	entry := WithResource("fetch", "profile")
	if entry == nil {
		t.Fatal("expected non-nil entry")
	}

	if val := entry.Data["component"]; val != "fetch" {
		t.Errorf("expected component 'fetch', got '%v'", val)
	}
	if val := entry.Data["resource"]; val != "profile" {
		t.Errorf("expected resource 'profile', got '%v'", val)
	}
}

func TestLoggerInit(t *testing.T) {
	if Logger == nil {
		t.Fatal("expected Logger to be initialized")
	}

	if Logger.Out != os.Stdout {
		t.Error("expected Logger output to be os.Stdout")
	}
}
