package damper

import (
	"testing"
	"time"
)

func TestKeyName(t *testing.T) {
	field := KeyName.Field("search")
	if field.Key().Name() != "name" {
		t.Errorf("expected key 'name', got %q", field.Key().Name())
	}
}

func TestKeyDelay(t *testing.T) {
	field := KeyDelay.Field(300 * time.Millisecond)
	if field.Key().Name() != "delay" {
		t.Errorf("expected key 'delay', got %q", field.Key().Name())
	}
}

func TestKeyWindow(t *testing.T) {
	field := KeyWindow.Field(300 * time.Millisecond)
	if field.Key().Name() != "window" {
		t.Errorf("expected key 'window', got %q", field.Key().Name())
	}
}

func TestKeyError(t *testing.T) {
	field := KeyError.Field("something went wrong")
	if field.Key().Name() != "error" {
		t.Errorf("expected key 'error', got %q", field.Key().Name())
	}
}

func TestKeyArgs(t *testing.T) {
	field := KeyArgs.Field(2)
	if field.Key().Name() != "args" {
		t.Errorf("expected key 'args', got %q", field.Key().Name())
	}
}
