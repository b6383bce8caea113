package services_test

import (
	"errors"
	"strings"
	"testing"

	"cuemark/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "beats", "analyze", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"beats", "analyze", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "resolve", "dial", "no response", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
}

func TestIsFatal(t *testing.T) {
	depsErr := services.Wrap(services.ErrConfiguration, "beats", "select", "no analysis engine available", nil)
	if !services.IsFatal(depsErr) {
		t.Fatalf("expected configuration error to be fatal: %v", depsErr)
	}

	clipErr := services.Wrap(services.ErrExternalTool, "beats", "analyze", "decode failed", errors.New("io"))
	if services.IsFatal(clipErr) {
		t.Fatalf("expected external tool error to be recoverable: %v", clipErr)
	}

	if services.IsFatal(nil) {
		t.Fatal("nil error is not fatal")
	}
}
