package beats_test

import (
	"context"
	"os"
	"testing"

	"cuemark/internal/beats"
	"cuemark/internal/logging"
	"cuemark/internal/services"
	"cuemark/internal/testsupport"
)

func TestSelectEngineFallsBackWithoutNeuralModel(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	// No interpreter means no neural model.
	cfg.Resolve.PythonPath = "/nonexistent/python3"

	engine, err := beats.SelectEngine(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("select engine: %v", err)
	}
	if engine.Name() != beats.EngineFallback {
		t.Fatalf("expected fallback engine, got %q", engine.Name())
	}
}

func TestSelectEngineFatalWhenNothingInstalled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Resolve.PythonPath = "/nonexistent/python3"
	t.Setenv("PATH", t.TempDir())

	_, err := beats.SelectEngine(context.Background(), cfg, logging.NewNop())
	if err == nil {
		t.Fatal("expected error when no analysis tools are installed")
	}
	if !services.IsFatal(err) {
		t.Fatalf("missing tools must be a configuration error, got %v", err)
	}
	if _, lookErr := os.Stat("/nonexistent/python3"); lookErr == nil {
		t.Fatal("test precondition broken: interpreter path exists")
	}
}
