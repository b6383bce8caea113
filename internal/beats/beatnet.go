package beats

import (
	"context"
	_ "embed"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"cuemark/internal/services"
)

//go:embed beatnet_detect.py
var beatnetScript string

// BeatNetEngine runs the BeatNet neural model through a one-shot Python
// subprocess. It analyzes the whole file and ignores the analysis window;
// downbeat ordinals are exact per the model's output.
type BeatNetEngine struct {
	pythonPath string
	runner     CommandRunner
}

// CommandRunner executes a command and returns its stdout. Injectable for tests.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func defaultRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

// NewBeatNetEngine constructs the high-accuracy engine using the given Python
// interpreter.
func NewBeatNetEngine(pythonPath string) *BeatNetEngine {
	return &BeatNetEngine{pythonPath: pythonPath, runner: defaultRunner}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *BeatNetEngine) WithCommandRunner(runner CommandRunner) {
	e.runner = runner
}

// Name returns the engine identifier.
func (e *BeatNetEngine) Name() string { return EngineHighAccuracy }

// Analyze runs the model over the whole file and returns every detected beat.
func (e *BeatNetEngine) Analyze(ctx context.Context, path string, _ *Window) ([]Event, error) {
	output, err := e.runner(ctx, e.pythonPath, "-c", beatnetScript, path)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "beats", "beatnet", "inference failed", err)
	}
	events, err := parseBeatLines(string(output), 0)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "beats", "beatnet", "unexpected model output", err)
	}
	return events, nil
}

// parseBeatLines reads "time [ordinal]" pairs, one per line. offset is added
// to every timestamp so windowed output can be shifted back to source time.
func parseBeatLines(output string, offset float64) ([]Event, error) {
	var events []Event
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parse beat time %q: %w", fields[0], err)
		}
		ev := Event{TimeSeconds: t + offset}
		if len(fields) > 1 {
			ordinal, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("parse beat ordinal %q: %w", fields[1], err)
			}
			ev.Ordinal = ordinal
		}
		events = append(events, ev)
	}
	return events, nil
}
