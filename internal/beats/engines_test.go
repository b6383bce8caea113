package beats

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cuemark/internal/services"
)

func TestParseBeatLines(t *testing.T) {
	output := "0.500000 1\n1.000000 2\n\n1.500000 3\n"
	events, err := parseBeatLines(output, 0)
	if err != nil {
		t.Fatalf("parseBeatLines returned error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if !events[0].Downbeat() {
		t.Fatalf("expected first event to be a downbeat: %+v", events[0])
	}
	if events[1].TimeSeconds != 1.0 || events[1].Ordinal != 2 {
		t.Fatalf("unexpected second event: %+v", events[1])
	}
}

func TestParseBeatLinesWithoutOrdinalsAppliesOffset(t *testing.T) {
	events, err := parseBeatLines("0.25\n0.75\n", 2.0)
	if err != nil {
		t.Fatalf("parseBeatLines returned error: %v", err)
	}
	if events[0].TimeSeconds != 2.25 || events[1].TimeSeconds != 2.75 {
		t.Fatalf("offset not applied: %+v", events)
	}
	if events[0].Ordinal != 0 {
		t.Fatalf("expected zero ordinal for bare timestamps, got %+v", events[0])
	}
}

func TestParseBeatLinesRejectsGarbage(t *testing.T) {
	if _, err := parseBeatLines("not-a-number 1\n", 0); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := parseBeatLines("1.0 x\n", 0); err == nil {
		t.Fatal("expected ordinal parse error")
	}
}

func TestBeatNetEngineParsesModelOutput(t *testing.T) {
	engine := NewBeatNetEngine("python3")
	engine.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name != "python3" {
			t.Fatalf("unexpected command: %s", name)
		}
		if args[len(args)-1] != "/media/song.wav" {
			t.Fatalf("expected file path as final argument, got %v", args)
		}
		return []byte("0.480000 1\n0.960000 2\n"), nil
	})

	window := Window{StartSeconds: 10, DurationSeconds: 5}
	events, err := engine.Analyze(context.Background(), "/media/song.wav", &window)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	// Whole-file analysis: the window must not shift timestamps.
	if events[0].TimeSeconds != 0.48 {
		t.Fatalf("unexpected first timestamp: %v", events[0].TimeSeconds)
	}
	if events[0].Estimated {
		t.Fatal("model ordinals are exact, not estimated")
	}
}

func TestBeatNetEngineWrapsInferenceFailure(t *testing.T) {
	engine := NewBeatNetEngine("python3")
	engine.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("model runtime failure")
	})

	_, err := engine.Analyze(context.Background(), "/media/song.wav", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if services.IsFatal(err) {
		t.Fatalf("engine failure must stay recoverable: %v", err)
	}
}

func TestAubioEngineShiftsAndSynthesizes(t *testing.T) {
	engine := NewAubioEngine("aubio", "ffmpeg")
	var ffmpegArgs []string
	engine.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		switch name {
		case "ffmpeg":
			ffmpegArgs = args
			return nil, nil
		case "aubio":
			return []byte("0.5\n1.0\n1.5\n2.0\n2.5\n"), nil
		default:
			t.Fatalf("unexpected command: %s", name)
			return nil, nil
		}
	})

	window := Window{StartSeconds: 2.0, DurationSeconds: 4.0}
	events, err := engine.Analyze(context.Background(), "/media/song.wav", &window)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	joined := strings.Join(ffmpegArgs, " ")
	for _, want := range []string{"-ss 2.000", "-t 4.000", "-ar 22050", "-ac 1"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("ffmpeg args missing %q: %v", want, ffmpegArgs)
		}
	}

	if events[0].TimeSeconds != 2.5 {
		t.Fatalf("window offset not applied: %+v", events[0])
	}
	if !events[0].Downbeat() || events[1].Downbeat() {
		t.Fatalf("expected synthesized downbeat pattern, got %+v", events[:2])
	}
	if !events[0].Estimated {
		t.Fatal("fallback ordinals must be flagged estimated")
	}
}

func TestAubioEngineWrapsExtractionFailure(t *testing.T) {
	engine := NewAubioEngine("aubio", "ffmpeg")
	engine.WithCommandRunner(func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("unsupported codec")
	})

	_, err := engine.Analyze(context.Background(), "/media/song.wav", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
}
