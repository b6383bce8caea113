package beats

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cuemark/internal/services"
)

// AubioEngine runs the aubio beat tracker over an ffmpeg-extracted segment of
// the source file. It has no downbeat awareness: ordinals are synthesized by
// labeling every 4th detected beat as a downbeat, and events are flagged as
// estimated so marker notes report the approximation.
type AubioEngine struct {
	aubioBinary  string
	ffmpegBinary string
	runner       CommandRunner
}

// NewAubioEngine constructs the fallback engine.
func NewAubioEngine(aubioBinary, ffmpegBinary string) *AubioEngine {
	return &AubioEngine{
		aubioBinary:  aubioBinary,
		ffmpegBinary: ffmpegBinary,
		runner:       defaultRunner,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *AubioEngine) WithCommandRunner(runner CommandRunner) {
	e.runner = runner
}

// Name returns the engine identifier.
func (e *AubioEngine) Name() string { return EngineFallback }

// Analyze extracts the windowed audio, tracks beats, and shifts timestamps
// back to source time. A nil window analyzes the whole file.
func (e *AubioEngine) Analyze(ctx context.Context, path string, window *Window) ([]Event, error) {
	workDir, err := os.MkdirTemp("", "cuemark-aubio-")
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "beats", "aubio", "create work directory", err)
	}
	defer os.RemoveAll(workDir)

	wavPath := filepath.Join(workDir, "segment.wav")
	if _, err := e.runner(ctx, e.ffmpegBinary, extractArgs(path, window, wavPath)...); err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "beats", "aubio", "audio extraction failed", err)
	}

	output, err := e.runner(ctx, e.aubioBinary, "beat", wavPath)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "beats", "aubio", "beat tracking failed", err)
	}

	var offset float64
	if window != nil {
		offset = window.StartSeconds
	}
	events, err := parseBeatLines(string(output), offset)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "beats", "aubio", "unexpected tracker output", err)
	}
	return SynthesizeOrdinals(events), nil
}

// extractArgs builds the ffmpeg invocation that renders the analysis window
// as a mono 22.05kHz WAV, the sample rate the tracker expects.
func extractArgs(source string, window *Window, dest string) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
	}
	if window != nil {
		args = append(args,
			"-ss", fmt.Sprintf("%.3f", window.StartSeconds),
			"-t", fmt.Sprintf("%.3f", window.DurationSeconds),
		)
	}
	args = append(args,
		"-i", source,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "22050",
		"-c:a", "pcm_s16le",
		dest,
	)
	return args
}
