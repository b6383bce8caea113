package deps

import (
	"context"
	"strings"
)

// BeatNetModule is the Python package providing neural beat/downbeat detection.
const BeatNetModule = "BeatNet"

// AudioReport describes the availability of every beat detection dependency.
type AudioReport struct {
	BeatNet Status
	Aubio   Status
	FFmpeg  Status
	Python  Status
}

// AllInstalled reports whether every dependency, including optional ones, is present.
func (r AudioReport) AllInstalled() bool {
	return r.BeatNet.Available && r.Aubio.Available && r.FFmpeg.Available && r.Python.Available
}

// HighAccuracyAvailable reports whether the neural engine can run.
func (r AudioReport) HighAccuracyAvailable() bool {
	return r.Python.Available && r.BeatNet.Available
}

// FallbackAvailable reports whether the generic beat tracker can run.
func (r AudioReport) FallbackAvailable() bool {
	return r.Aubio.Available && r.FFmpeg.Available
}

// Statuses returns the report rows in display order.
func (r AudioReport) Statuses() []Status {
	return []Status{r.Python, r.BeatNet, r.Aubio, r.FFmpeg}
}

// CheckAudio probes every beat detection dependency.
func CheckAudio(ctx context.Context, pythonPath, aubioBinary, ffmpegBinary string) AudioReport {
	report := AudioReport{
		BeatNet: CheckPythonModule(ctx, pythonPath, BeatNetModule),
	}
	report.BeatNet.Optional = true
	report.BeatNet.Description = "Neural beat/downbeat detection (high accuracy)"

	binaries := CheckBinaries([]Requirement{
		{Name: "python", Command: pythonPath, Description: "Runs the editor bridge and BeatNet"},
		{Name: "aubio", Command: aubioBinary, Description: "Generic beat tracking (fallback engine)"},
		{Name: "ffmpeg", Command: ffmpegBinary, Description: "Audio extraction for the fallback engine"},
	})
	report.Python = binaries[0]
	report.Aubio = binaries[1]
	report.FFmpeg = binaries[2]
	return report
}

// Remedy returns installation guidance when no engine is available.
func (r AudioReport) Remedy() string {
	var b strings.Builder
	b.WriteString("no beat detection engine available\n\n")
	b.WriteString("Install at least one engine:\n")
	b.WriteString("  pip install BeatNet librosa        # high accuracy (recommended)\n")
	b.WriteString("  brew/apt install aubio ffmpeg      # fallback beat tracker\n\n")
	b.WriteString("Then point resolve.python_path in ~/.config/cuemark/config.toml at the\n")
	b.WriteString("Python environment that has BeatNet installed.")
	return b.String()
}
