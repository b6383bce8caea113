package beats

import (
	"context"
	"log/slog"

	"cuemark/internal/config"
	"cuemark/internal/deps"
	"cuemark/internal/logging"
	"cuemark/internal/services"
)

// SelectEngine probes the analysis dependencies and returns the most accurate
// engine available. The neural model is preferred; the generic tracker is the
// fallback. When neither can run the returned error is fatal and names the
// installation remedy.
func SelectEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Engine, error) {
	logger = logging.NewComponentLogger(logger, "beats")

	report := deps.CheckAudio(ctx, cfg.Resolve.PythonPath, cfg.AubioBinary(), cfg.FFmpegBinary())
	if report.HighAccuracyAvailable() {
		logger.Debug("using neural beat detection", logging.String(logging.FieldEngine, EngineHighAccuracy))
		return NewBeatNetEngine(cfg.Resolve.PythonPath), nil
	}
	if report.FallbackAvailable() {
		logger.Warn("neural model unavailable, falling back to generic beat tracking",
			logging.String(logging.FieldEngine, EngineFallback),
			logging.String("detail", report.BeatNet.Detail))
		return NewAubioEngine(cfg.AubioBinary(), cfg.FFmpegBinary()), nil
	}
	return nil, services.Wrap(services.ErrConfiguration, "beats", "select", report.Remedy(), nil)
}
