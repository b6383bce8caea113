package beats

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cuemark/internal/logging"
	"cuemark/internal/services"
)

// Timeline is the slice of the editor's scripting surface the pipeline needs.
type Timeline interface {
	FrameRate(ctx context.Context) (float64, error)
	ItemsOnTrack(ctx context.Context, trackType string, trackIndex int) ([]Clip, error)
}

// Clip is one item on a timeline track.
type Clip interface {
	Name() string
	SourceFilePath() string
	TrimOffsetFrames() int
	DurationFrames() int
	AddMarker(ctx context.Context, marker Marker) (bool, error)
}

// Options selects the track to process and which marker colors to write.
type Options struct {
	TrackType     string
	TrackIndex    int
	MarkBeats     bool
	MarkDownbeats bool
}

// Skip records one clip left unprocessed and why.
type Skip struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Summary is the aggregate result of one batch run.
type Summary struct {
	MarkersAdded   int    `json:"markers_added"`
	Beats          int    `json:"beats"`
	Downbeats      int    `json:"downbeats"`
	ClipsProcessed int    `json:"clips_processed"`
	ClipsSkipped   []Skip `json:"clips_skipped"`
	Engine         string `json:"engine"`
}

// Processor drives the engine, mapper, and reconciler over every clip on a
// track. Clips run strictly one at a time in track enumeration order.
type Processor struct {
	engine   Engine
	timeline Timeline
	opts     Options
	logger   *slog.Logger
}

// NewProcessor constructs a batch processor for the given engine and timeline.
func NewProcessor(engine Engine, timeline Timeline, opts Options, logger *slog.Logger) *Processor {
	if opts.TrackType == "" {
		opts.TrackType = "audio"
	}
	if opts.TrackIndex <= 0 {
		opts.TrackIndex = 1
	}
	return &Processor{
		engine:   engine,
		timeline: timeline,
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "beats"),
	}
}

// Run processes every clip on the configured track and aggregates a summary.
// Only timeline enumeration failures abort the run; per-clip failures become
// skip entries.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	summary := Summary{Engine: p.engine.Name()}

	ctx = services.WithTrack(ctx, p.opts.TrackType, p.opts.TrackIndex)
	logger := logging.WithContext(ctx, p.logger)

	fps, err := p.timeline.FrameRate(ctx)
	if err != nil {
		return summary, services.Wrap(services.ErrExternalTool, "beats", "batch", "read timeline frame rate", err)
	}
	if fps <= 0 {
		return summary, services.Wrap(services.ErrValidation, "beats", "batch", fmt.Sprintf("invalid timeline frame rate %v", fps), nil)
	}

	clips, err := p.timeline.ItemsOnTrack(ctx, p.opts.TrackType, p.opts.TrackIndex)
	if err != nil {
		return summary, services.Wrap(services.ErrExternalTool, "beats", "batch", "list track items", err)
	}

	logger.Info("processing track",
		logging.Int("clips", len(clips)),
		logging.String(logging.FieldEngine, summary.Engine))

	for _, clip := range clips {
		clipCtx := services.WithClip(ctx, clip.Name())
		if skip := p.processClip(clipCtx, clip, fps, &summary); skip != nil {
			summary.ClipsSkipped = append(summary.ClipsSkipped, *skip)
			logging.WithContext(clipCtx, p.logger).Warn("clip skipped",
				logging.String("reason", skip.Reason))
			continue
		}
		summary.ClipsProcessed++
	}

	summary.MarkersAdded = summary.Beats + summary.Downbeats
	return summary, nil
}

// processClip runs one clip through the pipeline. A non-nil return is the skip
// entry to record; the clip counts as processed otherwise.
func (p *Processor) processClip(ctx context.Context, clip Clip, fps float64, summary *Summary) *Skip {
	logger := logging.WithContext(ctx, p.logger)

	path := clip.SourceFilePath()
	if path == "" {
		return &Skip{Name: clip.Name(), Reason: "no file path"}
	}
	if _, err := os.Stat(path); err != nil {
		return &Skip{Name: clip.Name(), Reason: "file not found"}
	}

	window := ClipWindow{
		FPS:                fps,
		SourceOffsetFrames: clip.TrimOffsetFrames(),
		DurationFrames:     clip.DurationFrames(),
	}
	if window.DurationFrames <= 0 {
		return &Skip{Name: clip.Name(), Reason: "zero duration"}
	}

	analysis := window.AnalysisWindow()
	logger.Debug("analyzing clip audio",
		logging.String("path", path),
		logging.Float64("start_seconds", analysis.StartSeconds),
		logging.Float64("duration_seconds", analysis.DurationSeconds))

	events, err := p.engine.Analyze(ctx, path, &analysis)
	if err != nil {
		return &Skip{Name: clip.Name(), Reason: err.Error()}
	}

	reconciler := NewReconciler()
	for _, ev := range events {
		frame, ok := MapToClipFrame(ev.TimeSeconds, window)
		if !ok {
			continue
		}
		switch {
		case ev.Downbeat() && p.opts.MarkDownbeats:
			reconciler.Record(frame, ColorRed, "Downbeat", downbeatNote(ev))
		case p.opts.MarkBeats:
			reconciler.Record(frame, ColorBlue, "Beat", fmt.Sprintf("Beat %d", ev.Ordinal))
		}
	}

	for _, marker := range reconciler.Markers() {
		ok, err := clip.AddMarker(ctx, marker)
		if err != nil || !ok {
			// The editor rejects a write when a marker already sits on
			// that frame, e.g. placed by the user mid-run. Non-fatal.
			logger.Warn("marker write failed",
				logging.Int("frame", marker.Frame),
				logging.Error(err))
		}
	}

	counters := reconciler.Counters()
	summary.Beats += counters.Beats
	summary.Downbeats += counters.Downbeats

	logger.Info("clip processed", logging.Int("markers", reconciler.Len()))
	return nil
}

func downbeatNote(ev Event) string {
	if ev.Estimated {
		return "Bar start (estimated)"
	}
	return "Bar start"
}
