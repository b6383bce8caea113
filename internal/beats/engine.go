package beats

import "context"

// Engine identifiers reported in the batch summary.
const (
	EngineHighAccuracy = "high-accuracy"
	EngineFallback     = "fallback"
)

// Engine wraps one beat detection backend.
//
// Analyze returns a finite sequence of events covering at least the requested
// window. An engine may ignore the window and analyze the whole file, so
// callers must not assume the output is pre-filtered. Event order is not
// guaranteed.
type Engine interface {
	// Name returns the engine identifier ("high-accuracy" or "fallback")
	// so callers can label output provenance.
	Name() string
	Analyze(ctx context.Context, path string, window *Window) ([]Event, error)
}

// SynthesizeOrdinals labels every 4th event as a downbeat, producing the
// estimated bar structure used when the backend has no downbeat awareness.
// Input order is preserved; the input slice is not modified.
func SynthesizeOrdinals(events []Event) []Event {
	out := make([]Event, len(events))
	for i, ev := range events {
		ev.Ordinal = i%4 + 1
		ev.Estimated = true
		out[i] = ev
	}
	return out
}
