package beats

// Event is a single detected beat in source-file time.
type Event struct {
	// TimeSeconds is the absolute position in the source media.
	TimeSeconds float64 `json:"time_seconds"`
	// Ordinal is the beat's position within its bar; 1 denotes a downbeat.
	Ordinal int `json:"ordinal"`
	// Estimated marks ordinals synthesized by the pipeline rather than
	// classified by a model.
	Estimated bool `json:"estimated,omitempty"`
}

// Downbeat reports whether the event starts a bar.
func (e Event) Downbeat() bool { return e.Ordinal == 1 }

// Window restricts analysis to a sub-range of the source file.
type Window struct {
	StartSeconds    float64
	DurationSeconds float64
}

// ClipWindow describes how a timeline clip's visible range maps onto its
// source media.
type ClipWindow struct {
	// FPS is the timeline frame rate.
	FPS float64
	// SourceOffsetFrames is the number of source frames trimmed off the
	// front of the clip (the in-point).
	SourceOffsetFrames int
	// DurationFrames is the clip's visible length.
	DurationFrames int
}

// AnalysisWindow returns the source-time range covered by the clip. Engines
// that honor windowing use it to skip wasted decoding; MapToClipFrame remains
// the authoritative bounds filter either way.
func (w ClipWindow) AnalysisWindow() Window {
	start := float64(w.SourceOffsetFrames) / w.FPS
	return Window{
		StartSeconds:    start,
		DurationSeconds: float64(w.DurationFrames) / w.FPS,
	}
}

// Color identifies a marker color on the timeline.
type Color string

const (
	// ColorRed encodes a downbeat marker.
	ColorRed Color = "Red"
	// ColorBlue encodes a regular beat marker.
	ColorBlue Color = "Blue"
)

// Marker is a clip-relative marker ready to be written to the editor.
type Marker struct {
	Frame          int
	Color          Color
	Name           string
	Note           string
	DurationFrames int
}
