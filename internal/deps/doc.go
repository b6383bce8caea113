// Package deps probes the external analysis dependencies cuemark relies on.
//
// Beat detection needs at least one of two engines: the BeatNet neural model
// (a Python package) or the aubio beat tracker (a binary, paired with ffmpeg
// for windowed audio extraction). This package reports which are present so
// the engine selector and the check-deps command share one source of truth.
package deps
