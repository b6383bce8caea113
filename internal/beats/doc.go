// Package beats implements the beat-detection-to-marker pipeline.
//
// Given an audio-bearing clip placed and trimmed on a timeline, the pipeline:
//
//  1. Obtains beat/downbeat timestamps from an analysis engine. Two engines
//     exist: a neural model with exact downbeat classification and a generic
//     beat tracker whose downbeats are synthesized (every 4th beat). The
//     selector probes dependencies at startup and picks the best available.
//  2. Converts source-absolute timestamps into clip-relative frame numbers,
//     accounting for the clip's trim offset and the timeline frame rate, and
//     drops events that land outside the clip's visible range.
//  3. Reconciles events colliding on the same frame: a downbeat (Red) marker
//     always wins over a regular beat (Blue) at the same frame, and counters
//     track the map contents exactly.
//  4. Aggregates results over every clip on a track. A clip that cannot be
//     processed is recorded as a skip with a reason; it never aborts the rest
//     of the batch.
//
// Clips are processed strictly one at a time: the editor's scripting surface
// is not safe for concurrent access, and the engines are CPU/GPU bound.
package beats
