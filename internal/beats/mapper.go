package beats

import "math"

// MapToClipFrame converts a source-absolute timestamp into a clip-relative
// frame index. The source frame is truncated toward zero before the trim
// offset is subtracted, matching the editor's integer frame semantics. The
// second return value is false when the event falls outside the clip's
// visible range.
func MapToClipFrame(timeSeconds float64, window ClipWindow) (int, bool) {
	sourceFrame := timeSeconds * window.FPS
	clipFrame := int(math.Trunc(sourceFrame)) - window.SourceOffsetFrames
	if clipFrame < 0 || clipFrame >= window.DurationFrames {
		return 0, false
	}
	return clipFrame, true
}
