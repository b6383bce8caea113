package beats

import "sort"

// Counters tracks how many markers of each color a reconciler holds.
type Counters struct {
	Beats     int
	Downbeats int
}

// Reconciler merges candidate markers for a single clip under a deterministic
// priority policy: at most one marker per frame, and a downbeat always wins
// over a regular beat on the same frame. Counters stay equal to the per-color
// map cardinality after every Record call, regardless of arrival order.
type Reconciler struct {
	markers  map[int]Marker
	counters Counters
}

// NewReconciler returns an empty reconciler for one clip's processing pass.
func NewReconciler() *Reconciler {
	return &Reconciler{markers: make(map[int]Marker)}
}

// Record merges one candidate marker at the given clip-relative frame.
func (r *Reconciler) Record(frame int, color Color, name, note string) {
	existing, ok := r.markers[frame]
	if ok {
		if existing.Color == color {
			return
		}
		if existing.Color == ColorRed {
			// Downbeat wins; discard the regular beat.
			return
		}
		// Red replaces Blue: undo the earlier beat count.
		r.counters.Beats--
	}
	if color == ColorRed {
		r.counters.Downbeats++
	} else {
		r.counters.Beats++
	}
	r.markers[frame] = Marker{
		Frame:          frame,
		Color:          color,
		Name:           name,
		Note:           note,
		DurationFrames: 1,
	}
}

// Counters returns the running per-color totals.
func (r *Reconciler) Counters() Counters {
	return r.counters
}

// Len returns the number of retained markers.
func (r *Reconciler) Len() int {
	return len(r.markers)
}

// Markers returns the retained markers ordered by frame.
func (r *Reconciler) Markers() []Marker {
	out := make([]Marker, 0, len(r.markers))
	for _, m := range r.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Frame < out[j].Frame })
	return out
}
