package resolve

import (
	"context"

	"cuemark/internal/beats"
)

// TimelineInfo describes the active timeline.
type TimelineInfo struct {
	Name      string  `json:"name"`
	FrameRate float64 `json:"frame_rate"`
}

// trackItem is the bridge's wire representation of one clip on a track.
type trackItem struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	FilePath         string `json:"file_path"`
	LeftOffsetFrames int    `json:"left_offset_frames"`
	DurationFrames   int    `json:"duration_frames"`
}

// Timeline adapts the bridge to the pipeline's timeline interface.
type Timeline struct {
	client *Client
}

// NewTimeline returns the active timeline backed by the bridge client.
func NewTimeline(client *Client) *Timeline {
	return &Timeline{client: client}
}

// Info fetches the active timeline's name and frame rate.
func (t *Timeline) Info(ctx context.Context) (TimelineInfo, error) {
	var info TimelineInfo
	err := t.client.Execute(ctx, "get_timeline", nil, &info)
	return info, err
}

// FrameRate returns the timeline frame rate.
func (t *Timeline) FrameRate(ctx context.Context) (float64, error) {
	info, err := t.Info(ctx)
	if err != nil {
		return 0, err
	}
	return info.FrameRate, nil
}

type listItemsParams struct {
	TrackType  string `json:"track_type"`
	TrackIndex int    `json:"track_index"`
}

// ItemsOnTrack enumerates the clips on one track in timeline order.
func (t *Timeline) ItemsOnTrack(ctx context.Context, trackType string, trackIndex int) ([]beats.Clip, error) {
	var items []trackItem
	params := listItemsParams{TrackType: trackType, TrackIndex: trackIndex}
	if err := t.client.Execute(ctx, "list_track_items", params, &items); err != nil {
		return nil, err
	}

	clips := make([]beats.Clip, 0, len(items))
	for _, item := range items {
		clips = append(clips, &clip{
			client:     t.client,
			item:       item,
			trackType:  trackType,
			trackIndex: trackIndex,
		})
	}
	return clips, nil
}

// clip implements beats.Clip over a bridge track item.
type clip struct {
	client     *Client
	item       trackItem
	trackType  string
	trackIndex int
}

func (c *clip) Name() string           { return c.item.Name }
func (c *clip) SourceFilePath() string { return c.item.FilePath }
func (c *clip) TrimOffsetFrames() int  { return c.item.LeftOffsetFrames }
func (c *clip) DurationFrames() int    { return c.item.DurationFrames }

type addMarkerParams struct {
	TrackType      string `json:"track_type"`
	TrackIndex     int    `json:"track_index"`
	ItemID         string `json:"item_id"`
	Frame          int    `json:"frame"`
	Color          string `json:"color"`
	Name           string `json:"name"`
	Note           string `json:"note"`
	DurationFrames int    `json:"duration_frames"`
}

type addMarkerResult struct {
	Added bool `json:"added"`
}

// AddMarker writes one clip-relative marker. A false return without an error
// means the editor rejected the write, typically because a marker already
// occupies that frame.
func (c *clip) AddMarker(ctx context.Context, marker beats.Marker) (bool, error) {
	params := addMarkerParams{
		TrackType:      c.trackType,
		TrackIndex:     c.trackIndex,
		ItemID:         c.item.ID,
		Frame:          marker.Frame,
		Color:          string(marker.Color),
		Name:           marker.Name,
		Note:           marker.Note,
		DurationFrames: marker.DurationFrames,
	}
	var result addMarkerResult
	if err := c.client.Execute(ctx, "add_clip_marker", params, &result); err != nil {
		return false, err
	}
	return result.Added, nil
}
