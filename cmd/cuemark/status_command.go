package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// editorStatus mirrors the bridge's get_context result shape. Fields the
// rendering below does not use stay as raw JSON.
type editorStatus struct {
	Product  string `json:"product"`
	Version  string `json:"version"`
	Project  *struct {
		Name          string `json:"name"`
		TimelineCount int    `json:"timeline_count"`
	} `json:"project"`
	Timeline *struct {
		Name       string  `json:"name"`
		FrameRate  float64 `json:"frame_rate"`
		Resolution [2]int  `json:"resolution"`
		StartFrame int64   `json:"start_frame"`
		EndFrame   int64   `json:"end_frame"`
		Tracks     struct {
			Video []statusTrack `json:"video"`
			Audio []statusTrack `json:"audio"`
		} `json:"tracks"`
		Markers []json.RawMessage `json:"markers"`
	} `json:"timeline"`
	MediaPool *struct {
		Clips   []string `json:"clips"`
		Folders []string `json:"folders"`
	} `json:"media_pool"`
}

type statusTrack struct {
	Index int               `json:"index"`
	Name  string            `json:"name"`
	Clips []json.RawMessage `json:"clips"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show current project and timeline state",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.bridgeClient()
			if err != nil {
				return err
			}

			snapshot, err := client.ContextJSON(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, snapshot)
			}

			var status editorStatus
			if err := json.Unmarshal(snapshot, &status); err != nil {
				return fmt.Errorf("decode editor state: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Resolve Status")
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Product: %s %s\n", status.Product, status.Version)

			if status.Project != nil {
				fmt.Fprintf(out, "\nProject: %s\n", status.Project.Name)
				fmt.Fprintf(out, "Timelines: %d\n", status.Project.TimelineCount)
			} else {
				fmt.Fprintln(out, "\nNo project open")
			}

			if tl := status.Timeline; tl != nil {
				fmt.Fprintf(out, "\nActive Timeline: %s\n", tl.Name)
				fmt.Fprintf(out, "Resolution: %dx%d @ %g fps\n", tl.Resolution[0], tl.Resolution[1], tl.FrameRate)
				fmt.Fprintf(out, "Duration: %d frames (%d - %d)\n", tl.EndFrame-tl.StartFrame, tl.StartFrame, tl.EndFrame)

				fmt.Fprintln(out, "\nVideo Tracks:")
				for _, track := range tl.Tracks.Video {
					fmt.Fprintf(out, "  Track %d: %s (%d clips)\n", track.Index, track.Name, len(track.Clips))
				}
				fmt.Fprintln(out, "\nAudio Tracks:")
				for _, track := range tl.Tracks.Audio {
					fmt.Fprintf(out, "  Track %d: %s (%d clips)\n", track.Index, track.Name, len(track.Clips))
				}
				if len(tl.Markers) > 0 {
					fmt.Fprintf(out, "\nMarkers: %d\n", len(tl.Markers))
				}
			}

			if pool := status.MediaPool; pool != nil {
				fmt.Fprintf(out, "\nMedia Pool: %d clips, %d folders\n", len(pool.Clips), len(pool.Folders))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the raw editor state as JSON")
	return cmd
}
