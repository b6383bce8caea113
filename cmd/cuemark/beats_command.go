package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cuemark/internal/beatcache"
	"cuemark/internal/beats"
	"cuemark/internal/resolve"
)

func newBeatsCommand(ctx *commandContext) *cobra.Command {
	var trackType string
	var trackIndex int
	var markBeats bool
	var markDownbeats bool
	var noCache bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "beats",
		Short: "Detect beats and place markers on every clip of a track",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := beats.Options{
				TrackType:     cfg.Beats.TrackType,
				TrackIndex:    cfg.Beats.TrackIndex,
				MarkBeats:     cfg.Beats.MarkBeats,
				MarkDownbeats: cfg.Beats.MarkDownbeats,
			}
			if cmd.Flags().Changed("track-type") {
				opts.TrackType = trackType
			}
			if cmd.Flags().Changed("track") {
				opts.TrackIndex = trackIndex
			}
			if cmd.Flags().Changed("mark-beats") {
				opts.MarkBeats = markBeats
			}
			if cmd.Flags().Changed("mark-downbeats") {
				opts.MarkDownbeats = markDownbeats
			}
			if !opts.MarkBeats && !opts.MarkDownbeats {
				return fmt.Errorf("nothing to do: both beat and downbeat markers are disabled")
			}

			engine, err := beats.SelectEngine(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}

			if cfg.Cache.Enabled && !noCache {
				store, cacheErr := beatcache.Open(cfg.Cache.Path)
				if cacheErr != nil {
					return fmt.Errorf("open analysis cache: %w", cacheErr)
				}
				defer store.Close() //nolint:errcheck
				engine = beatcache.WrapEngine(engine, store, logger)
			}

			client, err := ctx.bridgeClient()
			if err != nil {
				return err
			}
			timeline := resolve.NewTimeline(client)

			processor := beats.NewProcessor(engine, timeline, opts, logger)
			summary, err := processor.Run(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, summary)
			}
			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&trackType, "track-type", "audio", "Track type to process (audio or video)")
	cmd.Flags().IntVar(&trackIndex, "track", 1, "Track index to process (1-based)")
	cmd.Flags().BoolVar(&markBeats, "mark-beats", false, "Place blue markers on beats")
	cmd.Flags().BoolVar(&markDownbeats, "mark-downbeats", true, "Place red markers on downbeats")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the analysis cache and re-analyze every clip")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run summary as JSON")

	return cmd
}

func printSummary(cmd *cobra.Command, summary beats.Summary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Engine: %s\n", summary.Engine)
	fmt.Fprintf(out, "Clips processed: %d\n", summary.ClipsProcessed)
	fmt.Fprintf(out, "Markers added: %d (%d beats, %d downbeats)\n",
		summary.MarkersAdded, summary.Beats, summary.Downbeats)

	if len(summary.ClipsSkipped) == 0 {
		return
	}
	fmt.Fprintf(out, "\nSkipped clips: %d\n", len(summary.ClipsSkipped))
	rows := make([][]string, 0, len(summary.ClipsSkipped))
	for _, skip := range summary.ClipsSkipped {
		rows = append(rows, []string{skip.Name, skip.Reason})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Clip", "Reason"},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	))
}
