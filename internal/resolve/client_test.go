package resolve_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"cuemark/internal/beats"
	"cuemark/internal/config"
	"cuemark/internal/logging"
	"cuemark/internal/resolve"
	"cuemark/internal/services"
	"cuemark/internal/testsupport"
)

func newTestClient(t *testing.T, respond func(op string, params json.RawMessage) string) *resolve.Client {
	t.Helper()
	cfg := config.Default()
	client := resolve.NewClient(&cfg, logging.NewNop())
	client.WithRunner(func(_ context.Context, input []byte) ([]byte, []byte, error) {
		var command struct {
			Op        string          `json:"op"`
			Params    json.RawMessage `json:"params"`
			RequestID string          `json:"request_id"`
		}
		if err := json.Unmarshal(input, &command); err != nil {
			t.Fatalf("malformed bridge command: %v", err)
		}
		if command.RequestID == "" {
			t.Fatal("expected request_id on every command")
		}
		return []byte(respond(command.Op, command.Params)), nil, nil
	})
	return client
}

func TestScriptPathUsesConfiguredAbsolutePath(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithBridgeScript())

	client := resolve.NewClient(cfg, logging.NewNop())
	if client.ScriptPath() != cfg.Resolve.BridgeScript {
		t.Fatalf("expected configured script path %q, got %q",
			cfg.Resolve.BridgeScript, client.ScriptPath())
	}
	if _, err := os.Stat(client.ScriptPath()); err != nil {
		t.Fatalf("bridge script should exist on disk: %v", err)
	}
}

func TestCheckConnection(t *testing.T) {
	client := newTestClient(t, func(op string, _ json.RawMessage) string {
		if op != "check_connection" {
			t.Fatalf("unexpected op: %s", op)
		}
		return `{"success": true, "result": {"product": "DaVinci Resolve", "version": "19.1"}}`
	})

	info, err := client.CheckConnection(context.Background())
	if err != nil {
		t.Fatalf("CheckConnection returned error: %v", err)
	}
	if info.Product != "DaVinci Resolve" || info.Version != "19.1" {
		t.Fatalf("unexpected connection info: %+v", info)
	}
}

func TestExecuteClassifiesPreconditionFailures(t *testing.T) {
	cases := []struct {
		code      string
		wantFatal bool
	}{
		{code: "RESOLVE_NOT_RUNNING", wantFatal: true},
		{code: "NO_PROJECT", wantFatal: true},
		{code: "NO_TIMELINE", wantFatal: true},
		{code: "PYTHON_ERROR", wantFatal: false},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			client := newTestClient(t, func(string, json.RawMessage) string {
				return `{"success": false, "error": "nope", "code": "` + tc.code + `"}`
			})
			err := client.Execute(context.Background(), "get_timeline", nil, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if services.IsFatal(err) != tc.wantFatal {
				t.Fatalf("IsFatal(%v) = %v, want %v", err, services.IsFatal(err), tc.wantFatal)
			}
		})
	}
}

func TestExecuteRejectsGarbageResponse(t *testing.T) {
	client := newTestClient(t, func(string, json.RawMessage) string {
		return "Traceback (most recent call last): ..."
	})
	err := client.Execute(context.Background(), "get_timeline", nil, nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestTimelineItemsOnTrack(t *testing.T) {
	client := newTestClient(t, func(op string, params json.RawMessage) string {
		switch op {
		case "list_track_items":
			var p struct {
				TrackType  string `json:"track_type"`
				TrackIndex int    `json:"track_index"`
			}
			if err := json.Unmarshal(params, &p); err != nil {
				t.Fatalf("decode params: %v", err)
			}
			if p.TrackType != "audio" || p.TrackIndex != 2 {
				t.Fatalf("unexpected selector: %+v", p)
			}
			return `{"success": true, "result": [
				{"id": "a1", "name": "song", "file_path": "/media/song.wav",
				 "left_offset_frames": 48, "duration_frames": 96}
			]}`
		default:
			t.Fatalf("unexpected op: %s", op)
			return ""
		}
	})

	timeline := resolve.NewTimeline(client)
	clips, err := timeline.ItemsOnTrack(context.Background(), "audio", 2)
	if err != nil {
		t.Fatalf("ItemsOnTrack returned error: %v", err)
	}
	if len(clips) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(clips))
	}
	clip := clips[0]
	if clip.Name() != "song" || clip.SourceFilePath() != "/media/song.wav" {
		t.Fatalf("unexpected clip: %s %s", clip.Name(), clip.SourceFilePath())
	}
	if clip.TrimOffsetFrames() != 48 || clip.DurationFrames() != 96 {
		t.Fatalf("unexpected clip window: %d %d", clip.TrimOffsetFrames(), clip.DurationFrames())
	}
}

func TestClipAddMarker(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(op string, params json.RawMessage) string {
		switch op {
		case "list_track_items":
			return `{"success": true, "result": [{"id": "a1", "name": "song"}]}`
		case "add_clip_marker":
			if err := json.Unmarshal(params, &got); err != nil {
				t.Fatalf("decode params: %v", err)
			}
			return `{"success": true, "result": {"added": true}}`
		default:
			t.Fatalf("unexpected op: %s", op)
			return ""
		}
	})

	timeline := resolve.NewTimeline(client)
	clips, err := timeline.ItemsOnTrack(context.Background(), "audio", 1)
	if err != nil {
		t.Fatalf("ItemsOnTrack returned error: %v", err)
	}

	added, err := clips[0].AddMarker(context.Background(), beats.Marker{
		Frame:          24,
		Color:          beats.ColorRed,
		Name:           "Downbeat",
		Note:           "Bar start",
		DurationFrames: 1,
	})
	if err != nil {
		t.Fatalf("AddMarker returned error: %v", err)
	}
	if !added {
		t.Fatal("expected marker to be added")
	}

	if got["item_id"] != "a1" || got["frame"] != float64(24) || got["color"] != "Red" {
		t.Fatalf("unexpected marker params: %+v", got)
	}
}

func TestTimelineFrameRate(t *testing.T) {
	client := newTestClient(t, func(op string, _ json.RawMessage) string {
		if op != "get_timeline" {
			t.Fatalf("unexpected op: %s", op)
		}
		return `{"success": true, "result": {"name": "Main", "frame_rate": 23.976}}`
	})

	fps, err := resolve.NewTimeline(client).FrameRate(context.Background())
	if err != nil {
		t.Fatalf("FrameRate returned error: %v", err)
	}
	if fps != 23.976 {
		t.Fatalf("unexpected fps: %v", fps)
	}
}
