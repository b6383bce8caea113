package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuemark/internal/config"
)

func TestLoadDefaultsExpandPathsAndEnvKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("CUEMARK_OPENAI_API_KEY", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCache := filepath.Join(tempHome, ".cache", "cuemark")
	if cfg.Paths.CacheDir != wantCache {
		t.Fatalf("unexpected cache dir: got %q want %q", cfg.Paths.CacheDir, wantCache)
	}
	if cfg.Cache.Path != filepath.Join(wantCache, "beats.db") {
		t.Fatalf("unexpected cache path: %q", cfg.Cache.Path)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("expected cache enabled by default")
	}
	if cfg.Beats.TrackType != "audio" || cfg.Beats.TrackIndex != 1 {
		t.Fatalf("unexpected beats defaults: %+v", cfg.Beats)
	}
	if cfg.Beats.MarkBeats {
		t.Fatal("expected mark_beats off by default")
	}
	if !cfg.Beats.MarkDownbeats {
		t.Fatal("expected mark_downbeats on by default")
	}
	if cfg.Resolve.PythonPath != "python3" {
		t.Fatalf("unexpected python path: %q", cfg.Resolve.PythonPath)
	}
	if cfg.LLM.APIKey != "env-key" {
		t.Fatalf("expected LLM key from env, got %q", cfg.LLM.APIKey)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.CacheDir, cfg.Paths.LogDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadReadsFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := strings.Join([]string{
		"[beats]",
		`track_type = "video"`,
		"track_index = 3",
		"mark_beats = true",
		"",
		"[resolve]",
		`python_path = "/opt/venv/bin/python"`,
		"",
		"[logging]",
		`format = "json"`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to be used, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Beats.TrackType != "video" || cfg.Beats.TrackIndex != 3 {
		t.Fatalf("overrides not applied: %+v", cfg.Beats)
	}
	if !cfg.Beats.MarkBeats {
		t.Fatal("expected mark_beats override")
	}
	if cfg.Resolve.PythonPath != "/opt/venv/bin/python" {
		t.Fatalf("unexpected python path: %q", cfg.Resolve.PythonPath)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "bad track type",
			contents: "[beats]\ntrack_type = \"subtitle\"\n",
			want:     "beats.track_type",
		},
		{
			name:     "bad log format",
			contents: "[logging]\nformat = \"xml\"\n",
			want:     "logging.format",
		},
		{
			name:     "bad log level",
			contents: "[logging]\nlevel = \"verbose\"\n",
			want:     "logging.level",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.contents), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[beats]") {
		t.Fatal("sample config missing beats section")
	}
}
